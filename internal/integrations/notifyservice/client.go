package notifyservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// MetricsObserver фиксирует исход отправки уведомления
type MetricsObserver interface {
	ObserveNotification(template string, err error)
}

// Client клиент для работы с NotifyService
//
// Доставка уведомлений всегда best-effort: любая ошибка клиента логируется
// вызывающим и никогда не откатывает зафиксированное изменение состояния визита.
type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    MetricsObserver // nil, если метрики выключены
	log        Logger
}

// NewClient создает новый экземпляр клиента NotifyService
func NewClient(baseURL string, timeout time.Duration, metrics MetricsObserver, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: metrics,
		log:     log,
	}
}

// Send отправляет уведомление по шаблону
func (c *Client) Send(ctx context.Context, req *SendRequest) error {
	err := c.send(ctx, req)
	if c.metrics != nil {
		c.metrics.ObserveNotification(req.Template, err)
	}
	return err
}

func (c *Client) send(ctx context.Context, req *SendRequest) error {
	if len(req.Recipients) == 0 {
		c.log.Warn("NotifyService: no recipients for template=%s, skipping", req.Template)
		return nil
	}

	url := fmt.Sprintf("%s/internal/notifications", c.baseURL)

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted:
		return nil
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
}
