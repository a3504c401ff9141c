package notifyservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

type recordingObserver struct {
	template string
	err      error
	called   bool
}

func (o *recordingObserver) ObserveNotification(template string, err error) {
	o.template = template
	o.err = err
	o.called = true
}

func testRequest() *SendRequest {
	return &SendRequest{
		Template:   TemplateVisitConfirmed,
		Recipients: []Recipient{{Name: "Ana García", Email: "ana@example.com"}},
		Context:    map[string]string{"access_token": "test-token"},
	}
}

func TestClient_Send_ObservesSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/internal/notifications", r.URL.Path)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	observer := &recordingObserver{}
	client := NewClient(srv.URL, time.Second, observer, noopLogger{})

	err := client.Send(context.Background(), testRequest())
	require.NoError(t, err)

	require.True(t, observer.called)
	assert.Equal(t, TemplateVisitConfirmed, observer.template)
	assert.NoError(t, observer.err)
}

func TestClient_Send_ObservesFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	observer := &recordingObserver{}
	client := NewClient(srv.URL, time.Second, observer, noopLogger{})

	err := client.Send(context.Background(), testRequest())
	require.ErrorIs(t, err, ErrInvalidResponse)

	require.True(t, observer.called)
	assert.Equal(t, TemplateVisitConfirmed, observer.template)
	assert.ErrorIs(t, observer.err, ErrInvalidResponse)
}

func TestClient_Send_ObservesTransportError(t *testing.T) {
	// Сервер закрыт до запроса: ошибка транспорта тоже попадает в метрику
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	observer := &recordingObserver{}
	client := NewClient(srv.URL, time.Second, observer, noopLogger{})

	err := client.Send(context.Background(), testRequest())
	require.ErrorIs(t, err, ErrInternal)
	require.True(t, observer.called)
	assert.ErrorIs(t, observer.err, ErrInternal)
}

func TestClient_Send_WithoutObserver(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nil, noopLogger{})

	require.NoError(t, client.Send(context.Background(), testRequest()))
}
