package create_visit

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/PRS-VisitService/internal/api/handlers"
	"github.com/avolkov/PRS-VisitService/internal/api/middleware"
	createVisit "github.com/avolkov/PRS-VisitService/internal/usecase/create_visit"
)

type mockUseCase struct {
	executeFunc func(ctx context.Context, req *createVisit.Request) (*createVisit.Response, error)
}

func (m *mockUseCase) Execute(ctx context.Context, req *createVisit.Request) (*createVisit.Response, error) {
	if m.executeFunc != nil {
		return m.executeFunc(ctx, req)
	}
	return nil, createVisit.ErrInternal
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

func performRequest(t *testing.T, uc *mockUseCase, phone string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/visits", bytes.NewReader(payload))
	if phone != "" {
		req.Header.Set(middleware.HeaderVisitorPhone, phone)
	}

	rec := httptest.NewRecorder()
	handler := NewHandler(uc, noopLogger{})
	// Телефон заявителя попадает в контекст через middleware
	middleware.VisitorPhone(http.HandlerFunc(handler.Handle)).ServeHTTP(rec, req)

	return rec
}

func validBody() CreateVisitRequest {
	return CreateVisitRequest{
		PropertyID:  10,
		ScheduledAt: "2026-09-10T09:30:00Z",
		FirstName:   "Ana",
		LastName:    "García",
		Email:       "ana@example.com",
		NumTenants:  2,
	}
}

func TestHandle_Success(t *testing.T) {
	scheduledAt := time.Date(2026, 9, 10, 9, 30, 0, 0, time.UTC)

	var gotReq *createVisit.Request
	uc := &mockUseCase{
		executeFunc: func(ctx context.Context, req *createVisit.Request) (*createVisit.Response, error) {
			gotReq = req
			return &createVisit.Response{
				ID:          42,
				PropertyID:  req.PropertyID,
				AccessToken: "test-token",
				Phone:       req.Phone,
				FirstName:   req.FirstName,
				LastName:    req.LastName,
				Email:       req.Email,
				ScheduledAt: req.ScheduledAt,
				Status:      "confirmed",
				CreatedAt:   scheduledAt.Add(-time.Hour),
				UpdatedAt:   scheduledAt.Add(-time.Hour),
			}, nil
		},
	}

	rec := performRequest(t, uc, "+34 666 666 666", validBody())

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp VisitResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "test-token", resp.AccessToken)
	assert.Equal(t, "2026-09-10T09:30:00Z", resp.ScheduledAt)

	// Телефон пришёл из заголовка, уже канонизированный middleware-ом
	assert.Equal(t, "+34666666666", gotReq.Phone)
	assert.Equal(t, scheduledAt, gotReq.ScheduledAt)
}

func TestHandle_MissingPhoneHeader(t *testing.T) {
	rec := performRequest(t, &mockUseCase{}, "", validBody())
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandle_MalformedBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/visits", bytes.NewReader([]byte("{not json")))
	req.Header.Set(middleware.HeaderVisitorPhone, "+34666666666")

	rec := httptest.NewRecorder()
	handler := NewHandler(&mockUseCase{}, noopLogger{})
	middleware.VisitorPhone(http.HandlerFunc(handler.Handle)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_BadScheduledAt(t *testing.T) {
	body := validBody()
	body.ScheduledAt = "завтра в девять"

	rec := performRequest(t, &mockUseCase{}, "+34666666666", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"property not found", createVisit.ErrPropertyNotFound, http.StatusNotFound},
		{"not authorized", createVisit.ErrNotAuthorized, http.StatusForbidden},
		{"invalid slot", createVisit.ErrInvalidSlot, http.StatusBadRequest},
		{"slot taken", createVisit.ErrSlotTaken, http.StatusConflict},
		{"invalid input", createVisit.ErrInvalidInput, http.StatusBadRequest},
		{"storage unavailable", createVisit.ErrUnavailable, http.StatusServiceUnavailable},
		{"internal", createVisit.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{
				executeFunc: func(ctx context.Context, req *createVisit.Request) (*createVisit.Response, error) {
					return nil, tt.err
				},
			}

			rec := performRequest(t, uc, "+34666666666", validBody())
			assert.Equal(t, tt.wantStatus, rec.Code)

			var errResp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
			assert.NotEmpty(t, errResp.Error)
		})
	}
}
