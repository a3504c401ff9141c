package get_visitor_visits

import (
	"errors"
	"net/http"

	"github.com/avolkov/PRS-VisitService/internal/api/handlers"
	"github.com/avolkov/PRS-VisitService/internal/api/middleware"
	"github.com/avolkov/PRS-VisitService/internal/service/visits"
	"github.com/avolkov/PRS-VisitService/internal/service/visits/models"
)

const (
	msgMissingPhone  = "отсутствует телефон заявителя"
	msgInvalidParams = "некорректные параметры запроса"
)

type Handler struct {
	service VisitService
	logger  Logger
}

func NewHandler(service VisitService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/visits
// Query params: status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем телефон заявителя из контекста (через middleware VisitorPhone)
	visitorPhone, ok := middleware.GetVisitorPhone(r.Context())
	if !ok {
		h.logger.Warn("GET /visits - Missing visitor phone")
		handlers.RespondUnauthorized(w, msgMissingPhone)
		return
	}

	req := &models.GetVisitorVisitsRequest{Phone: visitorPhone}
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		req.Status = &statusStr
	}

	// Получаем историю визитов
	result, err := h.service.GetVisitorVisits(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, visits.ErrInvalidInput):
			h.logger.Warn("GET /visits - Invalid parameters: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /visits - Failed to get visits: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /visits - Visits retrieved successfully: count=%d", len(result.Visits))
	handlers.RespondJSON(w, http.StatusOK, result)
}
