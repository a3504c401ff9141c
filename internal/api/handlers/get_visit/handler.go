package get_visit

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/avolkov/PRS-VisitService/internal/api/handlers"
	"github.com/avolkov/PRS-VisitService/internal/service/visits"
)

const (
	msgNotFound = "визит не найден"
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

// Handle GET /api/v1/visits/{accessToken}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	accessToken := vars["accessToken"]

	// Получаем визит (токен сам по себе доказательство владения)
	visit, err := h.service.GetByToken(r.Context(), accessToken)
	if err != nil {
		switch {
		case errors.Is(err, visits.ErrVisitNotFound):
			h.logger.Warn("GET /visits/{token} - Visit not found")
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, visits.ErrInvalidInput):
			h.logger.Warn("GET /visits/{token} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /visits/{token} - Failed to get visit: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /visits/{token} - Visit retrieved successfully: visit_id=%d", visit.ID)
	handlers.RespondJSON(w, http.StatusOK, visit)
}
