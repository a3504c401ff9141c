package get_accessible_properties

import (
	"errors"
	"net/http"

	"github.com/avolkov/PRS-VisitService/internal/api/handlers"
	"github.com/avolkov/PRS-VisitService/internal/api/middleware"
	"github.com/avolkov/PRS-VisitService/internal/service/visits"
)

const (
	msgMissingPhone = "отсутствует телефон заявителя"
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

// Handle GET /api/v1/properties
// Пустой список - валидный ответ: телефон никому не известен
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем телефон заявителя из контекста (через middleware VisitorPhone)
	visitorPhone, ok := middleware.GetVisitorPhone(r.Context())
	if !ok {
		h.logger.Warn("GET /properties - Missing visitor phone")
		handlers.RespondUnauthorized(w, msgMissingPhone)
		return
	}

	result, err := h.service.GetAccessibleProperties(r.Context(), visitorPhone)
	if err != nil {
		switch {
		case errors.Is(err, visits.ErrInvalidInput):
			h.logger.Warn("GET /properties - Invalid phone: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /properties - Failed to get properties: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /properties - Properties retrieved successfully: count=%d", len(result.Properties))
	handlers.RespondJSON(w, http.StatusOK, result)
}
