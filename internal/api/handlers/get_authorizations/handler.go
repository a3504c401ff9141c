package get_authorizations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avolkov/PRS-VisitService/internal/api/handlers"
	"github.com/avolkov/PRS-VisitService/internal/api/middleware"
	"github.com/avolkov/PRS-VisitService/internal/service/schedule"
)

const (
	msgInvalidPropertyID = "некорректный ID объекта недвижимости"
	msgMissingAdminID    = "отсутствует ID администратора"
	msgPropertyNotFound  = "объект недвижимости не найден"
	msgForbidden         = "доступ запрещен"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/properties/{propertyId}/authorizations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	propertyIDStr := vars["propertyId"]

	propertyID, err := strconv.ParseInt(propertyIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /admin/properties/{id}/authorizations - Invalid property ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPropertyID)
		return
	}

	adminID, ok := middleware.GetAdminID(r.Context())
	if !ok {
		h.logger.Warn("GET /admin/properties/{id}/authorizations - Missing admin ID")
		handlers.RespondUnauthorized(w, msgMissingAdminID)
		return
	}

	result, err := h.service.GetAuthorizations(r.Context(), propertyID, adminID)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrPropertyNotFound):
			h.logger.Warn("GET /admin/properties/{id}/authorizations - Property not found: property_id=%d", propertyID)
			handlers.RespondNotFound(w, msgPropertyNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("GET /admin/properties/{id}/authorizations - Access denied: property_id=%d, admin_id=%d",
				propertyID, adminID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /admin/properties/{id}/authorizations - Failed to get authorizations: property_id=%d, error=%v",
				propertyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/properties/{id}/authorizations - Authorizations retrieved successfully: property_id=%d, count=%d",
		propertyID, len(result.Authorizations))
	handlers.RespondJSON(w, http.StatusOK, result)
}
