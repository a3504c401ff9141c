package delete_authorization

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
	msgInvalidPropertyID      = "некорректный ID объекта недвижимости"
	msgInvalidAuthorizationID = "некорректный ID авторизации"
	msgMissingAdminID         = "отсутствует ID администратора"
	msgPropertyNotFound       = "объект недвижимости не найден"
	msgAuthorizationNotFound  = "авторизация не найдена"
	msgForbidden              = "доступ запрещен"
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

// Handle DELETE /api/v1/admin/properties/{propertyId}/authorizations/{authorizationId}
// Отзыв авторизации не отменяет уже подтверждённые визиты
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	propertyID, err := strconv.ParseInt(vars["propertyId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /admin/properties/{id}/authorizations/{id} - Invalid property ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPropertyID)
		return
	}

	authorizationID, err := strconv.ParseInt(vars["authorizationId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /admin/properties/{id}/authorizations/{id} - Invalid authorization ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAuthorizationID)
		return
	}

	adminID, ok := middleware.GetAdminID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /admin/properties/{id}/authorizations/{id} - Missing admin ID")
		handlers.RespondUnauthorized(w, msgMissingAdminID)
		return
	}

	if err := h.service.DeleteAuthorization(r.Context(), propertyID, authorizationID, adminID); err != nil {
		switch {
		case errors.Is(err, schedule.ErrPropertyNotFound):
			h.logger.Warn("DELETE /admin/properties/{id}/authorizations/{id} - Property not found: property_id=%d", propertyID)
			handlers.RespondNotFound(w, msgPropertyNotFound)

		case errors.Is(err, schedule.ErrAuthorizationNotFound):
			h.logger.Warn("DELETE /admin/properties/{id}/authorizations/{id} - Authorization not found: authorization_id=%d",
				authorizationID)
			handlers.RespondNotFound(w, msgAuthorizationNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("DELETE /admin/properties/{id}/authorizations/{id} - Access denied: property_id=%d, admin_id=%d",
				propertyID, adminID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /admin/properties/{id}/authorizations/{id} - Failed to delete authorization: authorization_id=%d, error=%v",
				authorizationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/properties/{id}/authorizations/{id} - Authorization deleted successfully: authorization_id=%d, property_id=%d",
		authorizationID, propertyID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
