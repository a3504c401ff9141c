package delete_window

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
	msgInvalidWindowID   = "некорректный ID окна доступности"
	msgMissingAdminID    = "отсутствует ID администратора"
	msgPropertyNotFound  = "объект недвижимости не найден"
	msgWindowNotFound    = "окно доступности не найдено"
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

// Handle DELETE /api/v1/admin/properties/{propertyId}/windows/{windowId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	propertyID, err := strconv.ParseInt(vars["propertyId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /admin/properties/{id}/windows/{id} - Invalid property ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPropertyID)
		return
	}

	windowID, err := strconv.ParseInt(vars["windowId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /admin/properties/{id}/windows/{id} - Invalid window ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWindowID)
		return
	}

	adminID, ok := middleware.GetAdminID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /admin/properties/{id}/windows/{id} - Missing admin ID")
		handlers.RespondUnauthorized(w, msgMissingAdminID)
		return
	}

	if err := h.service.DeleteWindow(r.Context(), propertyID, windowID, adminID); err != nil {
		switch {
		case errors.Is(err, schedule.ErrPropertyNotFound):
			h.logger.Warn("DELETE /admin/properties/{id}/windows/{id} - Property not found: property_id=%d", propertyID)
			handlers.RespondNotFound(w, msgPropertyNotFound)

		case errors.Is(err, schedule.ErrWindowNotFound):
			h.logger.Warn("DELETE /admin/properties/{id}/windows/{id} - Window not found: window_id=%d", windowID)
			handlers.RespondNotFound(w, msgWindowNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("DELETE /admin/properties/{id}/windows/{id} - Access denied: property_id=%d, admin_id=%d",
				propertyID, adminID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /admin/properties/{id}/windows/{id} - Failed to delete window: window_id=%d, error=%v",
				windowID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/properties/{id}/windows/{id} - Window deleted successfully: window_id=%d, property_id=%d",
		windowID, propertyID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
