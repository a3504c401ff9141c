package create_window

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
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidPropertyID  = "некорректный ID объекта недвижимости"
	msgMissingAdminID     = "отсутствует ID администратора"
	msgPropertyNotFound   = "объект недвижимости не найден"
	msgForbidden          = "доступ запрещен"
	msgAlreadyExists      = "идентичное окно доступности уже существует"
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

// Handle POST /api/v1/admin/properties/{propertyId}/windows
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем propertyId из URL
	vars := mux.Vars(r)
	propertyIDStr := vars["propertyId"]

	propertyID, err := strconv.ParseInt(propertyIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /admin/properties/{id}/windows - Invalid property ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPropertyID)
		return
	}

	// Получаем adminID из контекста (через middleware AdminAuth)
	adminID, ok := middleware.GetAdminID(r.Context())
	if !ok {
		h.logger.Warn("POST /admin/properties/{id}/windows - Missing admin ID")
		handlers.RespondUnauthorized(w, msgMissingAdminID)
		return
	}

	var req CreateWindowRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/properties/{id}/windows - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Создаем окно (сервис сам проверит права администратора)
	result, err := h.service.CreateWindow(r.Context(), req.ToServiceRequest(propertyID, adminID))
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrPropertyNotFound):
			h.logger.Warn("POST /admin/properties/{id}/windows - Property not found: property_id=%d", propertyID)
			handlers.RespondNotFound(w, msgPropertyNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("POST /admin/properties/{id}/windows - Access denied: property_id=%d, admin_id=%d",
				propertyID, adminID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, schedule.ErrWindowAlreadyExists):
			h.logger.Warn("POST /admin/properties/{id}/windows - Window already exists: property_id=%d", propertyID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyExists)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /admin/properties/{id}/windows - Invalid input: property_id=%d, error=%v", propertyID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /admin/properties/{id}/windows - Failed to create window: property_id=%d, error=%v",
				propertyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/properties/{id}/windows - Window created successfully: window_id=%d, property_id=%d",
		result.ID, propertyID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
