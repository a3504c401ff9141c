package create_authorization

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avolkov/PRS-VisitService/internal/api/handlers"
	"github.com/avolkov/PRS-VisitService/internal/api/middleware"
	"github.com/avolkov/PRS-VisitService/internal/service/schedule"
	"github.com/avolkov/PRS-VisitService/internal/service/schedule/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidPropertyID  = "некорректный ID объекта недвижимости"
	msgMissingAdminID     = "отсутствует ID администратора"
	msgPropertyNotFound   = "объект недвижимости не найден"
	msgForbidden          = "доступ запрещен"
	msgAlreadyExists      = "телефон уже авторизован для этого объекта"
)

// CreateAuthorizationRequest HTTP request model
type CreateAuthorizationRequest struct {
	Phone string `json:"phone"`
}

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

// Handle POST /api/v1/admin/properties/{propertyId}/authorizations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	propertyIDStr := vars["propertyId"]

	propertyID, err := strconv.ParseInt(propertyIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /admin/properties/{id}/authorizations - Invalid property ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPropertyID)
		return
	}

	adminID, ok := middleware.GetAdminID(r.Context())
	if !ok {
		h.logger.Warn("POST /admin/properties/{id}/authorizations - Missing admin ID")
		handlers.RespondUnauthorized(w, msgMissingAdminID)
		return
	}

	var req CreateAuthorizationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/properties/{id}/authorizations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Создаем авторизацию (сервис сам проверит права администратора)
	result, err := h.service.CreateAuthorization(r.Context(), &models.CreateAuthorizationRequest{
		AdminID:    adminID,
		PropertyID: propertyID,
		Phone:      req.Phone,
	})
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrPropertyNotFound):
			h.logger.Warn("POST /admin/properties/{id}/authorizations - Property not found: property_id=%d", propertyID)
			handlers.RespondNotFound(w, msgPropertyNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("POST /admin/properties/{id}/authorizations - Access denied: property_id=%d, admin_id=%d",
				propertyID, adminID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, schedule.ErrAuthorizationAlreadyExists):
			h.logger.Warn("POST /admin/properties/{id}/authorizations - Already authorized: property_id=%d", propertyID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyExists)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /admin/properties/{id}/authorizations - Invalid input: property_id=%d, error=%v",
				propertyID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /admin/properties/{id}/authorizations - Failed to create authorization: property_id=%d, error=%v",
				propertyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/properties/{id}/authorizations - Authorization created successfully: authorization_id=%d, property_id=%d",
		result.ID, propertyID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
