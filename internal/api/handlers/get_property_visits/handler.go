package get_property_visits

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avolkov/PRS-VisitService/internal/api/handlers"
	"github.com/avolkov/PRS-VisitService/internal/api/middleware"
	"github.com/avolkov/PRS-VisitService/internal/service/visits"
)

const (
	msgInvalidPropertyID = "некорректный ID объекта недвижимости"
	msgMissingAdminID    = "отсутствует ID администратора"
	msgInvalidParams     = "некорректные параметры запроса"
	msgPropertyNotFound  = "объект недвижимости не найден"
	msgForbidden         = "доступ запрещен"
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

// Handle GET /api/v1/admin/properties/{propertyId}/visits
// Query params: startDate, endDate, status, includeInactive (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем propertyId из URL
	vars := mux.Vars(r)
	propertyIDStr := vars["propertyId"]

	propertyID, err := strconv.ParseInt(propertyIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /admin/properties/{id}/visits - Invalid property ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPropertyID)
		return
	}

	// Получаем adminID из контекста (через middleware AdminAuth)
	adminID, ok := middleware.GetAdminID(r.Context())
	if !ok {
		h.logger.Warn("GET /admin/properties/{id}/visits - Missing admin ID")
		handlers.RespondUnauthorized(w, msgMissingAdminID)
		return
	}

	// Получаем опциональные query параметры
	startDateStr := r.URL.Query().Get("startDate")
	endDateStr := r.URL.Query().Get("endDate")
	statusStr := r.URL.Query().Get("status")
	includeInactiveStr := r.URL.Query().Get("includeInactive")

	// Формируем запрос к сервису
	serviceReq, err := ToServiceRequest(propertyID, adminID, startDateStr, endDateStr, statusStr, includeInactiveStr)
	if err != nil {
		h.logger.Warn("GET /admin/properties/{id}/visits - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Получаем визиты объекта (сервис сам проверит права администратора)
	result, err := h.service.GetPropertyVisits(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, visits.ErrPropertyNotFound):
			h.logger.Warn("GET /admin/properties/{id}/visits - Property not found: property_id=%d", propertyID)
			handlers.RespondNotFound(w, msgPropertyNotFound)

		case errors.Is(err, visits.ErrAccessDenied):
			h.logger.Warn("GET /admin/properties/{id}/visits - Access denied: property_id=%d, admin_id=%d",
				propertyID, adminID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, visits.ErrInvalidInput):
			h.logger.Warn("GET /admin/properties/{id}/visits - Invalid parameters: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /admin/properties/{id}/visits - Failed to get visits: property_id=%d, error=%v",
				propertyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/properties/{id}/visits - Visits retrieved successfully: property_id=%d, count=%d",
		propertyID, len(result.Visits))
	handlers.RespondJSON(w, http.StatusOK, result)
}
