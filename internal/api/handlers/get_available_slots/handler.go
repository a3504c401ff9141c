package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avolkov/PRS-VisitService/internal/api/handlers"
	"github.com/avolkov/PRS-VisitService/internal/api/middleware"
	getAvailableSlots "github.com/avolkov/PRS-VisitService/internal/usecase/get_available_slots"
)

const (
	msgInvalidPropertyID = "некорректный ID объекта недвижимости"
	msgMissingPhone      = "отсутствует телефон заявителя"
	msgPropertyNotFound  = "объект недвижимости не найден"
	msgNotAuthorized     = "телефон не авторизован для этого объекта"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/properties/{propertyId}/available-slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем propertyId из URL
	vars := mux.Vars(r)
	propertyIDStr := vars["propertyId"]

	propertyID, err := strconv.ParseInt(propertyIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /properties/{id}/available-slots - Invalid property ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPropertyID)
		return
	}

	// Получаем телефон заявителя из контекста (через middleware VisitorPhone)
	visitorPhone, ok := middleware.GetVisitorPhone(r.Context())
	if !ok {
		h.logger.Warn("GET /properties/{id}/available-slots - Missing visitor phone")
		handlers.RespondUnauthorized(w, msgMissingPhone)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		PropertyID: propertyID,
		Phone:      visitorPhone,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrPropertyNotFound):
			h.logger.Warn("GET /properties/{id}/available-slots - Property not found: property_id=%d", propertyID)
			handlers.RespondNotFound(w, msgPropertyNotFound)

		case errors.Is(err, getAvailableSlots.ErrNotAuthorized):
			h.logger.Warn("GET /properties/{id}/available-slots - Phone not authorized: property_id=%d", propertyID)
			handlers.RespondForbidden(w, msgNotAuthorized)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /properties/{id}/available-slots - Invalid input: property_id=%d, error=%v", propertyID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /properties/{id}/available-slots - Failed to get slots: property_id=%d, error=%v",
				propertyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /properties/{id}/available-slots - Slots retrieved successfully: property_id=%d, slots_count=%d",
		propertyID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
