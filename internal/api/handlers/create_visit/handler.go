package create_visit

import (
	"errors"
	"net/http"

	"github.com/avolkov/PRS-VisitService/internal/api/handlers"
	"github.com/avolkov/PRS-VisitService/internal/api/middleware"
	createVisit "github.com/avolkov/PRS-VisitService/internal/usecase/create_visit"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidScheduledAt = "некорректный формат момента визита, ожидается ISO 8601"
	msgMissingPhone       = "отсутствует телефон заявителя"
	msgPropertyNotFound   = "объект недвижимости не найден"
	msgNotAuthorized      = "телефон не авторизован для этого объекта"
	msgInvalidSlot        = "выбранный момент не входит в доступные слоты"
	msgSlotTaken          = "выбранный слот уже занят"
	msgUnavailable        = "сервис временно недоступен, повторите попытку"
)

type Handler struct {
	useCase CreateVisitUseCase
	logger  Logger
}

func NewHandler(useCase CreateVisitUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/visits
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateVisitRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /visits - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Получаем телефон заявителя из контекста (через middleware VisitorPhone)
	visitorPhone, ok := middleware.GetVisitorPhone(r.Context())
	if !ok {
		h.logger.Warn("POST /visits - Missing visitor phone")
		handlers.RespondUnauthorized(w, msgMissingPhone)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом момента)
	useCaseReq, err := req.ToUseCaseRequest(visitorPhone)
	if err != nil {
		h.logger.Warn("POST /visits - Failed to parse scheduledAt: %v", err)
		handlers.RespondBadRequest(w, msgInvalidScheduledAt)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createVisit.ErrPropertyNotFound):
			h.logger.Warn("POST /visits - Property not found: property_id=%d", req.PropertyID)
			handlers.RespondNotFound(w, msgPropertyNotFound)

		case errors.Is(err, createVisit.ErrNotAuthorized):
			h.logger.Warn("POST /visits - Phone not authorized: property_id=%d", req.PropertyID)
			handlers.RespondForbidden(w, msgNotAuthorized)

		case errors.Is(err, createVisit.ErrInvalidSlot):
			h.logger.Warn("POST /visits - Invalid slot: property_id=%d, scheduled_at=%s", req.PropertyID, req.ScheduledAt)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, createVisit.ErrSlotTaken):
			h.logger.Warn("POST /visits - Slot taken: property_id=%d, scheduled_at=%s", req.PropertyID, req.ScheduledAt)
			handlers.RespondError(w, http.StatusConflict, msgSlotTaken)

		case errors.Is(err, createVisit.ErrInvalidInput):
			h.logger.Warn("POST /visits - Invalid input: property_id=%d, error=%v", req.PropertyID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, createVisit.ErrUnavailable):
			h.logger.Error("POST /visits - Storage unavailable: property_id=%d, error=%v", req.PropertyID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgUnavailable)

		default:
			h.logger.Error("POST /visits - Failed to create visit: property_id=%d, error=%v", req.PropertyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /visits - Visit created successfully: visit_id=%d, property_id=%d", result.ID, result.PropertyID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
