package reschedule_visit

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/avolkov/PRS-VisitService/internal/api/handlers"
	rescheduleVisit "github.com/avolkov/PRS-VisitService/internal/usecase/reschedule_visit"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidScheduledAt = "некорректный формат нового момента, ожидается ISO 8601"
	msgNotFound           = "визит не найден"
	msgAlreadyTerminal    = "визит уже отменён или завершён"
	msgInvalidSlot        = "новый момент не входит в доступные слоты"
	msgSlotTaken          = "новый слот уже занят"
	msgUnavailable        = "сервис временно недоступен, повторите попытку"
)

type Handler struct {
	useCase RescheduleVisitUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleVisitUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/visits/{accessToken}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	accessToken := vars["accessToken"]

	var req RescheduleVisitRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /visits/{token}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом момента)
	useCaseReq, err := req.ToUseCaseRequest(accessToken)
	if err != nil {
		h.logger.Warn("PATCH /visits/{token}/reschedule - Failed to parse newScheduledAt: %v", err)
		handlers.RespondBadRequest(w, msgInvalidScheduledAt)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleVisit.ErrVisitNotFound):
			h.logger.Warn("PATCH /visits/{token}/reschedule - Visit not found")
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleVisit.ErrAlreadyTerminal):
			h.logger.Warn("PATCH /visits/{token}/reschedule - Visit already terminal")
			handlers.RespondError(w, http.StatusConflict, msgAlreadyTerminal)

		case errors.Is(err, rescheduleVisit.ErrInvalidSlot):
			h.logger.Warn("PATCH /visits/{token}/reschedule - Invalid slot: new_scheduled_at=%s", req.NewScheduledAt)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, rescheduleVisit.ErrSlotTaken):
			h.logger.Warn("PATCH /visits/{token}/reschedule - Slot taken: new_scheduled_at=%s", req.NewScheduledAt)
			handlers.RespondError(w, http.StatusConflict, msgSlotTaken)

		case errors.Is(err, rescheduleVisit.ErrInvalidInput):
			h.logger.Warn("PATCH /visits/{token}/reschedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, rescheduleVisit.ErrUnavailable):
			h.logger.Error("PATCH /visits/{token}/reschedule - Storage unavailable: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgUnavailable)

		default:
			h.logger.Error("PATCH /visits/{token}/reschedule - Failed to reschedule visit: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("PATCH /visits/{token}/reschedule - Visit rescheduled successfully: visit_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusOK, response)
}
