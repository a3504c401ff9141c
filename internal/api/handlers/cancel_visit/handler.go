package cancel_visit

import (
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/avolkov/PRS-VisitService/internal/api/handlers"
	cancelVisit "github.com/avolkov/PRS-VisitService/internal/usecase/cancel_visit"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "визит не найден"
	msgAlreadyTerminal    = "визит уже отменён или завершён"
)

type Handler struct {
	useCase CancelVisitUseCase
	logger  Logger
}

func NewHandler(useCase CancelVisitUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/visits/{accessToken}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	accessToken := vars["accessToken"]

	// Тело опционально: отмена без причины допустима
	var req CancelVisitRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("PATCH /visits/{token}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), &cancelVisit.Request{
		AccessToken: accessToken,
		Reason:      req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, cancelVisit.ErrVisitNotFound):
			h.logger.Warn("PATCH /visits/{token}/cancel - Visit not found")
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, cancelVisit.ErrAlreadyTerminal):
			h.logger.Warn("PATCH /visits/{token}/cancel - Visit already terminal")
			handlers.RespondError(w, http.StatusConflict, msgAlreadyTerminal)

		case errors.Is(err, cancelVisit.ErrInvalidInput):
			h.logger.Warn("PATCH /visits/{token}/cancel - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /visits/{token}/cancel - Failed to cancel visit: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("PATCH /visits/{token}/cancel - Visit cancelled successfully: visit_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusOK, response)
}
