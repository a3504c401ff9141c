package cancel_visit

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/avolkov/PRS-VisitService/internal/domain"
	visitRepo "github.com/avolkov/PRS-VisitService/internal/infra/storage/visit"
	"github.com/avolkov/PRS-VisitService/internal/integrations/notifyservice"
)

// notifyTimeout таймаут best-effort отправки уведомления
const notifyTimeout = 10 * time.Second

// UseCase use case для отмены визита по access token
//
// Переход confirmed -> cancelled и инкремент счётчика выполняются одним
// UPDATE с guard по статусу - конкурентная повторная отмена наблюдает
// AlreadyTerminal, а не второе изменение состояния.
type UseCase struct {
	visitRepo    VisitRepository
	propertyRepo PropertyRepository
	notifyClient NotifyServiceClient
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	visitRepo VisitRepository,
	propertyRepo PropertyRepository,
	notifyClient NotifyServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		visitRepo:    visitRepo,
		propertyRepo: propertyRepo,
		notifyClient: notifyClient,
		logger:       logger,
	}
}

// Execute выполняет use case отмены визита
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelVisit: cancelling visit by token")

	// 1. Валидация входных данных
	if req.AccessToken == "" {
		uc.logger.Warn("CancelVisit: empty access token")
		return nil, fmt.Errorf("%w: accessToken is required", ErrInvalidInput)
	}
	if len(req.Reason) > domain.MaxCancellationReasonLength {
		uc.logger.Warn("CancelVisit: cancellation reason too long")
		return nil, fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	// 2. Атомарная отмена: UPDATE с guard по статусу
	cancelled, err := uc.visitRepo.CancelByToken(ctx, req.AccessToken, req.Reason)
	if err != nil {
		if errors.Is(err, visitRepo.ErrNoConfirmedVisit) {
			// Guard не нашёл confirmed-строку - различаем "нет визита" и "уже терминальный"
			return nil, uc.classifyMiss(ctx, req.AccessToken)
		}
		uc.logger.Error("CancelVisit: repository error: %v", err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}

	uc.logger.Info("CancelVisit: successfully cancelled visit id=%d (times_cancelled=%d)",
		cancelled.ID, cancelled.TimesCancelled)

	// 3. Best-effort уведомление администраторов объекта
	go uc.notifyAdministrators(cancelled)

	return &Response{
		ID:                 cancelled.ID,
		PropertyID:         cancelled.PropertyID,
		ScheduledAt:        cancelled.ScheduledAt,
		Status:             string(cancelled.Status),
		TimesCancelled:     cancelled.TimesCancelled,
		CancellationReason: cancelled.CancellationReason,
		CancelledAt:        cancelled.CancelledAt,
	}, nil
}

// classifyMiss различает отсутствие визита и терминальный статус
func (uc *UseCase) classifyMiss(ctx context.Context, token string) error {
	existing, err := uc.visitRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, visitRepo.ErrVisitNotFound) {
			uc.logger.Warn("CancelVisit: no visit owns the token")
			return ErrVisitNotFound
		}
		uc.logger.Error("CancelVisit: failed to classify cancel miss: %v", err)
		return fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}

	uc.logger.Warn("CancelVisit: visit id=%d already terminal, status=%s", existing.ID, existing.Status)
	return ErrAlreadyTerminal
}

// notifyAdministrators уведомляет администраторов объекта об отмене
// Провал доставки логируется и не влияет на результат отмены
func (uc *UseCase) notifyAdministrators(visit *domain.Visit) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	property, err := uc.propertyRepo.GetByID(ctx, visit.PropertyID)
	if err != nil {
		uc.logger.Error("CancelVisit: failed to get property id=%d for notification: %v", visit.PropertyID, err)
		return
	}

	admins, err := uc.propertyRepo.GetAdministrators(ctx, visit.PropertyID)
	if err != nil {
		uc.logger.Error("CancelVisit: failed to get administrators for property=%d: %v", visit.PropertyID, err)
		return
	}

	recipients := make([]notifyservice.Recipient, 0, len(admins))
	for _, a := range admins {
		recipients = append(recipients, notifyservice.Recipient{Name: a.Name, Email: a.Email})
	}

	reason := ""
	if visit.CancellationReason != nil {
		reason = *visit.CancellationReason
	}

	err = uc.notifyClient.Send(ctx, &notifyservice.SendRequest{
		Template:   notifyservice.TemplateVisitCancelledAdmin,
		Recipients: recipients,
		Context: map[string]string{
			"property_name": property.Name,
			"visitor_name":  visit.FirstName + " " + visit.LastName,
			"scheduled_at":  visit.ScheduledAt.Format(time.RFC3339),
			"reason":        reason,
			"visit_id":      strconv.FormatInt(visit.ID, 10),
		},
	})

	if err != nil {
		uc.logger.Error("CancelVisit: admin notification failed for visit id=%d: %v", visit.ID, err)
		return
	}

	uc.logger.Info("CancelVisit: admin notification sent for visit id=%d", visit.ID)
}
