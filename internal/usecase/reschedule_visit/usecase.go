package reschedule_visit

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/avolkov/PRS-VisitService/internal/domain"
	propertyRepo "github.com/avolkov/PRS-VisitService/internal/infra/storage/property"
	visitRepo "github.com/avolkov/PRS-VisitService/internal/infra/storage/visit"
	"github.com/avolkov/PRS-VisitService/internal/integrations/notifyservice"
	"github.com/avolkov/PRS-VisitService/pkg/txmanager"
)

// notifyTimeout таймаут best-effort отправки уведомления после коммита
const notifyTimeout = 10 * time.Second

// rescheduleReason записывается в cancellation_reason исходного визита
const rescheduleReason = "rescheduled"

// UseCase use case для переноса визита на новый момент
//
// Перенос - это создание визита-замены и отмена исходного в одной
// сериализуемой транзакции, причём замена вставляется раньше отмены.
// Любой провал (невалидный слот, проигранная гонка, ошибка хранилища)
// откатывает транзакцию целиком и исходный визит остаётся confirmed.
type UseCase struct {
	visitRepo    VisitRepository
	windowRepo   WindowRepository
	propertyRepo PropertyRepository
	notifyClient NotifyServiceClient
	txManager    TransactionManager
	tokens       TokenGenerator
	timeProvider TimeProvider
	logger       Logger

	// inheritCancellationCount управляет счётчиком замены: наследовать
	// times_cancelled исходного визита (+1 за этот перенос) или начинать с нуля
	inheritCancellationCount bool
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	visitRepo VisitRepository,
	windowRepo WindowRepository,
	propertyRepo PropertyRepository,
	notifyClient NotifyServiceClient,
	txManager TransactionManager,
	inheritCancellationCount bool,
	logger Logger,
) *UseCase {
	return &UseCase{
		visitRepo:                visitRepo,
		windowRepo:               windowRepo,
		propertyRepo:             propertyRepo,
		notifyClient:             notifyClient,
		txManager:                txManager,
		tokens:                   &UUIDTokenGenerator{},
		timeProvider:             &RealTimeProvider{},
		logger:                   logger,
		inheritCancellationCount: inheritCancellationCount,
	}
}

// Execute выполняет use case переноса визита
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleVisit: rescheduling visit to %s", req.NewScheduledAt.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleVisit: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем исходный визит по токену
	original, err := uc.visitRepo.GetByToken(ctx, req.AccessToken)
	if err != nil {
		if errors.Is(err, visitRepo.ErrVisitNotFound) {
			uc.logger.Warn("RescheduleVisit: no visit owns the token")
			return nil, ErrVisitNotFound
		}
		uc.logger.Error("RescheduleVisit: failed to get visit by token: %v", err)
		return nil, fmt.Errorf("%w: failed to get visit: %v", ErrInternal, err)
	}

	if original.IsTerminal() {
		uc.logger.Warn("RescheduleVisit: visit id=%d already terminal, status=%s", original.ID, original.Status)
		return nil, ErrAlreadyTerminal
	}

	// 4. Получаем объект недвижимости
	property, err := uc.propertyRepo.GetByID(ctx, original.PropertyID)
	if err != nil {
		if errors.Is(err, propertyRepo.ErrPropertyNotFound) {
			uc.logger.Error("RescheduleVisit: property id=%d of visit id=%d not found", original.PropertyID, original.ID)
			return nil, fmt.Errorf("%w: property of the visit not found", ErrInternal)
		}
		uc.logger.Error("RescheduleVisit: failed to get property id=%d: %v", original.PropertyID, err)
		return nil, fmt.Errorf("%w: failed to get property: %v", ErrInternal, err)
	}

	// 5. Генерируем новый access token до транзакции
	newToken := uc.tokens.NewToken()

	var replacement *domain.Visit

	// 6. Замена и отмена - одна сериализуемая транзакция
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Проверяем доступность нового момента под блокировкой
		// Исходный визит ещё confirmed, поэтому его собственный момент
		// занят и перенос на тот же instant отклоняется как невалидный слот
		if err := uc.validateSlotAvailable(txCtx, property, req.NewScheduledAt, now); err != nil {
			return err
		}

		// 6.2. Вставляем замену раньше отмены исходного
		timesCancelled := 0
		if uc.inheritCancellationCount {
			timesCancelled = original.TimesCancelled + 1
		}

		visit := &domain.Visit{
			PropertyID:     original.PropertyID,
			AccessToken:    newToken,
			Phone:          original.Phone,
			FirstName:      original.FirstName,
			LastName:       original.LastName,
			Email:          original.Email,
			MonthlyIncome:  original.MonthlyIncome,
			NumTenants:     original.NumTenants,
			NumMinors:      original.NumMinors,
			HasPets:        original.HasPets,
			IsSmoker:       original.IsSmoker,
			Occupation:     original.Occupation,
			Notes:          original.Notes,
			ScheduledAt:    req.NewScheduledAt,
			TimesCancelled: timesCancelled,
		}

		created, err := uc.visitRepo.CreateConfirmed(txCtx, visit)
		if err != nil {
			if errors.Is(err, visitRepo.ErrSlotTaken) {
				uc.logger.Warn("RescheduleVisit: slot taken at commit, property=%d, instant=%s",
					original.PropertyID, req.NewScheduledAt.Format(time.RFC3339))
				return ErrSlotTaken
			}
			uc.logger.Error("RescheduleVisit: failed to create replacement visit: %v", err)
			return fmt.Errorf("%w: failed to create replacement: %v", ErrInternal, err)
		}

		// 6.3. Отменяем исходный визит в той же транзакции
		// Если его успели отменить конкурентно, откатываем и замену
		if _, err := uc.visitRepo.CancelByToken(txCtx, req.AccessToken, rescheduleReason); err != nil {
			if errors.Is(err, visitRepo.ErrNoConfirmedVisit) {
				uc.logger.Warn("RescheduleVisit: visit id=%d became terminal concurrently", original.ID)
				return ErrAlreadyTerminal
			}
			uc.logger.Error("RescheduleVisit: failed to cancel original visit id=%d: %v", original.ID, err)
			return fmt.Errorf("%w: failed to cancel original visit: %v", ErrInternal, err)
		}

		replacement = created
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrTxRetriesExceeded) {
			uc.logger.Error("RescheduleVisit: transaction retries exceeded: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return nil, err
	}

	uc.logger.Info("RescheduleVisit: visit id=%d replaced by id=%d at %s",
		original.ID, replacement.ID, replacement.ScheduledAt.Format(time.RFC3339))

	// 7. Best-effort уведомление после коммита
	go uc.notifyRescheduled(replacement, original, property)

	return &Response{
		ID:             replacement.ID,
		PropertyID:     replacement.PropertyID,
		AccessToken:    replacement.AccessToken,
		ScheduledAt:    replacement.ScheduledAt,
		Status:         string(replacement.Status),
		TimesCancelled: replacement.TimesCancelled,
		CreatedAt:      replacement.CreatedAt,
		UpdatedAt:      replacement.UpdatedAt,
	}, nil
}

// validateSlotAvailable перепроверяет, что instant входит в доступные слоты даты
// Выполняется внутри транзакции: confirmed-визиты даты читаются с FOR UPDATE
func (uc *UseCase) validateSlotAvailable(txCtx context.Context, property *domain.Property, instant time.Time, now time.Time) error {
	// Момент абсолютный: смещение в представлении клиента не должно влиять
	// на границы даты и привязку окон - приводим к таймзоне сервера
	instant = instant.In(now.Location())

	dayStart := time.Date(instant.Year(), instant.Month(), instant.Day(), 0, 0, 0, 0, instant.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	filter := domain.PropertyVisitsFilter{
		PropertyID: property.ID,
		StartDate:  &dayStart,
		EndDate:    &dayEnd,
	}
	visits, err := uc.visitRepo.GetByPropertyWithFilter(txCtx, filter)
	if err != nil {
		uc.logger.Error("RescheduleVisit: failed to get visits for property=%d: %v", property.ID, err)
		return fmt.Errorf("%w: failed to get visits: %v", ErrInternal, err)
	}

	windows, err := uc.windowRepo.GetApplicable(txCtx, property.ID, dayStart)
	if err != nil {
		uc.logger.Error("RescheduleVisit: failed to get windows for property=%d: %v", property.ID, err)
		return fmt.Errorf("%w: failed to get windows: %v", ErrInternal, err)
	}

	occurrences, err := domain.ExpandWindows(windows, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("RescheduleVisit: failed to expand windows for property=%d: %v", property.ID, err)
		return fmt.Errorf("%w: failed to expand windows: %v", ErrInternal, err)
	}

	slots, err := domain.GenerateSlots(occurrences, property.VisitDurationMinutes, now, domain.OccupiedSet(visits))
	if err != nil {
		uc.logger.Error("RescheduleVisit: failed to generate slots for property=%d: %v", property.ID, err)
		return fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	if !domain.ContainsInstant(slots, instant) {
		uc.logger.Warn("RescheduleVisit: instant %s is not an available slot for property=%d",
			instant.Format(time.RFC3339), property.ID)
		return ErrInvalidSlot
	}

	return nil
}

// notifyRescheduled отправляет заявителю подтверждение переноса
// Провал доставки логируется и не влияет на результат переноса
func (uc *UseCase) notifyRescheduled(replacement *domain.Visit, original *domain.Visit, property *domain.Property) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	err := uc.notifyClient.Send(ctx, &notifyservice.SendRequest{
		Template: notifyservice.TemplateVisitRescheduled,
		Recipients: []notifyservice.Recipient{
			{Name: replacement.FirstName + " " + replacement.LastName, Email: replacement.Email},
		},
		Context: map[string]string{
			"property_name":    property.Name,
			"old_scheduled_at": original.ScheduledAt.Format(time.RFC3339),
			"scheduled_at":     replacement.ScheduledAt.Format(time.RFC3339),
			"access_token":     replacement.AccessToken,
			"visit_id":         strconv.FormatInt(replacement.ID, 10),
		},
	})

	if err != nil {
		uc.logger.Error("RescheduleVisit: notification failed for visit id=%d: %v", replacement.ID, err)
		return
	}

	uc.logger.Info("RescheduleVisit: notification sent for visit id=%d", replacement.ID)
}
