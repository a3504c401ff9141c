package create_visit

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
	"github.com/avolkov/PRS-VisitService/pkg/phone"
	"github.com/avolkov/PRS-VisitService/pkg/txmanager"
)

// notifyTimeout таймаут best-effort отправки уведомления после коммита
const notifyTimeout = 10 * time.Second

// UseCase use case для создания визита
//
// Проверка доступности слота и вставка confirmed-визита выполняются в одной
// сериализуемой транзакции; последним рубежом против двойного бронирования
// служит частичный уникальный индекс в БД. Уведомление отправляется после
// коммита и его провал никогда не откатывает созданный визит.
type UseCase struct {
	visitRepo    VisitRepository
	windowRepo   WindowRepository
	propertyRepo PropertyRepository
	authRepo     AuthorizationRepository
	notifyClient NotifyServiceClient
	txManager    TransactionManager
	tokens       TokenGenerator
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	visitRepo VisitRepository,
	windowRepo WindowRepository,
	propertyRepo PropertyRepository,
	authRepo AuthorizationRepository,
	notifyClient NotifyServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		visitRepo:    visitRepo,
		windowRepo:   windowRepo,
		propertyRepo: propertyRepo,
		authRepo:     authRepo,
		notifyClient: notifyClient,
		txManager:    txManager,
		tokens:       &UUIDTokenGenerator{},
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания визита
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateVisit: property=%d, instant=%s",
		req.PropertyID, req.ScheduledAt.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateVisit: validation failed: %v", err)
		return nil, err
	}

	// 2. Канонизируем телефон
	canonicalPhone, err := phone.Canonicalize(req.Phone)
	if err != nil {
		uc.logger.Warn("CreateVisit: invalid phone for property=%d: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 3. Получаем текущее время
	now := uc.timeProvider.Now()

	// 4. Получаем объект недвижимости
	property, err := uc.propertyRepo.GetByID(ctx, req.PropertyID)
	if err != nil {
		if errors.Is(err, propertyRepo.ErrPropertyNotFound) {
			uc.logger.Warn("CreateVisit: property id=%d not found", req.PropertyID)
			return nil, ErrPropertyNotFound
		}
		uc.logger.Error("CreateVisit: failed to get property id=%d: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: failed to get property: %v", ErrInternal, err)
	}

	// 5. Проверяем авторизацию телефона для объекта
	authorized, err := uc.authRepo.IsAuthorized(ctx, req.PropertyID, canonicalPhone)
	if err != nil {
		uc.logger.Error("CreateVisit: authorization check failed for property=%d: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: authorization check failed: %v", ErrInternal, err)
	}
	if !authorized {
		uc.logger.Warn("CreateVisit: phone not authorized for property=%d", req.PropertyID)
		return nil, ErrNotAuthorized
	}

	// 6. Генерируем access token до транзакции - он неизменяем после вставки
	token := uc.tokens.NewToken()

	var result *domain.Visit

	// 7. Проверка слота и вставка - одна сериализуемая транзакция
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Перепроверяем доступность момента под блокировкой
		// Выбранное клиентом значение - недоверенный ввод: заново генерируем
		// слоты этой даты и требуем точного совпадения момента
		if err := uc.validateSlotAvailable(txCtx, property, req.ScheduledAt, now); err != nil {
			return err
		}

		// 7.2. Вставляем confirmed-визит
		visit := &domain.Visit{
			PropertyID:    req.PropertyID,
			AccessToken:   token,
			Phone:         canonicalPhone,
			FirstName:     req.FirstName,
			LastName:      req.LastName,
			Email:         req.Email,
			MonthlyIncome: req.MonthlyIncome,
			NumTenants:    req.NumTenants,
			NumMinors:     req.NumMinors,
			HasPets:       req.HasPets,
			IsSmoker:      req.IsSmoker,
			Occupation:    req.Occupation,
			Notes:         req.Notes,
			ScheduledAt:   req.ScheduledAt,
		}

		created, err := uc.visitRepo.CreateConfirmed(txCtx, visit)
		if err != nil {
			if errors.Is(err, visitRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateVisit: slot taken at commit, property=%d, instant=%s",
					req.PropertyID, req.ScheduledAt.Format(time.RFC3339))
				return ErrSlotTaken
			}
			uc.logger.Error("CreateVisit: failed to create visit: %v", err)
			return fmt.Errorf("%w: failed to create visit: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrTxRetriesExceeded) {
			uc.logger.Error("CreateVisit: transaction retries exceeded: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return nil, err
	}

	uc.logger.Info("CreateVisit: successfully created visit id=%d, property=%d", result.ID, result.PropertyID)

	// 8. Best-effort уведомление после коммита
	go uc.notifyConfirmed(result, property)

	return &Response{
		ID:          result.ID,
		PropertyID:  result.PropertyID,
		AccessToken: result.AccessToken,
		Phone:       result.Phone,
		FirstName:   result.FirstName,
		LastName:    result.LastName,
		Email:       result.Email,
		ScheduledAt: result.ScheduledAt,
		Status:      string(result.Status),
		CreatedAt:   result.CreatedAt,
		UpdatedAt:   result.UpdatedAt,
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

	// Блокируем confirmed-визиты этой даты
	filter := domain.PropertyVisitsFilter{
		PropertyID: property.ID,
		StartDate:  &dayStart,
		EndDate:    &dayEnd,
	}
	visits, err := uc.visitRepo.GetByPropertyWithFilter(txCtx, filter)
	if err != nil {
		uc.logger.Error("CreateVisit: failed to get visits for property=%d: %v", property.ID, err)
		return fmt.Errorf("%w: failed to get visits: %v", ErrInternal, err)
	}

	windows, err := uc.windowRepo.GetApplicable(txCtx, property.ID, dayStart)
	if err != nil {
		uc.logger.Error("CreateVisit: failed to get windows for property=%d: %v", property.ID, err)
		return fmt.Errorf("%w: failed to get windows: %v", ErrInternal, err)
	}

	occurrences, err := domain.ExpandWindows(windows, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("CreateVisit: failed to expand windows for property=%d: %v", property.ID, err)
		return fmt.Errorf("%w: failed to expand windows: %v", ErrInternal, err)
	}

	slots, err := domain.GenerateSlots(occurrences, property.VisitDurationMinutes, now, domain.OccupiedSet(visits))
	if err != nil {
		uc.logger.Error("CreateVisit: failed to generate slots for property=%d: %v", property.ID, err)
		return fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	if !domain.ContainsInstant(slots, instant) {
		uc.logger.Warn("CreateVisit: instant %s is not an available slot for property=%d",
			instant.Format(time.RFC3339), property.ID)
		return ErrInvalidSlot
	}

	return nil
}

// notifyConfirmed отправляет подтверждение визита заявителю
// Провал доставки логируется и не влияет на результат создания
func (uc *UseCase) notifyConfirmed(visit *domain.Visit, property *domain.Property) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	err := uc.notifyClient.Send(ctx, &notifyservice.SendRequest{
		Template: notifyservice.TemplateVisitConfirmed,
		Recipients: []notifyservice.Recipient{
			{Name: visit.FirstName + " " + visit.LastName, Email: visit.Email},
		},
		Context: map[string]string{
			"property_name": property.Name,
			"scheduled_at":  visit.ScheduledAt.Format(time.RFC3339),
			"access_token":  visit.AccessToken,
			"visit_id":      strconv.FormatInt(visit.ID, 10),
		},
	})

	if err != nil {
		uc.logger.Error("CreateVisit: confirmation notification failed for visit id=%d: %v", visit.ID, err)
		return
	}

	uc.logger.Info("CreateVisit: confirmation notification sent for visit id=%d", visit.ID)
}
