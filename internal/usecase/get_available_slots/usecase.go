package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/avolkov/PRS-VisitService/internal/domain"
	propertyRepo "github.com/avolkov/PRS-VisitService/internal/infra/storage/property"
	"github.com/avolkov/PRS-VisitService/pkg/phone"
)

// UseCase use case для получения доступных слотов визитов
//
// Список слотов рекомендательный: между его показом и бронированием слот может
// быть занят. Авторитетная проверка выполняется в usecase создания визита.
type UseCase struct {
	visitRepo     VisitRepository
	windowRepo    WindowRepository
	propertyRepo  PropertyRepository
	authRepo      AuthorizationRepository
	lookaheadDays int
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
// lookaheadDays - горизонт разворачивания еженедельных окон в днях
func NewUseCase(
	visitRepo VisitRepository,
	windowRepo WindowRepository,
	propertyRepo PropertyRepository,
	authRepo AuthorizationRepository,
	lookaheadDays int,
	logger Logger,
) *UseCase {
	if lookaheadDays <= 0 {
		lookaheadDays = domain.DefaultLookaheadDays
	}
	return &UseCase{
		visitRepo:     visitRepo,
		windowRepo:    windowRepo,
		propertyRepo:  propertyRepo,
		authRepo:      authRepo,
		lookaheadDays: lookaheadDays,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: property=%d", req.PropertyID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Канонизируем телефон
	canonicalPhone, err := phone.Canonicalize(req.Phone)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: invalid phone for property=%d: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 3. Получаем текущее время
	now := uc.timeProvider.Now()

	// 4. Получаем объект недвижимости
	property, err := uc.propertyRepo.GetByID(ctx, req.PropertyID)
	if err != nil {
		if errors.Is(err, propertyRepo.ErrPropertyNotFound) {
			uc.logger.Warn("GetAvailableSlots: property id=%d not found", req.PropertyID)
			return nil, ErrPropertyNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get property id=%d: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: failed to get property: %v", ErrInternal, err)
	}

	// 5. Проверяем авторизацию телефона для объекта
	// Неавторизованный запрос не должен узнать ничего о расписании
	authorized, err := uc.authRepo.IsAuthorized(ctx, req.PropertyID, canonicalPhone)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: authorization check failed for property=%d: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: authorization check failed: %v", ErrInternal, err)
	}
	if !authorized {
		uc.logger.Warn("GetAvailableSlots: phone not authorized for property=%d", req.PropertyID)
		return nil, ErrNotAuthorized
	}

	// 6. Получаем применимые окна доступности
	windows, err := uc.windowRepo.GetApplicable(ctx, req.PropertyID, now)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get windows for property=%d: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: failed to get windows: %v", ErrInternal, err)
	}

	// 7. Разворачиваем окна в конкретные даты в пределах горизонта
	until := now.AddDate(0, 0, uc.lookaheadDays)
	occurrences, err := domain.ExpandWindows(windows, now, until)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to expand windows for property=%d: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: failed to expand windows: %v", ErrInternal, err)
	}

	// 8. Получаем занятые моменты одним консистентным чтением
	instants, err := uc.visitRepo.GetConfirmedInstants(ctx, req.PropertyID, now)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get confirmed instants for property=%d: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: failed to get confirmed instants: %v", ErrInternal, err)
	}

	occupied := make(map[int64]struct{}, len(instants))
	for _, instant := range instants {
		occupied[instant.Unix()] = struct{}{}
	}

	// 9. Генерируем слоты
	slots, err := domain.GenerateSlots(occurrences, property.VisitDurationMinutes, now, occupied)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots for property=%d: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for property=%d (windows=%d, occupied=%d)",
		len(slots), req.PropertyID, len(windows), len(occupied))

	result := make([]Slot, len(slots))
	for i, s := range slots {
		result[i] = Slot{StartsAt: s.StartsAt, DurationMinutes: s.DurationMinutes}
	}

	return &Response{
		PropertyID:           property.ID,
		PropertyName:         property.Name,
		VisitDurationMinutes: property.VisitDurationMinutes,
		Slots:                result,
	}, nil
}
