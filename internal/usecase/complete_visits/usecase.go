package complete_visits

import (
	"context"
	"errors"
	"fmt"
)

// ErrInternal возвращается при внутренних ошибках usecase
var ErrInternal = errors.New("complete_visits: internal error")

// UseCase фоновый use case завершения прошедших визитов
//
// Переводит confirmed-визиты с прошедшим scheduled_at в completed одним
// UPDATE. Идемпотентен: повторный запуск не меняет уже терминальные визиты,
// поэтому периодичность и перекрытие запусков безопасны.
type UseCase struct {
	visitRepo    VisitRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(visitRepo VisitRepository, logger Logger) *UseCase {
	return &UseCase{
		visitRepo:    visitRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute переводит прошедшие confirmed-визиты в completed
// Возвращает количество завершённых визитов
func (uc *UseCase) Execute(ctx context.Context) (int64, error) {
	now := uc.timeProvider.Now()

	completed, err := uc.visitRepo.CompleteElapsed(ctx, now)
	if err != nil {
		uc.logger.Error("CompleteVisits: sweep failed: %v", err)
		return 0, fmt.Errorf("%w: sweep failed: %v", ErrInternal, err)
	}

	if completed > 0 {
		uc.logger.Info("CompleteVisits: completed %d elapsed visit(s)", completed)
	}

	return completed, nil
}
