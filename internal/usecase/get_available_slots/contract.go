package get_available_slots

import (
	"context"
	"time"

	"github.com/avolkov/PRS-VisitService/internal/domain"
)

// VisitRepository интерфейс репозитория визитов
type VisitRepository interface {
	// GetConfirmedInstants получает занятые моменты объекта одним консистентным чтением
	GetConfirmedInstants(ctx context.Context, propertyID int64, notBefore time.Time) ([]time.Time, error)
}

// WindowRepository интерфейс репозитория окон доступности
type WindowRepository interface {
	GetApplicable(ctx context.Context, propertyID int64, notBefore time.Time) ([]*domain.AvailabilityWindow, error)
}

// PropertyRepository интерфейс репозитория объектов недвижимости
type PropertyRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
}

// AuthorizationRepository интерфейс репозитория авторизаций
type AuthorizationRepository interface {
	IsAuthorized(ctx context.Context, propertyID int64, phone string) (bool, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
