package schedule

import (
	"context"

	"github.com/avolkov/PRS-VisitService/internal/domain"
)

// WindowRepository интерфейс репозитория окон доступности
type WindowRepository interface {
	Create(ctx context.Context, w *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error)
	GetByProperty(ctx context.Context, propertyID int64) ([]*domain.AvailabilityWindow, error)
	Delete(ctx context.Context, propertyID, windowID int64) error
}

// AuthorizationRepository интерфейс репозитория авторизаций
type AuthorizationRepository interface {
	Create(ctx context.Context, auth *domain.Authorization) (*domain.Authorization, error)
	GetByProperty(ctx context.Context, propertyID int64) ([]*domain.Authorization, error)
	Delete(ctx context.Context, propertyID, authorizationID int64) error
}

// PropertyRepository интерфейс репозитория объектов недвижимости
type PropertyRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
	GetAdministrators(ctx context.Context, propertyID int64) ([]*domain.Administrator, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
