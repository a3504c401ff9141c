package visits

import (
	"context"

	"github.com/avolkov/PRS-VisitService/internal/domain"
)

// VisitRepository интерфейс репозитория визитов
type VisitRepository interface {
	GetByToken(ctx context.Context, token string) (*domain.Visit, error)
	GetByPhone(ctx context.Context, phone string, status *domain.VisitStatus) ([]*domain.Visit, error)
	GetByPropertyWithFilter(ctx context.Context, filter domain.PropertyVisitsFilter) ([]*domain.Visit, error)
}

// PropertyRepository интерфейс репозитория объектов недвижимости
type PropertyRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Property, error)
	GetAdministrators(ctx context.Context, propertyID int64) ([]*domain.Administrator, error)
}

// AuthorizationRepository интерфейс репозитория авторизаций
type AuthorizationRepository interface {
	GetPropertyIDs(ctx context.Context, phone string) ([]int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
