package create_visit

import (
	"context"
	"time"

	"github.com/avolkov/PRS-VisitService/internal/domain"
	"github.com/avolkov/PRS-VisitService/internal/integrations/notifyservice"
)

// VisitRepository интерфейс репозитория визитов
type VisitRepository interface {
	CreateConfirmed(ctx context.Context, visit *domain.Visit) (*domain.Visit, error)
	GetByPropertyWithFilter(ctx context.Context, filter domain.PropertyVisitsFilter) ([]*domain.Visit, error)
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

// NotifyServiceClient интерфейс клиента для NotifyService
type NotifyServiceClient interface {
	Send(ctx context.Context, req *notifyservice.SendRequest) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TokenGenerator интерфейс генерации access token (для тестирования)
type TokenGenerator interface {
	NewToken() string
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
