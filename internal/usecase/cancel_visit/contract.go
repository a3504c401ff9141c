package cancel_visit

import (
	"context"

	"github.com/avolkov/PRS-VisitService/internal/domain"
	"github.com/avolkov/PRS-VisitService/internal/integrations/notifyservice"
)

// VisitRepository интерфейс репозитория визитов
type VisitRepository interface {
	// CancelByToken атомарно переводит confirmed-визит в cancelled
	CancelByToken(ctx context.Context, token string, reason string) (*domain.Visit, error)
	GetByToken(ctx context.Context, token string) (*domain.Visit, error)
}

// PropertyRepository интерфейс репозитория объектов недвижимости
type PropertyRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
	GetAdministrators(ctx context.Context, propertyID int64) ([]*domain.Administrator, error)
}

// NotifyServiceClient интерфейс клиента для NotifyService
type NotifyServiceClient interface {
	Send(ctx context.Context, req *notifyservice.SendRequest) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
