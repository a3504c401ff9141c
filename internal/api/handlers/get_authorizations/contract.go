package get_authorizations

import (
	"context"

	"github.com/avolkov/PRS-VisitService/internal/service/schedule/models"
)

type ScheduleService interface {
	GetAuthorizations(ctx context.Context, propertyID int64, adminID int64) (*models.AuthorizationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
