package get_windows

import (
	"context"

	"github.com/avolkov/PRS-VisitService/internal/service/schedule/models"
)

type ScheduleService interface {
	GetWindows(ctx context.Context, propertyID int64, adminID int64) (*models.WindowListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
