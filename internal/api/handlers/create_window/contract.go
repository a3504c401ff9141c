package create_window

import (
	"context"

	"github.com/avolkov/PRS-VisitService/internal/service/schedule/models"
)

type ScheduleService interface {
	CreateWindow(ctx context.Context, req *models.CreateWindowRequest) (*models.WindowResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
