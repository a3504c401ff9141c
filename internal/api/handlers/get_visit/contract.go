package get_visit

import (
	"context"

	"github.com/avolkov/PRS-VisitService/internal/service/visits/models"
)

type VisitService interface {
	GetByToken(ctx context.Context, token string) (*models.VisitResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
