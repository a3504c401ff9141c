package create_authorization

import (
	"context"

	"github.com/avolkov/PRS-VisitService/internal/service/schedule/models"
)

type ScheduleService interface {
	CreateAuthorization(ctx context.Context, req *models.CreateAuthorizationRequest) (*models.AuthorizationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
