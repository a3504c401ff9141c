package get_visitor_visits

import (
	"context"

	"github.com/avolkov/PRS-VisitService/internal/service/visits/models"
)

type VisitService interface {
	GetVisitorVisits(ctx context.Context, req *models.GetVisitorVisitsRequest) (*models.VisitListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
