package get_accessible_properties

import (
	"context"

	"github.com/avolkov/PRS-VisitService/internal/service/visits/models"
)

type VisitService interface {
	GetAccessibleProperties(ctx context.Context, rawPhone string) (*models.PropertyListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
