package reschedule_visit

import (
	"context"

	rescheduleVisit "github.com/avolkov/PRS-VisitService/internal/usecase/reschedule_visit"
)

type RescheduleVisitUseCase interface {
	Execute(ctx context.Context, req *rescheduleVisit.Request) (*rescheduleVisit.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
