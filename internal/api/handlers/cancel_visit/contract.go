package cancel_visit

import (
	"context"

	cancelVisit "github.com/avolkov/PRS-VisitService/internal/usecase/cancel_visit"
)

type CancelVisitUseCase interface {
	Execute(ctx context.Context, req *cancelVisit.Request) (*cancelVisit.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
