package create_visit

import (
	"context"

	createVisit "github.com/avolkov/PRS-VisitService/internal/usecase/create_visit"
)

type CreateVisitUseCase interface {
	Execute(ctx context.Context, req *createVisit.Request) (*createVisit.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
