package delete_window

import "context"

type ScheduleService interface {
	DeleteWindow(ctx context.Context, propertyID, windowID int64, adminID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
