package delete_authorization

import "context"

type ScheduleService interface {
	DeleteAuthorization(ctx context.Context, propertyID, authorizationID int64, adminID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
