package authorization

import "errors"

var (
	// ErrAuthorizationNotFound возвращается, когда авторизация не найдена
	ErrAuthorizationNotFound = errors.New("authorization.repository: authorization not found")

	// ErrDuplicateAuthorization возвращается, когда телефон уже авторизован для объекта
	ErrDuplicateAuthorization = errors.New("authorization.repository: phone already authorized for property")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("authorization.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("authorization.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("authorization.repository: failed to scan row")
)
