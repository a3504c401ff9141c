package schedule

import "errors"

var (
	// ErrPropertyNotFound возвращается, когда объект недвижимости не найден
	ErrPropertyNotFound = errors.New("property not found")

	// ErrWindowNotFound возвращается, когда окно доступности не найдено
	ErrWindowNotFound = errors.New("availability window not found")

	// ErrWindowAlreadyExists возвращается при попытке создать идентичное окно
	ErrWindowAlreadyExists = errors.New("identical availability window already exists")

	// ErrAuthorizationNotFound возвращается, когда авторизация не найдена
	ErrAuthorizationNotFound = errors.New("authorization not found")

	// ErrAuthorizationAlreadyExists возвращается, когда телефон уже авторизован
	ErrAuthorizationAlreadyExists = errors.New("phone is already authorized for property")

	// ErrAccessDenied возвращается, когда у администратора нет прав на объект
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
