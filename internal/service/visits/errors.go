package visits

import "errors"

var (
	// ErrVisitNotFound возвращается, когда визит не найден
	ErrVisitNotFound = errors.New("visit not found")

	// ErrPropertyNotFound возвращается, когда объект недвижимости не найден
	ErrPropertyNotFound = errors.New("property not found")

	// ErrAccessDenied возвращается, когда у администратора нет прав на объект
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidStatus возвращается при попытке фильтровать по недопустимому статусу
	ErrInvalidStatus = errors.New("invalid visit status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
