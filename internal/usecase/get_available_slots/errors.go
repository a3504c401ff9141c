package get_available_slots

import "errors"

var (
	// ErrPropertyNotFound возвращается, когда объект недвижимости не найден
	ErrPropertyNotFound = errors.New("property not found")

	// ErrNotAuthorized возвращается, когда телефон не авторизован для объекта
	// Никакие данные о слотах при этом не раскрываются
	ErrNotAuthorized = errors.New("phone is not authorized for this property")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
