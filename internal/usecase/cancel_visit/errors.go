package cancel_visit

import "errors"

var (
	// ErrVisitNotFound возвращается, когда токен не принадлежит ни одному визиту
	ErrVisitNotFound = errors.New("cancel_visit: visit not found")

	// ErrAlreadyTerminal возвращается, когда визит уже отменён или завершён
	// Повторная отмена безопасна: состояние не меняется, счётчик не растёт
	ErrAlreadyTerminal = errors.New("cancel_visit: visit is already in a terminal state")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_visit: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_visit: internal error")
)
