package reschedule_visit

import "errors"

var (
	// ErrVisitNotFound возвращается, когда токен не принадлежит ни одному визиту
	ErrVisitNotFound = errors.New("reschedule_visit: visit not found")

	// ErrAlreadyTerminal возвращается, когда исходный визит уже отменён или завершён
	// Терминальный визит нельзя перенести - клиенту нужно бронировать заново
	ErrAlreadyTerminal = errors.New("reschedule_visit: visit is already in a terminal state")

	// ErrInvalidSlot возвращается, когда новый момент не входит в текущий
	// список доступных слотов; исходный визит остаётся без изменений
	ErrInvalidSlot = errors.New("reschedule_visit: requested instant is not an available slot")

	// ErrSlotTaken возвращается при проигрыше гонки за новый слот на этапе
	// коммита; исходный визит остаётся без изменений
	ErrSlotTaken = errors.New("reschedule_visit: slot was taken by a concurrent booking")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_visit: invalid input data")

	// ErrUnavailable возвращается при исчерпании повторов транзакции
	// или иных транзиентных ошибках хранилища
	ErrUnavailable = errors.New("reschedule_visit: storage temporarily unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_visit: internal error")
)
