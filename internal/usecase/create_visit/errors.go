package create_visit

import "errors"

var (
	// ErrPropertyNotFound возвращается, когда объект недвижимости не найден
	ErrPropertyNotFound = errors.New("create_visit: property not found")

	// ErrNotAuthorized возвращается, когда телефон не авторизован для объекта
	ErrNotAuthorized = errors.New("create_visit: phone is not authorized for this property")

	// ErrInvalidSlot возвращается, когда запрошенный момент не входит в текущий
	// список доступных слотов (не выровнен по сетке, в прошлом или вне окон)
	// Клиенту следует запросить свежий список слотов
	ErrInvalidSlot = errors.New("create_visit: requested instant is not an available slot")

	// ErrSlotTaken возвращается при проигрыше гонки за слот на этапе коммита
	// Отличается от ErrInvalidSlot, чтобы клиент мог автоматически повторить
	// попытку по свежему списку слотов
	ErrSlotTaken = errors.New("create_visit: slot was taken by a concurrent booking")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_visit: invalid input data")

	// ErrUnavailable возвращается при исчерпании повторов транзакции
	// или иных транзиентных ошибках хранилища
	ErrUnavailable = errors.New("create_visit: storage temporarily unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_visit: internal error")
)
