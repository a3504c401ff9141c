package get_available_slots

import "time"

// Request модель запроса на получение доступных слотов
type Request struct {
	PropertyID int64  // ID объекта недвижимости
	Phone      string // Телефон арендатора (канонизируется внутри usecase)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	PropertyID           int64  // ID объекта
	PropertyName         string // Название объекта
	VisitDurationMinutes int    // Длительность визита на момент генерации
	Slots                []Slot // Доступные моменты начала визита, хронологически
}

// Slot модель доступного момента начала визита
type Slot struct {
	StartsAt        time.Time // Абсолютный момент начала (с таймзоной)
	DurationMinutes int       // Длительность визита в минутах
}
