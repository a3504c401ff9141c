package reschedule_visit

import "time"

// Request модель запроса на перенос визита
type Request struct {
	AccessToken    string    // Токен исходного визита
	NewScheduledAt time.Time // Новый момент начала визита
}

// Response модель ответа с визитом-заменой
type Response struct {
	ID          int64
	PropertyID  int64
	AccessToken string // Новый токен; токен исходного визита больше не действует для управления
	ScheduledAt time.Time
	Status      string

	TimesCancelled int

	CreatedAt time.Time
	UpdatedAt time.Time
}
