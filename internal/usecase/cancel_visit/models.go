package cancel_visit

import "time"

// Request модель запроса на отмену визита
type Request struct {
	AccessToken string // Токен - единственное доказательство владения визитом
	Reason      string // Причина отмены (опционально)
}

// Response модель ответа с отменённым визитом
type Response struct {
	ID                 int64
	PropertyID         int64
	ScheduledAt        time.Time
	Status             string
	TimesCancelled     int
	CancellationReason *string
	CancelledAt        *time.Time
}
