package domain

import "time"

// VisitStatus represents the status of a visit
type VisitStatus string

const (
	StatusConfirmed VisitStatus = "confirmed"
	StatusCancelled VisitStatus = "cancelled"
	StatusCompleted VisitStatus = "completed"
)

// Visit represents a confirmed property visit of a prospective tenant
//
// Инварианты:
//   - не более одного визита в статусе confirmed на пару (property_id, scheduled_at);
//     обеспечивается частичным уникальным индексом в БД
//   - access_token неизменяем и уникален среди всех визитов
//   - статус меняется только confirmed -> cancelled или confirmed -> completed
type Visit struct {
	ID          int64
	PropertyID  int64
	AccessToken string

	// Данные заявителя
	Phone     string
	FirstName string
	LastName  string
	Email     string

	// Анкета для страховой (прозрачно прокидывается, движок её не интерпретирует)
	MonthlyIncome *float64
	NumTenants    int
	NumMinors     int
	HasPets       bool
	IsSmoker      bool
	Occupation    *string
	Notes         *string

	ScheduledAt time.Time
	Status      VisitStatus

	TimesCancelled     int
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal returns true if the visit is in a terminal state
func (v *Visit) IsTerminal() bool {
	return v.Status == StatusCancelled || v.Status == StatusCompleted
}

// CanBeCancelled returns true if the visit can still be cancelled
func (v *Visit) CanBeCancelled() bool {
	return v.Status == StatusConfirmed
}

// IsElapsed returns true if the scheduled instant is already in the past
func (v *Visit) IsElapsed(now time.Time) bool {
	return v.ScheduledAt.Before(now)
}

// PropertyVisitsFilter фильтр для получения визитов по объекту недвижимости
type PropertyVisitsFilter struct {
	PropertyID      int64        // Обязательный параметр
	StartDate       *time.Time   // Начало периода (опционально)
	EndDate         *time.Time   // Конец периода (опционально)
	Status          *VisitStatus // Фильтр по статусу (опционально)
	IncludeInactive bool         // Включать ли отменённые и завершённые визиты
}
