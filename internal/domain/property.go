package domain

import "time"

// Property represents a rental property available for visits
type Property struct {
	ID               int64
	Name             string
	FullAddress      string
	CadastralRef     string
	InsuranceCompany string
	ListingURL       *string
	MonthlyPrice     float64

	// VisitDurationMinutes длительность одного визита; меняется администратором
	// и влияет только на генерацию будущих слотов, существующие визиты не трогает
	VisitDurationMinutes int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Administrator represents a property administrator
// Администраторы получают уведомления об отменах визитов
type Administrator struct {
	ID    int64
	Name  string
	Email string
	Phone string
}

// HasValidDuration returns true if the visit duration is within allowed bounds
func (p *Property) HasValidDuration() bool {
	return p.VisitDurationMinutes >= MinVisitDurationMinutes &&
		p.VisitDurationMinutes <= MaxVisitDurationMinutes
}
