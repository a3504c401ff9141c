package create_visit

import (
	"time"

	createVisit "github.com/avolkov/PRS-VisitService/internal/usecase/create_visit"
)

// CreateVisitRequest HTTP request model
type CreateVisitRequest struct {
	PropertyID  int64  `json:"propertyId"`
	ScheduledAt string `json:"scheduledAt"` // ISO 8601, например "2026-03-15T10:30:00+01:00"

	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`

	MonthlyIncome *float64 `json:"monthlyIncome,omitempty"`
	NumTenants    int      `json:"numTenants"`
	NumMinors     int      `json:"numMinors"`
	HasPets       bool     `json:"hasPets"`
	IsSmoker      bool     `json:"isSmoker"`
	Occupation    *string  `json:"occupation,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
}

// VisitResponse HTTP response model
type VisitResponse struct {
	ID          int64  `json:"id"`
	PropertyID  int64  `json:"propertyId"`
	AccessToken string `json:"accessToken"`
	Phone       string `json:"phone"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	ScheduledAt string `json:"scheduledAt"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateVisitRequest) ToUseCaseRequest(visitorPhone string) (*createVisit.Request, error) {
	scheduledAt, err := time.Parse(time.RFC3339, r.ScheduledAt)
	if err != nil {
		return nil, err
	}

	return &createVisit.Request{
		PropertyID:    r.PropertyID,
		Phone:         visitorPhone,
		ScheduledAt:   scheduledAt,
		FirstName:     r.FirstName,
		LastName:      r.LastName,
		Email:         r.Email,
		MonthlyIncome: r.MonthlyIncome,
		NumTenants:    r.NumTenants,
		NumMinors:     r.NumMinors,
		HasPets:       r.HasPets,
		IsSmoker:      r.IsSmoker,
		Occupation:    r.Occupation,
		Notes:         r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createVisit.Response) *VisitResponse {
	return &VisitResponse{
		ID:          resp.ID,
		PropertyID:  resp.PropertyID,
		AccessToken: resp.AccessToken,
		Phone:       resp.Phone,
		FirstName:   resp.FirstName,
		LastName:    resp.LastName,
		Email:       resp.Email,
		ScheduledAt: resp.ScheduledAt.Format(time.RFC3339),
		Status:      resp.Status,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   resp.UpdatedAt.Format(time.RFC3339),
	}
}
