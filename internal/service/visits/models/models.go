package models

import (
	"errors"
	"time"

	"github.com/avolkov/PRS-VisitService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid visit status")
)

// Request модели

// GetVisitorVisitsRequest запрос на получение истории визитов заявителя
type GetVisitorVisitsRequest struct {
	Phone  string  `json:"phone"`
	Status *string `json:"status,omitempty"`
}

// GetPropertyVisitsRequest запрос на получение визитов объекта недвижимости
type GetPropertyVisitsRequest struct {
	AdminID         int64      `json:"adminId"`
	PropertyID      int64      `json:"propertyId"`
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые и завершённые визиты
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetPropertyVisitsRequest) ToDomainFilter() (domain.PropertyVisitsFilter, error) {
	filter := domain.PropertyVisitsFilter{
		PropertyID:      r.PropertyID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainVisitStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// VisitResponse ответ с данными визита
type VisitResponse struct {
	ID          int64  `json:"id"`
	PropertyID  int64  `json:"propertyId"`
	ScheduledAt string `json:"scheduledAt"` // ISO 8601
	Status      string `json:"status"`

	Phone     string `json:"phone"`
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

	TimesCancelled     int     `json:"timesCancelled"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// VisitListResponse ответ со списком визитов
type VisitListResponse struct {
	Visits []VisitResponse `json:"visits"`
}

// PropertyResponse ответ с данными объекта недвижимости
type PropertyResponse struct {
	ID                   int64   `json:"id"`
	Name                 string  `json:"name"`
	FullAddress          string  `json:"fullAddress"`
	MonthlyPrice         float64 `json:"monthlyPrice"`
	ListingURL           *string `json:"listingUrl,omitempty"`
	VisitDurationMinutes int     `json:"visitDurationMinutes"`
}

// PropertyListResponse ответ со списком объектов, доступных заявителю
type PropertyListResponse struct {
	Properties []PropertyResponse `json:"properties"`
}

// Методы конвертации

// FromDomainVisit конвертирует domain модель в DTO
func FromDomainVisit(v *domain.Visit) *VisitResponse {
	if v == nil {
		return nil
	}

	resp := &VisitResponse{
		ID:                 v.ID,
		PropertyID:         v.PropertyID,
		ScheduledAt:        v.ScheduledAt.Format(time.RFC3339),
		Status:             string(v.Status),
		Phone:              v.Phone,
		FirstName:          v.FirstName,
		LastName:           v.LastName,
		Email:              v.Email,
		MonthlyIncome:      v.MonthlyIncome,
		NumTenants:         v.NumTenants,
		NumMinors:          v.NumMinors,
		HasPets:            v.HasPets,
		IsSmoker:           v.IsSmoker,
		Occupation:         v.Occupation,
		Notes:              v.Notes,
		TimesCancelled:     v.TimesCancelled,
		CancellationReason: v.CancellationReason,
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
	}

	if v.CancelledAt != nil {
		cancelledStr := v.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainVisitList конвертирует список domain моделей в DTO
func FromDomainVisitList(visits []*domain.Visit) *VisitListResponse {
	if visits == nil {
		return &VisitListResponse{
			Visits: []VisitResponse{},
		}
	}

	resp := &VisitListResponse{
		Visits: make([]VisitResponse, len(visits)),
	}

	for i, visit := range visits {
		if visitResp := FromDomainVisit(visit); visitResp != nil {
			resp.Visits[i] = *visitResp
		}
	}

	return resp
}

// FromDomainProperty конвертирует domain модель объекта в DTO
func FromDomainProperty(p *domain.Property) *PropertyResponse {
	if p == nil {
		return nil
	}

	return &PropertyResponse{
		ID:                   p.ID,
		Name:                 p.Name,
		FullAddress:          p.FullAddress,
		MonthlyPrice:         p.MonthlyPrice,
		ListingURL:           p.ListingURL,
		VisitDurationMinutes: p.VisitDurationMinutes,
	}
}

// FromDomainPropertyList конвертирует список domain моделей объектов в DTO
func FromDomainPropertyList(properties []*domain.Property) *PropertyListResponse {
	if properties == nil {
		return &PropertyListResponse{
			Properties: []PropertyResponse{},
		}
	}

	resp := &PropertyListResponse{
		Properties: make([]PropertyResponse, len(properties)),
	}

	for i, property := range properties {
		if propertyResp := FromDomainProperty(property); propertyResp != nil {
			resp.Properties[i] = *propertyResp
		}
	}

	return resp
}

// ToDomainVisitStatus конвертирует строку в domain.VisitStatus с валидацией
func ToDomainVisitStatus(status string) (domain.VisitStatus, error) {
	s := domain.VisitStatus(status)

	validStatuses := []domain.VisitStatus{
		domain.StatusConfirmed,
		domain.StatusCancelled,
		domain.StatusCompleted,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
