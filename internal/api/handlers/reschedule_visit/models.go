package reschedule_visit

import (
	"time"

	rescheduleVisit "github.com/avolkov/PRS-VisitService/internal/usecase/reschedule_visit"
)

// RescheduleVisitRequest HTTP request model
type RescheduleVisitRequest struct {
	NewScheduledAt string `json:"newScheduledAt"` // ISO 8601
}

// RescheduledVisitResponse HTTP response model
type RescheduledVisitResponse struct {
	ID             int64  `json:"id"`
	PropertyID     int64  `json:"propertyId"`
	AccessToken    string `json:"accessToken"`
	ScheduledAt    string `json:"scheduledAt"`
	Status         string `json:"status"`
	TimesCancelled int    `json:"timesCancelled"`
	CreatedAt      string `json:"createdAt"`
	UpdatedAt      string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleVisitRequest) ToUseCaseRequest(accessToken string) (*rescheduleVisit.Request, error) {
	newScheduledAt, err := time.Parse(time.RFC3339, r.NewScheduledAt)
	if err != nil {
		return nil, err
	}

	return &rescheduleVisit.Request{
		AccessToken:    accessToken,
		NewScheduledAt: newScheduledAt,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleVisit.Response) *RescheduledVisitResponse {
	return &RescheduledVisitResponse{
		ID:             resp.ID,
		PropertyID:     resp.PropertyID,
		AccessToken:    resp.AccessToken,
		ScheduledAt:    resp.ScheduledAt.Format(time.RFC3339),
		Status:         resp.Status,
		TimesCancelled: resp.TimesCancelled,
		CreatedAt:      resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      resp.UpdatedAt.Format(time.RFC3339),
	}
}
