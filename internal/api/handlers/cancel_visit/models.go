package cancel_visit

import (
	"time"

	cancelVisit "github.com/avolkov/PRS-VisitService/internal/usecase/cancel_visit"
)

// CancelVisitRequest HTTP request model
type CancelVisitRequest struct {
	Reason string `json:"reason,omitempty"`
}

// CancelledVisitResponse HTTP response model
type CancelledVisitResponse struct {
	ID                 int64   `json:"id"`
	PropertyID         int64   `json:"propertyId"`
	ScheduledAt        string  `json:"scheduledAt"`
	Status             string  `json:"status"`
	TimesCancelled     int     `json:"timesCancelled"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelVisit.Response) *CancelledVisitResponse {
	out := &CancelledVisitResponse{
		ID:                 resp.ID,
		PropertyID:         resp.PropertyID,
		ScheduledAt:        resp.ScheduledAt.Format(time.RFC3339),
		Status:             resp.Status,
		TimesCancelled:     resp.TimesCancelled,
		CancellationReason: resp.CancellationReason,
	}

	if resp.CancelledAt != nil {
		cancelledStr := resp.CancelledAt.Format(time.RFC3339)
		out.CancelledAt = &cancelledStr
	}

	return out
}
