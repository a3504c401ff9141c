package get_available_slots

import (
	"time"

	getAvailableSlots "github.com/avolkov/PRS-VisitService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	PropertyID           int64           `json:"propertyId"`
	PropertyName         string          `json:"propertyName"`
	VisitDurationMinutes int             `json:"visitDurationMinutes"`
	Slots                []AvailableSlot `json:"slots"`
}

// AvailableSlot модель доступного момента начала визита
type AvailableSlot struct {
	StartsAt        string `json:"startsAt"` // ISO 8601
	DurationMinutes int    `json:"durationMinutes"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartsAt:        slot.StartsAt.Format(time.RFC3339),
			DurationMinutes: slot.DurationMinutes,
		}
	}

	return &AvailableSlotsResponse{
		PropertyID:           resp.PropertyID,
		PropertyName:         resp.PropertyName,
		VisitDurationMinutes: resp.VisitDurationMinutes,
		Slots:                slots,
	}
}
