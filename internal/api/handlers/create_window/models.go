package create_window

import (
	"github.com/avolkov/PRS-VisitService/internal/service/schedule/models"
)

// CreateWindowRequest HTTP request model
type CreateWindowRequest struct {
	Kind      string  `json:"kind"`                // "dated" | "weekly"
	VisitDate *string `json:"visitDate,omitempty"` // "2026-03-15", только для dated
	Weekday   *int    `json:"weekday,omitempty"`   // 0=воскресенье .. 6=суббота, только для weekly
	StartTime string  `json:"startTime"`           // "10:00"
	EndTime   string  `json:"endTime"`             // "13:00"
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateWindowRequest) ToServiceRequest(propertyID, adminID int64) *models.CreateWindowRequest {
	return &models.CreateWindowRequest{
		AdminID:    adminID,
		PropertyID: propertyID,
		Kind:       r.Kind,
		VisitDate:  r.VisitDate,
		Weekday:    r.Weekday,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
	}
}
