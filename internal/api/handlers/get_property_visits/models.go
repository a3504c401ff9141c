package get_property_visits

import (
	"strconv"
	"time"

	"github.com/avolkov/PRS-VisitService/internal/domain"
	"github.com/avolkov/PRS-VisitService/internal/service/visits/models"
)

// ToServiceRequest создает запрос к сервису из path и query параметров
func ToServiceRequest(propertyID, adminID int64, startDateStr, endDateStr, statusStr, includeInactiveStr string) (*models.GetPropertyVisitsRequest, error) {
	req := &models.GetPropertyVisitsRequest{
		PropertyID: propertyID,
		AdminID:    adminID,
	}

	if startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, err
		}
		// Конец периода включителен: сдвигаем границу на следующую полночь
		endExclusive := endDate.AddDate(0, 0, 1)
		req.EndDate = &endExclusive
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
