package create_visit

import (
	"fmt"

	"github.com/avolkov/PRS-VisitService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.PropertyID <= 0 {
		return fmt.Errorf("%w: propertyID must be positive", ErrInvalidInput)
	}

	if req.Phone == "" {
		return fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}

	if req.ScheduledAt.IsZero() {
		return fmt.Errorf("%w: scheduledAt is required", ErrInvalidInput)
	}

	if req.FirstName == "" || len(req.FirstName) > domain.MaxNameLength {
		return fmt.Errorf("%w: firstName is required and must be at most %d characters", ErrInvalidInput, domain.MaxNameLength)
	}

	if req.LastName == "" || len(req.LastName) > domain.MaxNameLength {
		return fmt.Errorf("%w: lastName is required and must be at most %d characters", ErrInvalidInput, domain.MaxNameLength)
	}

	if req.Email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	if req.NumTenants < 0 || req.NumMinors < 0 {
		return fmt.Errorf("%w: tenant counts must be non-negative", ErrInvalidInput)
	}

	if req.MonthlyIncome != nil && *req.MonthlyIncome < 0 {
		return fmt.Errorf("%w: monthlyIncome must be non-negative", ErrInvalidInput)
	}

	if req.Occupation != nil && len(*req.Occupation) > domain.MaxOccupationLength {
		return fmt.Errorf("%w: occupation must be at most %d characters", ErrInvalidInput, domain.MaxOccupationLength)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}
