package reschedule_visit

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.AccessToken == "" {
		return fmt.Errorf("%w: accessToken is required", ErrInvalidInput)
	}

	if req.NewScheduledAt.IsZero() {
		return fmt.Errorf("%w: newScheduledAt is required", ErrInvalidInput)
	}

	return nil
}
