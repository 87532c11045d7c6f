package check_availability

import (
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TenantID == "" {
		return fmt.Errorf("%w: tenantID is required", ErrInvalidInput)
	}

	if req.UnitKey == "" {
		return fmt.Errorf("%w: unitKey is required", ErrInvalidInput)
	}

	if req.CheckIn.IsZero() {
		return fmt.Errorf("%w: checkIn is required", ErrInvalidInput)
	}
	if err := req.CheckIn.Validate(); err != nil {
		return fmt.Errorf("%w: invalid checkIn: %v", ErrInvalidInput, err)
	}

	if !req.CheckOut.IsZero() {
		if err := req.CheckOut.Validate(); err != nil {
			return fmt.Errorf("%w: invalid checkOut: %v", ErrInvalidInput, err)
		}
		if req.CheckOut.Before(req.CheckIn) {
			return fmt.Errorf("%w: checkOut is before checkIn", ErrInvalidInput)
		}
	}

	if req.Mode != "" && !req.Mode.IsValid() {
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidInput, req.Mode)
	}

	return nil
}

// normalizeMode подставляет режим по умолчанию
func normalizeMode(mode domain.CalendarCategory) domain.CalendarCategory {
	if mode == "" {
		return domain.CategoryReservations
	}
	return mode
}
