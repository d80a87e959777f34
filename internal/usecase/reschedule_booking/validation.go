package reschedule_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.Code) == "" {
		return fmt.Errorf("%w: code is required", ErrInvalidInput)
	}

	if req.NewDate.IsZero() {
		return fmt.Errorf("%w: newDate is required", ErrInvalidInput)
	}

	if !req.NewTime.Valid() {
		return fmt.Errorf("%w: invalid newTime", ErrInvalidInput)
	}

	if req.Reason != nil && len(*req.Reason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason is too long", ErrInvalidInput)
	}

	return nil
}

// findOverlap первая неотмененная запись, пересекающаяся с окном
func findOverlap(window domain.Window, bookings []*domain.Booking) *domain.Booking {
	for _, b := range bookings {
		if b.BlocksTime() && window.Overlaps(b.Window()) {
			return b
		}
	}
	return nil
}
