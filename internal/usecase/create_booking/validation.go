package create_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	name := strings.TrimSpace(req.Client.Name)
	if name == "" {
		return fmt.Errorf("%w: client name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxClientNameLength {
		return fmt.Errorf("%w: client name is too long", ErrInvalidInput)
	}

	if isBlank(req.Client.Phone) && isBlank(req.Client.Email) {
		return fmt.Errorf("%w: phone or email is required", ErrInvalidInput)
	}

	if req.ProfessionalID <= 0 {
		return fmt.Errorf("%w: professionalId must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if !req.StartTime.Valid() {
		return fmt.Errorf("%w: invalid startTime", ErrInvalidInput)
	}

	if len(req.ServiceIDs) == 0 {
		return fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}
	for _, id := range req.ServiceIDs {
		if id <= 0 {
			return fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
		}
	}

	if req.DepositPaid < 0 {
		return fmt.Errorf("%w: depositPaid must not be negative", ErrInvalidInput)
	}
	if req.TotalPrice != nil && *req.TotalPrice < 0 {
		return fmt.Errorf("%w: totalPrice must not be negative", ErrInvalidInput)
	}

	return nil
}

func isBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

// buildBundle собирает услуги в порядке запроса
func buildBundle(ids []int64, services map[int64]*domain.Service) (domain.ServiceBundle, error) {
	bundle := make(domain.ServiceBundle, 0, len(ids))
	for _, id := range ids {
		s, ok := services[id]
		if !ok || !s.Active {
			return nil, fmt.Errorf("%w: id=%d", ErrServiceNotFound, id)
		}
		bundle = append(bundle, s)
	}
	return bundle, nil
}

// bookingLines снимок услуг для строк записи
func bookingLines(bundle domain.ServiceBundle) []domain.BookingService {
	lines := make([]domain.BookingService, len(bundle))
	for i, s := range bundle {
		lines[i] = domain.BookingService{
			ServiceID:       s.ID,
			ServiceName:     s.Name,
			ServicePrice:    s.Price,
			DurationMinutes: s.DurationMinutes,
			Position:        i,
		}
	}
	return lines
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
