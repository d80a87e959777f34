package resolve_availability

import (
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if len(req.ServiceIDs) == 0 {
		return fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}

	for _, id := range req.ServiceIDs {
		if id <= 0 {
			return fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
		}
	}

	return nil
}

// buildBundle собирает услуги в порядке запроса. Отсутствующая или отключенная услуга
// делает запрос некорректным.
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
