package generate_slots

import (
	"fmt"
	"sort"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// validateRequest проверяет запрос и возвращает нормализованный набор дней недели
func validateRequest(req *Request, maxDays int) ([]int, error) {
	if req.ProfessionalID <= 0 {
		return nil, fmt.Errorf("%w: professionalId must be positive", ErrInvalidInput)
	}

	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return nil, fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}

	start := domain.DateOnly(req.StartDate)
	end := domain.DateOnly(req.EndDate)
	if end.Before(start) {
		return nil, fmt.Errorf("%w: endDate is before startDate", ErrInvalidInput)
	}

	days := int(end.Sub(start).Hours()/24) + 1
	if maxDays > 0 && days > maxDays {
		return nil, fmt.Errorf("%w: range of %d days exceeds limit of %d", ErrInvalidInput, days, maxDays)
	}

	if !req.DailyStart.Valid() || !req.DailyEnd.Valid() {
		return nil, fmt.Errorf("%w: invalid daily working hours", ErrInvalidInput)
	}

	return normalizeWeekdays(req.Weekdays)
}

// normalizeWeekdays убирает повторы и сортирует дни недели
func normalizeWeekdays(weekdays []int) ([]int, error) {
	seen := make(map[int]struct{}, len(weekdays))
	result := make([]int, 0, len(weekdays))
	for _, wd := range weekdays {
		if wd < 0 || wd > 6 {
			return nil, fmt.Errorf("%w: weekday %d is out of range 0..6", ErrInvalidInput, wd)
		}
		if _, ok := seen[wd]; ok {
			continue
		}
		seen[wd] = struct{}{}
		result = append(result, wd)
	}

	if len(result) == 0 {
		return nil, ErrNoValidWeekdays
	}

	sort.Ints(result)
	return result, nil
}
