package resolve_availability

import (
	"sort"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

type windowKey struct {
	start          types.TimeOfDay
	professionalID int64
}

// buildWindows строит окна записи из свободных слотов.
//
// Каждый свободный слот дает кандидата [start, start+duration). Кандидат отбрасывается,
// если заканчивается позже closing или пересекается хотя бы с одной активной записью
// того же мастера. Касание концами пересечением не считается:
//
//	запись 10:00-11:00, длительность 60: 09:00 и 11:00 подходят, 10:00 нет
//	запись 10:00-11:00, длительность 90: 09:00 не подходит (09:00-10:30)
//
// Результат без повторов, по возрастанию времени, затем ID мастера.
func buildWindows(
	professionals []*domain.Professional,
	slots []*domain.Slot,
	bookings []*domain.Booking,
	duration int,
	closing types.TimeOfDay,
) []domain.AvailableWindow {
	names := make(map[int64]string, len(professionals))
	for _, p := range professionals {
		names[p.ID] = p.Name
	}

	busy := make(map[int64][]domain.Window)
	for _, b := range bookings {
		if b.IsActive() {
			busy[b.ProfessionalID] = append(busy[b.ProfessionalID], b.Window())
		}
	}

	seen := make(map[windowKey]struct{}, len(slots))
	windows := make([]domain.AvailableWindow, 0, len(slots))

	for _, slot := range slots {
		name, eligible := names[slot.ProfessionalID]
		if !eligible || !slot.Available {
			continue
		}

		end, err := slot.StartTime.AddMinutes(duration)
		if err != nil || end.IsAfter(closing) {
			continue
		}

		candidate := domain.Window{Start: slot.StartTime, End: end}
		if overlapsAny(candidate, busy[slot.ProfessionalID]) {
			continue
		}

		key := windowKey{start: slot.StartTime, professionalID: slot.ProfessionalID}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		windows = append(windows, domain.AvailableWindow{
			StartTime:        candidate.Start,
			EndTime:          candidate.End,
			ProfessionalID:   slot.ProfessionalID,
			ProfessionalName: name,
			DurationMinutes:  duration,
		})
	}

	sort.Slice(windows, func(i, j int) bool {
		if windows[i].StartTime != windows[j].StartTime {
			return windows[i].StartTime.IsBefore(windows[j].StartTime)
		}
		return windows[i].ProfessionalID < windows[j].ProfessionalID
	})

	return windows
}

func overlapsAny(candidate domain.Window, busy []domain.Window) bool {
	for _, w := range busy {
		if candidate.Overlaps(w) {
			return true
		}
	}
	return false
}
