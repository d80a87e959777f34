package resolve_availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

var monday = time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

func tod(h, m int) types.TimeOfDay { return types.MustTimeOfDay(h, m) }

func hourlySlots(professionalID int64, hours ...int) []*domain.Slot {
	slots := make([]*domain.Slot, len(hours))
	for i, h := range hours {
		slots[i] = &domain.Slot{ProfessionalID: professionalID, Date: monday, StartTime: tod(h, 0), Available: true}
	}
	return slots
}

func booking(professionalID int64, start, end types.TimeOfDay, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{ProfessionalID: professionalID, Date: monday, StartTime: start, EndTime: end, Status: status}
}

func starts(windows []domain.AvailableWindow) []string {
	result := make([]string, len(windows))
	for i, w := range windows {
		result[i] = w.StartTime.String()
	}
	return result
}

func TestBuildWindows_ExcludesOverlappingCandidates(t *testing.T) {
	pros := []*domain.Professional{{ID: 1, Name: "Ana"}}
	slots := hourlySlots(1, 9, 11)
	bookings := []*domain.Booking{booking(1, tod(10, 0), tod(11, 0), domain.StatusPending)}

	windows := buildWindows(pros, slots, bookings, 60, tod(19, 0))

	assert.Equal(t, []string{"09:00", "11:00"}, starts(windows))
	assert.Equal(t, tod(10, 0), windows[0].EndTime)
	assert.Equal(t, "Ana", windows[0].ProfessionalName)
}

func TestBuildWindows_LongBundleOverlapsNextBooking(t *testing.T) {
	pros := []*domain.Professional{{ID: 1, Name: "Ana"}}
	slots := hourlySlots(1, 8, 9, 11)
	bookings := []*domain.Booking{booking(1, tod(10, 0), tod(11, 0), domain.StatusConfirmed)}

	windows := buildWindows(pros, slots, bookings, 90, tod(19, 0))

	assert.Equal(t, []string{"08:00", "11:00"}, starts(windows))
}

func TestBuildWindows_IgnoresInactiveBookings(t *testing.T) {
	pros := []*domain.Professional{{ID: 1, Name: "Ana"}}
	slots := hourlySlots(1, 10)
	bookings := []*domain.Booking{
		booking(1, tod(10, 0), tod(11, 0), domain.StatusCancelled),
		booking(1, tod(10, 0), tod(11, 0), domain.StatusCompleted),
	}

	windows := buildWindows(pros, slots, bookings, 60, tod(19, 0))

	assert.Equal(t, []string{"10:00"}, starts(windows))
}

func TestBuildWindows_ClosingBound(t *testing.T) {
	pros := []*domain.Professional{{ID: 1, Name: "Ana"}}
	slots := hourlySlots(1, 17, 18)

	windows := buildWindows(pros, slots, nil, 90, tod(19, 0))

	assert.Equal(t, []string{"17:00"}, starts(windows))
	assert.Equal(t, tod(18, 30), windows[0].EndTime)
}

func TestBuildWindows_SortsByStartThenProfessional(t *testing.T) {
	pros := []*domain.Professional{{ID: 1, Name: "Ana"}, {ID: 2, Name: "Bea"}}
	slots := append(hourlySlots(2, 9, 10), hourlySlots(1, 10, 9)...)
	slots = append(slots, hourlySlots(1, 9)...)

	windows := buildWindows(pros, slots, nil, 60, tod(19, 0))

	require.Len(t, windows, 4)
	assert.Equal(t, []string{"09:00", "09:00", "10:00", "10:00"}, starts(windows))
	assert.Equal(t, int64(1), windows[0].ProfessionalID)
	assert.Equal(t, int64(2), windows[1].ProfessionalID)
	assert.Equal(t, int64(1), windows[2].ProfessionalID)
}

func TestBuildWindows_SkipsIneligibleProfessionals(t *testing.T) {
	pros := []*domain.Professional{{ID: 1, Name: "Ana"}}
	slots := append(hourlySlots(1, 9), hourlySlots(3, 9)...)

	windows := buildWindows(pros, slots, nil, 60, tod(19, 0))

	require.Len(t, windows, 1)
	assert.Equal(t, int64(1), windows[0].ProfessionalID)
}
