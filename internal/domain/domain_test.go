package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWindow_Overlaps(t *testing.T) {
	booked := Window{Start: types.MustTimeOfDay(10, 0), End: types.MustTimeOfDay(11, 0)}

	tests := []struct {
		name      string
		candidate Window
		want      bool
	}{
		{"same window", Window{types.MustTimeOfDay(10, 0), types.MustTimeOfDay(11, 0)}, true},
		{"ends when booking starts", Window{types.MustTimeOfDay(9, 0), types.MustTimeOfDay(10, 0)}, false},
		{"starts when booking ends", Window{types.MustTimeOfDay(11, 0), types.MustTimeOfDay(12, 0)}, false},
		{"covers booking", Window{types.MustTimeOfDay(9, 0), types.MustTimeOfDay(12, 0)}, true},
		{"inside booking", Window{types.MustTimeOfDay(10, 15), types.MustTimeOfDay(10, 45)}, true},
		{"starts inside", Window{types.MustTimeOfDay(10, 30), types.MustTimeOfDay(11, 30)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.candidate.Overlaps(booked))
			assert.Equal(t, tt.want, booked.Overlaps(tt.candidate))
		})
	}
}

func TestWeekdayIndex_MondayIsZero(t *testing.T) {
	assert.Equal(t, 0, WeekdayIndex(date(2025, 1, 6)))
	assert.Equal(t, 5, WeekdayIndex(date(2025, 1, 11)))
	assert.Equal(t, 6, WeekdayIndex(date(2025, 1, 12)))
}

func TestScheduleTemplate_Slots(t *testing.T) {
	tpl := &ScheduleTemplate{
		ProfessionalID: 1,
		StartDate:      date(2025, 1, 6),
		EndDate:        date(2025, 1, 12),
		DailyStart:     types.MustTimeOfDay(9, 0),
		DailyEnd:       types.MustTimeOfDay(12, 0),
		Weekdays:       []int{0},
	}

	slots := tpl.Slots()

	require.Len(t, slots, 3)
	for i, s := range slots {
		assert.Equal(t, date(2025, 1, 6), s.Date)
		assert.Equal(t, types.MustTimeOfDay(9+i, 0), s.StartTime)
		assert.True(t, s.Available)
	}
}

func TestScheduleTemplate_DailyStartTimes(t *testing.T) {
	tpl := &ScheduleTemplate{DailyStart: types.MustTimeOfDay(9, 30), DailyEnd: types.MustTimeOfDay(11, 0)}
	assert.Equal(t, []types.TimeOfDay{types.MustTimeOfDay(9, 30), types.MustTimeOfDay(10, 30)}, tpl.DailyStartTimes())

	tpl = &ScheduleTemplate{DailyStart: types.MustTimeOfDay(12, 0), DailyEnd: types.MustTimeOfDay(12, 0)}
	assert.Empty(t, tpl.DailyStartTimes())

	tpl = &ScheduleTemplate{DailyStart: types.MustTimeOfDay(23, 0), DailyEnd: types.MustTimeOfDay(24, 0)}
	assert.Equal(t, []types.TimeOfDay{types.MustTimeOfDay(23, 0)}, tpl.DailyStartTimes())
}

func TestServiceBundle(t *testing.T) {
	bundle := ServiceBundle{
		{ID: 1, DurationMinutes: 60, Price: 30, Deposit: 10},
		{ID: 2, DurationMinutes: 30, Price: 20, Deposit: 15},
		{ID: 1, DurationMinutes: 60, Price: 30, Deposit: 10},
	}

	assert.Equal(t, 150, bundle.TotalDuration())
	assert.Equal(t, 80.0, bundle.TotalPrice())
	assert.Equal(t, 15.0, bundle.RequiredDeposit())
	assert.Equal(t, []int64{1, 2}, bundle.DistinctIDs())
}

func TestBooking_StatusRules(t *testing.T) {
	b := &Booking{Status: StatusPending}
	assert.True(t, b.IsActive())
	assert.True(t, b.CanBeConfirmed())
	assert.False(t, b.CanBeCompleted())

	b.Status = StatusConfirmed
	assert.True(t, b.CanBeCancelled())
	assert.True(t, b.CanBeCompleted())

	b.Status = StatusCompleted
	assert.False(t, b.CanBeCancelled())
	assert.False(t, b.CanBeRescheduled())

	b.Status = StatusCancelled
	assert.True(t, b.IsCancelled())
	assert.False(t, b.IsActive())
	assert.False(t, BookingStatus("no_show").Valid())
}

func TestSlotStatistics_UtilizationRate(t *testing.T) {
	assert.Equal(t, 0.0, SlotStatistics{}.UtilizationRate())
	assert.InDelta(t, 25.0, SlotStatistics{Total: 8, Available: 6, Occupied: 2}.UtilizationRate(), 0.001)
}

func TestBooking_PaymentState(t *testing.T) {
	b := &Booking{TotalPrice: 40}
	assert.Equal(t, PaymentStatePending, b.PaymentState())

	b.DepositPaid = 10
	assert.Equal(t, PaymentStatePartial, b.PaymentState())

	b.DepositPaid = 40
	assert.Equal(t, PaymentStatePaid, b.PaymentState())
}

func TestBookingStatistics_Outstanding(t *testing.T) {
	assert.Equal(t, 30.0, BookingStatistics{Revenue: 50, Deposits: 20}.Outstanding())
	assert.Equal(t, 0.0, BookingStatistics{Revenue: 20, Deposits: 25}.Outstanding())
}
