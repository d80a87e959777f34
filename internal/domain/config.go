package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// ScheduleTemplate рабочие часы мастера, по которым генерируются слоты.
// Weekdays: 0 = понедельник ... 6 = воскресенье.
type ScheduleTemplate struct {
	ProfessionalID int64
	StartDate      time.Time // включительно
	EndDate        time.Time // включительно
	DailyStart     types.TimeOfDay
	DailyEnd       types.TimeOfDay
	Weekdays       []int
}

// WeekdayIndex номер дня недели с понедельника (0..6)
func WeekdayIndex(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}

// IsWorkingDay дата попадает в выбранные дни недели
func (t *ScheduleTemplate) IsWorkingDay(date time.Time) bool {
	idx := WeekdayIndex(date)
	for _, wd := range t.Weekdays {
		if wd == idx {
			return true
		}
	}
	return false
}

// DailyStartTimes времена начала слотов в рабочий день: от DailyStart с шагом
// в час, пока время строго меньше DailyEnd
func (t *ScheduleTemplate) DailyStartTimes() []types.TimeOfDay {
	times := make([]types.TimeOfDay, 0)
	for current := t.DailyStart; current.IsBefore(t.DailyEnd); {
		times = append(times, current)
		next, err := current.AddMinutes(SlotStepMinutes)
		if err != nil {
			break
		}
		current = next
	}
	return times
}

// Days рабочие даты периода
func (t *ScheduleTemplate) Days() []time.Time {
	days := make([]time.Time, 0)
	for d := DateOnly(t.StartDate); !d.After(DateOnly(t.EndDate)); d = d.AddDate(0, 0, 1) {
		if t.IsWorkingDay(d) {
			days = append(days, d)
		}
	}
	return days
}

// Slots все слоты шаблона
func (t *ScheduleTemplate) Slots() []*Slot {
	starts := t.DailyStartTimes()
	days := t.Days()
	slots := make([]*Slot, 0, len(starts)*len(days))
	for _, day := range days {
		for _, start := range starts {
			slots = append(slots, &Slot{
				ProfessionalID: t.ProfessionalID,
				Date:           day,
				StartTime:      start,
				Available:      true,
			})
		}
	}
	return slots
}

// DateOnly обнуляет время, сохраняя календарную дату в UTC
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
