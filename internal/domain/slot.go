package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Slot часовой слот расписания мастера.
// Тройка (ProfessionalID, Date, StartTime) уникальна.
type Slot struct {
	ID             int64
	ProfessionalID int64
	Date           time.Time
	StartTime      types.TimeOfDay
	Available      bool
	CreatedAt      time.Time
}

// Window полуоткрытый интервал [Start, End)
type Window struct {
	Start types.TimeOfDay
	End   types.TimeOfDay
}

// Overlaps интервалы пересекаются. Соприкосновение концами не считается пересечением.
func (w Window) Overlaps(other Window) bool {
	return w.Start.IsBefore(other.End) && other.Start.IsBefore(w.End)
}

// Contains время попадает в интервал
func (w Window) Contains(t types.TimeOfDay) bool {
	return !t.IsBefore(w.Start) && t.IsBefore(w.End)
}

// AvailableWindow окно, в которое можно записаться
type AvailableWindow struct {
	StartTime        types.TimeOfDay
	EndTime          types.TimeOfDay
	ProfessionalID   int64
	ProfessionalName string
	DurationMinutes  int
}

// SlotStatistics загрузка расписания мастера за период
type SlotStatistics struct {
	Total     int
	Available int
	Occupied  int
}

// UtilizationRate доля занятых слотов в процентах (0-100)
func (s SlotStatistics) UtilizationRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Occupied) / float64(s.Total) * 100
}
