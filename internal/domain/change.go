package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// ChangeType тип изменения записи
type ChangeType string

const (
	ChangeCancellation ChangeType = "cancellation"
	ChangeReschedule   ChangeType = "reschedule"
)

// BookingChange запись журнала изменений. Журнал только дополняется.
type BookingChange struct {
	ID           int64
	BookingID    int64
	Type         ChangeType
	OriginalDate time.Time
	OriginalTime types.TimeOfDay
	NewDate      *time.Time
	NewTime      *types.TimeOfDay
	Reason       *string
	CreatedAt    time.Time
}
