package domain

import "github.com/m04kA/SMC-SalonBooking/pkg/types"

// Правила расписания
const (
	SlotStepMinutes        = 60 // шаг генерации слотов
	MaxBookingCodeAttempts = 5
)

// DefaultClosingTime время, позже которого запись не может заканчиваться
var DefaultClosingTime = types.MustTimeOfDay(19, 0)

// Ограничения на входные данные
const (
	MaxClientNameLength = 200
	MaxReasonLength     = 500
)

// Форматы даты и времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, удерживающие слоты расписания
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// BlockingStatuses статусы, с которыми новое окно мастера не должно пересекаться.
// Завершенная запись время уже израсходовала, поэтому тоже блокирует.
var BlockingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}

// InactiveStatuses статусы, не занимающие время мастера
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusCompleted,
}
