package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// Valid returns true for a known status
func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Client контактные данные клиента
type Client struct {
	Name  string
	Phone *string
	Email *string
}

// BookingService строка записи: снимок услуги на момент бронирования
type BookingService struct {
	ServiceID       int64
	ServiceName     string
	ServicePrice    float64
	DurationMinutes int
	Position        int
}

// Booking запись клиента к мастеру
type Booking struct {
	ID               int64
	Code             string
	Client           Client
	Date             time.Time
	StartTime        types.TimeOfDay
	EndTime          types.TimeOfDay
	ProfessionalID   int64
	ProfessionalName string // заполняется при чтении
	Services         []BookingService
	TotalPrice       float64
	DepositRequired  float64
	DepositPaid      float64
	Status           BookingStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Window интервал, занимаемый записью
func (b *Booking) Window() Window {
	return Window{Start: b.StartTime, End: b.EndTime}
}

// DurationMinutes длительность записи
func (b *Booking) DurationMinutes() int {
	return b.EndTime.Minutes() - b.StartTime.Minutes()
}

// IsActive returns true if the booking holds the professional's time
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// PaymentState состояние оплаты записи по внесенной сумме
type PaymentState string

const (
	PaymentStatePending PaymentState = "pending" // предоплата не внесена
	PaymentStatePartial PaymentState = "partial" // внесена предоплата, остаток в салоне
	PaymentStatePaid    PaymentState = "paid"    // оплачено полностью
)

// PaymentState состояние оплаты: ничего, часть или вся стоимость
func (b *Booking) PaymentState() PaymentState {
	switch {
	case b.DepositPaid <= 0:
		return PaymentStatePending
	case b.DepositPaid >= b.TotalPrice:
		return PaymentStatePaid
	default:
		return PaymentStatePartial
	}
}

// BookingStatistics сводка по записям за период.
// Суммы считаются только по неотмененным записям.
type BookingStatistics struct {
	Total     int
	Pending   int
	Confirmed int
	Completed int
	Cancelled int
	Revenue   float64
	Deposits  float64
}

// Outstanding сумма, которую осталось получить в салоне
func (s BookingStatistics) Outstanding() float64 {
	if s.Revenue <= s.Deposits {
		return 0
	}
	return s.Revenue - s.Deposits
}

// BlocksTime returns true unless the booking was cancelled
func (b *Booking) BlocksTime() bool {
	return b.Status != StatusCancelled
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.IsActive()
}

// CanBeRescheduled returns true if the booking can be moved
func (b *Booking) CanBeRescheduled() bool {
	return b.IsActive()
}

// CanBeConfirmed returns true while the deposit is still awaited
func (b *Booking) CanBeConfirmed() bool {
	return b.Status == StatusPending
}

// CanBeCompleted returns true if the visit can be marked as done
func (b *Booking) CanBeCompleted() bool {
	return b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// BookingsFilter фильтр выборки записей
type BookingsFilter struct {
	ProfessionalID  *int64
	Date            *time.Time
	Status          *BookingStatus
	Statuses        []BookingStatus // набор статусов; приоритетнее IncludeInactive
	IncludeInactive bool
	ExcludeCode     *string // исключить запись (при переносе она не конфликтует сама с собой)
}
