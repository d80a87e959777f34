package domain

import "time"

// EventType тип события жизненного цикла записи
type EventType string

const (
	EventBookingCreated     EventType = "booking.created"
	EventBookingCancelled   EventType = "booking.cancelled"
	EventBookingRescheduled EventType = "booking.rescheduled"
	EventBookingConfirmed   EventType = "booking.confirmed"
)

// BookingEvent событие для внешних получателей (n8n, kafka)
type BookingEvent struct {
	Type       EventType
	Booking    *Booking
	Change     *BookingChange
	Payment    *Payment
	OccurredAt time.Time
}
