package cancel_booking

import "github.com/m04kA/SMC-SalonBooking/internal/domain"

// Request модель запроса на отмену
type Request struct {
	Code   string  // Код бронирования
	Reason *string // Причина отмены (опционально)
}

// Response результат отмены
type Response struct {
	Booking          *domain.Booking
	Change           *domain.BookingChange // nil, если запись уже была отменена
	AlreadyCancelled bool
}
