package reschedule_booking

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Request модель запроса на перенос записи
type Request struct {
	Code    string          // Код бронирования
	NewDate time.Time       // Новая дата
	NewTime types.TimeOfDay // Новое время начала
	Reason  *string         // Причина переноса (опционально)
}

// Response результат переноса
type Response struct {
	Booking *domain.Booking
	Change  *domain.BookingChange
}
