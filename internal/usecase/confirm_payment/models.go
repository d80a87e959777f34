package confirm_payment

import "github.com/m04kA/SMC-SalonBooking/internal/domain"

// Request модель запроса на подтверждение предоплаты
type Request struct {
	Code             string // Код бронирования
	PaymentReference string // ID операции у платежного провайдера
}

// Response результат подтверждения
type Response struct {
	Booking *domain.Booking
	Payment *domain.Payment
}
