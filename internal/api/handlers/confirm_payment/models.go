package confirm_payment

import (
	bookingModels "github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
	confirmPayment "github.com/m04kA/SMC-SalonBooking/internal/usecase/confirm_payment"
)

// ConfirmPaymentRequest HTTP request model
type ConfirmPaymentRequest struct {
	PaymentReference string `json:"paymentReference"` // ID операции у провайдера
}

// ConfirmPaymentResponse HTTP response model
type ConfirmPaymentResponse struct {
	Booking *bookingModels.BookingResponse `json:"booking"`
	Payment bookingModels.PaymentResponse  `json:"payment"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *confirmPayment.Response) *ConfirmPaymentResponse {
	return &ConfirmPaymentResponse{
		Booking: bookingModels.FromDomainBooking(resp.Booking),
		Payment: bookingModels.FromDomainPayment(resp.Payment),
	}
}
