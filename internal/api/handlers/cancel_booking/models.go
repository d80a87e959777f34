package cancel_booking

import (
	bookingModels "github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
	cancelBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/cancel_booking"
)

// CancelBookingRequest HTTP request model, тело необязательно
type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	Booking          *bookingModels.BookingResponse       `json:"booking"`
	Change           *bookingModels.BookingChangeResponse `json:"change,omitempty"`
	AlreadyCancelled bool                                 `json:"alreadyCancelled"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CancelBookingRequest) ToUseCaseRequest(code string) *cancelBooking.Request {
	return &cancelBooking.Request{
		Code:   code,
		Reason: r.Reason,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	result := &CancelBookingResponse{
		Booking:          bookingModels.FromDomainBooking(resp.Booking),
		AlreadyCancelled: resp.AlreadyCancelled,
	}
	if resp.Change != nil {
		change := bookingModels.FromDomainChange(resp.Change)
		result.Change = &change
	}
	return result
}
