package reschedule_booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	bookingModels "github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
	rescheduleBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/reschedule_booking"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

var (
	errInvalidDate = errors.New("invalid date")
	errInvalidTime = errors.New("invalid time")
)

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	NewDate string  `json:"newDate"` // "2025-01-07"
	NewTime string  `json:"newTime"` // "11:00"
	Reason  *string `json:"reason,omitempty"`
}

// RescheduleBookingResponse HTTP response model
type RescheduleBookingResponse struct {
	Booking *bookingModels.BookingResponse       `json:"booking"`
	Change  bookingModels.BookingChangeResponse `json:"change"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleBookingRequest) ToUseCaseRequest(code string) (*rescheduleBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.NewDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidDate, err)
	}

	start, err := types.ParseTimeOfDay(r.NewTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidTime, err)
	}

	return &rescheduleBooking.Request{
		Code:    code,
		NewDate: date,
		NewTime: start,
		Reason:  r.Reason,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleBooking.Response) *RescheduleBookingResponse {
	return &RescheduleBookingResponse{
		Booking: bookingModels.FromDomainBooking(resp.Booking),
		Change:  bookingModels.FromDomainChange(resp.Change),
	}
}
