package create_booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ClientName     string   `json:"clientName"`
	ClientPhone    *string  `json:"clientPhone,omitempty"`
	ClientEmail    *string  `json:"clientEmail,omitempty"`
	Date           string   `json:"date"`      // "2025-01-06"
	StartTime      string   `json:"startTime"` // "10:00"
	ServiceIDs     []int64  `json:"serviceIds"`
	ProfessionalID int64    `json:"professionalId"`
	TotalPrice     *float64 `json:"totalPrice,omitempty"`
	DepositPaid    float64  `json:"depositPaid,omitempty"`
}

var (
	errInvalidDate = errors.New("invalid date")
	errInvalidTime = errors.New("invalid start time")
)

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidDate, err)
	}

	// Парсим время
	startTime, err := types.ParseTimeOfDay(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidTime, err)
	}

	return &createBooking.Request{
		Client: domain.Client{
			Name:  r.ClientName,
			Phone: r.ClientPhone,
			Email: r.ClientEmail,
		},
		Date:           date,
		StartTime:      startTime,
		ServiceIDs:     r.ServiceIDs,
		ProfessionalID: r.ProfessionalID,
		TotalPrice:     r.TotalPrice,
		DepositPaid:    r.DepositPaid,
	}, nil
}
