package notifier

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Payload тело события для внешних получателей
type Payload struct {
	Event      string          `json:"event"`
	OccurredAt time.Time       `json:"occurredAt"`
	Booking    BookingPayload  `json:"booking"`
	Change     *ChangePayload  `json:"change,omitempty"`
	Payment    *PaymentPayload `json:"payment,omitempty"`
}

type BookingPayload struct {
	Code             string   `json:"code"`
	Status           string   `json:"status"`
	ClientName       string   `json:"clientName"`
	ClientPhone      *string  `json:"clientPhone,omitempty"`
	ClientEmail      *string  `json:"clientEmail,omitempty"`
	Date             string   `json:"date"`
	StartTime        string   `json:"startTime"`
	EndTime          string   `json:"endTime"`
	ProfessionalID   int64    `json:"professionalId"`
	ProfessionalName string   `json:"professionalName,omitempty"`
	Services         []string `json:"services"`
	TotalPrice       float64  `json:"totalPrice"`
	DepositRequired  float64  `json:"depositRequired"`
	DepositPaid      float64  `json:"depositPaid"`
}

type ChangePayload struct {
	Type         string  `json:"type"`
	OriginalDate string  `json:"originalDate"`
	OriginalTime string  `json:"originalTime"`
	NewDate      *string `json:"newDate,omitempty"`
	NewTime      *string `json:"newTime,omitempty"`
	Reason       *string `json:"reason,omitempty"`
}

type PaymentPayload struct {
	Provider    string  `json:"provider"`
	OperationID string  `json:"operationId"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
}

// NewPayload собирает тело события
func NewPayload(event domain.BookingEvent) Payload {
	b := event.Booking
	services := make([]string, len(b.Services))
	for i, s := range b.Services {
		services[i] = s.ServiceName
	}

	p := Payload{
		Event:      string(event.Type),
		OccurredAt: event.OccurredAt,
		Booking: BookingPayload{
			Code:             b.Code,
			Status:           string(b.Status),
			ClientName:       b.Client.Name,
			ClientPhone:      b.Client.Phone,
			ClientEmail:      b.Client.Email,
			Date:             b.Date.Format(domain.DateFormat),
			StartTime:        b.StartTime.String(),
			EndTime:          b.EndTime.String(),
			ProfessionalID:   b.ProfessionalID,
			ProfessionalName: b.ProfessionalName,
			Services:         services,
			TotalPrice:       b.TotalPrice,
			DepositRequired:  b.DepositRequired,
			DepositPaid:      b.DepositPaid,
		},
	}

	if c := event.Change; c != nil {
		p.Change = &ChangePayload{
			Type:         string(c.Type),
			OriginalDate: c.OriginalDate.Format(domain.DateFormat),
			OriginalTime: c.OriginalTime.String(),
			Reason:       c.Reason,
		}
		if c.NewDate != nil {
			d := c.NewDate.Format(domain.DateFormat)
			p.Change.NewDate = &d
		}
		if c.NewTime != nil {
			t := c.NewTime.String()
			p.Change.NewTime = &t
		}
	}

	if pay := event.Payment; pay != nil {
		p.Payment = &PaymentPayload{
			Provider:    pay.Provider,
			OperationID: pay.OperationID,
			Amount:      pay.Amount,
			Currency:    pay.Currency,
		}
	}

	return p
}

func encode(event domain.BookingEvent) ([]byte, error) {
	if event.Booking == nil {
		return nil, fmt.Errorf("%w: event %s without booking", ErrEncode, event.Type)
	}
	body, err := json.Marshal(NewPayload(event))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return body, nil
}
