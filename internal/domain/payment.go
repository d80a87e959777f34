package domain

import "time"

// PaymentStatus статус платежа
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentVerified PaymentStatus = "verified"
	PaymentRejected PaymentStatus = "rejected"
)

// Payment платеж по записи
type Payment struct {
	ID                int64
	BookingID         int64
	Provider          string
	OperationID       string
	Amount            float64
	Currency          string
	Method            *string
	PayerEmail        *string
	Status            PaymentStatus
	ExternalReference *string
	ApprovedAt        *time.Time
	CreatedAt         time.Time
}

// PaymentVerification ответ платежного провайдера
type PaymentVerification struct {
	Provider          string
	OperationID       string
	Approved          bool
	Status            string // статус в терминах провайдера
	Amount            float64
	Currency          string
	ExternalReference string
	Method            string
	PayerEmail        string
	ApprovedAt        *time.Time
}
