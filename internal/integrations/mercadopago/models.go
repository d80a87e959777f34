package mercadopago

import "time"

// StatusApproved статус одобренного платежа
const StatusApproved = "approved"

// StatusNotFound статус операции, неизвестной провайдеру
const StatusNotFound = "not_found"

// Payment ответ GET /v1/payments/{id}
type Payment struct {
	ID                int64      `json:"id"`
	Status            string     `json:"status"`
	StatusDetail      string     `json:"status_detail"`
	TransactionAmount float64    `json:"transaction_amount"`
	CurrencyID        string     `json:"currency_id"`
	ExternalReference string     `json:"external_reference"`
	PaymentTypeID     string     `json:"payment_type_id"`
	DateApproved      *time.Time `json:"date_approved"`
	Payer             struct {
		Email string `json:"email"`
	} `json:"payer"`
}
