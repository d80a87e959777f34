package stripepay

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

const (
	// ProviderName имя провайдера в платежах и метриках
	ProviderName = "stripe"

	// MetadataBookingCode ключ метаданных PaymentIntent с кодом записи
	MetadataBookingCode = "booking_code"

	// StatusNotFound статус операции, неизвестной провайдеру
	StatusNotFound = "not_found"
)

// Client проверка PaymentIntent в Stripe
type Client struct {
	intents *paymentintent.Client
	log     Logger
}

// NewClient создает клиента Stripe. Пустой baseURL означает боевой API.
func NewClient(secretKey, baseURL string, timeout time.Duration, log Logger) *Client {
	cfg := &stripe.BackendConfig{
		HTTPClient:        &http.Client{Timeout: timeout},
		LeveledLogger:     &leveledLogger{log: log},
		MaxNetworkRetries: stripe.Int64(0),
	}
	if baseURL != "" {
		cfg.URL = stripe.String(strings.TrimRight(baseURL, "/"))
	}

	return &Client{
		intents: &paymentintent.Client{
			B:   stripe.GetBackendWithConfig(stripe.APIBackend, cfg),
			Key: secretKey,
		},
		log: log,
	}
}

// Provider имя провайдера
func (c *Client) Provider() string {
	return ProviderName
}

// Verify проверяет PaymentIntent. Неизвестный ID возвращается как неподтвержденный платеж.
func (c *Client) Verify(ctx context.Context, operationID string) (*domain.PaymentVerification, error) {
	c.log.Info("Verifying stripe payment intent=%s", operationID)

	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	intent, err := c.intents.Get(operationID, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			switch {
			case stripeErr.Code == stripe.ErrorCodeResourceMissing || stripeErr.HTTPStatusCode == http.StatusNotFound:
				c.log.Warn("Stripe payment intent=%s not found", operationID)
				return &domain.PaymentVerification{
					Provider:    ProviderName,
					OperationID: operationID,
					Approved:    false,
					Status:      StatusNotFound,
				}, nil
			case stripeErr.HTTPStatusCode == http.StatusUnauthorized:
				c.log.Error("Stripe rejected secret key: %v", err)
				return nil, ErrUnauthorized
			}
		}
		c.log.Error("Stripe unavailable for payment intent=%s: %v", operationID, err)
		return nil, fmt.Errorf("%w: failed to get payment intent: %v", ErrInternal, err)
	}

	c.log.Info("Stripe payment intent=%s status=%s received=%d", operationID, intent.Status, intent.AmountReceived)
	return toVerification(operationID, intent), nil
}

func toVerification(operationID string, pi *stripe.PaymentIntent) *domain.PaymentVerification {
	v := &domain.PaymentVerification{
		Provider:          ProviderName,
		OperationID:       operationID,
		Approved:          pi.Status == stripe.PaymentIntentStatusSucceeded,
		Status:            string(pi.Status),
		Amount:            float64(pi.AmountReceived) / 100,
		Currency:          strings.ToUpper(string(pi.Currency)),
		ExternalReference: pi.Metadata[MetadataBookingCode],
		PayerEmail:        pi.ReceiptEmail,
	}
	if len(pi.PaymentMethodTypes) > 0 {
		v.Method = pi.PaymentMethodTypes[0]
	}
	if v.Approved && pi.Created > 0 {
		t := time.Unix(pi.Created, 0).UTC()
		v.ApprovedAt = &t
	}
	return v
}

// leveledLogger направляет журнал stripe-go в логгер сервиса
type leveledLogger struct {
	log Logger
}

func (l *leveledLogger) Debugf(string, ...interface{}) {}

func (l *leveledLogger) Infof(format string, v ...interface{}) {
	l.log.Info("stripe: "+format, v...)
}

func (l *leveledLogger) Warnf(format string, v ...interface{}) {
	l.log.Warn("stripe: "+format, v...)
}

func (l *leveledLogger) Errorf(format string, v ...interface{}) {
	l.log.Error("stripe: "+format, v...)
}
