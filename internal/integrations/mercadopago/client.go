package mercadopago

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// ProviderName имя провайдера в платежах и метриках
const ProviderName = "mercadopago"

// Client клиент для проверки платежей Mercado Pago
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
	log         Logger
}

// NewClient создает новый экземпляр клиента Mercado Pago
func NewClient(baseURL, accessToken string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		accessToken: accessToken,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Provider имя провайдера
func (c *Client) Provider() string {
	return ProviderName
}

// GetPayment получает платеж по ID операции. Для неизвестной операции возвращает nil без ошибки.
func (c *Client) GetPayment(ctx context.Context, operationID string) (*Payment, error) {
	u := fmt.Sprintf("%s/v1/payments/%s", c.baseURL, url.PathEscape(operationID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound, http.StatusBadRequest:
		// Mercado Pago отвечает 400 на нечисловой ID
		return nil, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrUnauthorized
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var payment Payment
	if err := json.NewDecoder(resp.Body).Decode(&payment); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	if payment.ID == 0 {
		return nil, nil
	}

	return &payment, nil
}

// Verify проверяет платеж у провайдера
func (c *Client) Verify(ctx context.Context, operationID string) (*domain.PaymentVerification, error) {
	c.log.Info("Verifying mercadopago payment operation=%s", operationID)

	payment, err := c.GetPayment(ctx, operationID)
	if err != nil {
		c.log.Error("Mercado Pago unavailable for operation=%s: %v", operationID, err)
		return nil, err
	}

	if payment == nil {
		c.log.Warn("Mercado Pago payment operation=%s not found", operationID)
		return &domain.PaymentVerification{
			Provider:    ProviderName,
			OperationID: operationID,
			Approved:    false,
			Status:      StatusNotFound,
		}, nil
	}

	c.log.Info("Mercado Pago payment operation=%s status=%s amount=%.2f", operationID, payment.Status, payment.TransactionAmount)
	return toVerification(operationID, payment), nil
}

func toVerification(operationID string, p *Payment) *domain.PaymentVerification {
	return &domain.PaymentVerification{
		Provider:          ProviderName,
		OperationID:       operationID,
		Approved:          p.Status == StatusApproved,
		Status:            p.Status,
		Amount:            p.TransactionAmount,
		Currency:          p.CurrencyID,
		ExternalReference: p.ExternalReference,
		Method:            p.PaymentTypeID,
		PayerEmail:        p.Payer.Email,
		ApprovedAt:        p.DateApproved,
	}
}
