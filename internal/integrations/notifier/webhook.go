package notifier

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Webhook отправляет события POST-запросом с JSON (n8n и подобные)
type Webhook struct {
	url        string
	httpClient *http.Client
}

// NewWebhook создает webhook-отправитель
func NewWebhook(url string, timeout time.Duration) *Webhook {
	return &Webhook{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (w *Webhook) Driver() string { return "webhook" }

func (w *Webhook) Send(ctx context.Context, event domain.BookingEvent) error {
	body, err := encode(event)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrDelivery, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Event-Type", string(event.Type))

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrDelivery, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrDelivery, resp.StatusCode, string(msg))
	}

	return nil
}
