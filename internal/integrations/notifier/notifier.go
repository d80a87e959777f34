package notifier

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Sender доставка события одним способом
type Sender interface {
	Driver() string
	Send(ctx context.Context, event domain.BookingEvent) error
}

// Notifier доставляет события и учитывает результат в метриках.
// Без отправителя события только пишутся в журнал.
type Notifier struct {
	sender  Sender
	metrics Metrics
	log     Logger
}

// New создает Notifier. sender может быть nil.
func New(sender Sender, metrics Metrics, log Logger) *Notifier {
	return &Notifier{
		sender:  sender,
		metrics: metrics,
		log:     log,
	}
}

// Notify отправляет событие. Ошибка доставки возвращается вызывающему, который только логирует ее.
func (n *Notifier) Notify(ctx context.Context, event domain.BookingEvent) error {
	code := ""
	if event.Booking != nil {
		code = event.Booking.Code
	}

	if n.sender == nil {
		n.log.Info("Notify: event=%s booking=%s (no delivery configured)", event.Type, code)
		n.metrics.IncNotification("log", string(event.Type), "ok")
		return nil
	}

	driver := n.sender.Driver()
	if err := n.sender.Send(ctx, event); err != nil {
		n.log.Warn("Notify: %s delivery of event=%s booking=%s failed: %v", driver, event.Type, code, err)
		n.metrics.IncNotification(driver, string(event.Type), "error")
		return err
	}

	n.log.Info("Notify: event=%s booking=%s delivered via %s", event.Type, code, driver)
	n.metrics.IncNotification(driver, string(event.Type), "ok")
	return nil
}
