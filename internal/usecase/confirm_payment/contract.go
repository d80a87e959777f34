package confirm_payment

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Booking, error)
	Confirm(ctx context.Context, id int64, depositPaid float64) error
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error)
}

// PaymentVerifier проверка платежа у провайдера.
// Неизвестная провайдеру операция возвращается как неподтвержденная, а не как ошибка;
// ошибка означает, что провайдер недоступен.
type PaymentVerifier interface {
	Provider() string
	Verify(ctx context.Context, operationID string) (*domain.PaymentVerification, error)
}

// Notifier отправка событий о записи
type Notifier interface {
	Notify(ctx context.Context, event domain.BookingEvent) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчики подтверждений
type Metrics interface {
	IncBookingOperation(operation, outcome string)
	IncPaymentVerification(provider, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
