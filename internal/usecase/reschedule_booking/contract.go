package reschedule_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	UpdateSchedule(ctx context.Context, booking *domain.Booking) error
	AddChange(ctx context.Context, change *domain.BookingChange) (*domain.BookingChange, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	Occupy(ctx context.Context, professionalID int64, date time.Time, window domain.Window) ([]types.TimeOfDay, error)
	Release(ctx context.Context, professionalID int64, date time.Time, window domain.Window) (int64, error)
}

// Notifier отправка событий о записи
type Notifier interface {
	Notify(ctx context.Context, event domain.BookingEvent) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчик операций с записями
type Metrics interface {
	IncBookingOperation(operation, outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
