package resolve_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// CatalogRepository интерфейс чтения услуг и мастеров
type CatalogRepository interface {
	GetServicesByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Service, error)
	ListQualifiedProfessionals(ctx context.Context, serviceIDs []int64) ([]*domain.Professional, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	ListAvailable(ctx context.Context, professionalIDs []int64, date time.Time) ([]*domain.Slot, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
