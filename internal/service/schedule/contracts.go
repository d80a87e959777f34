package schedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	ListByProfessional(ctx context.Context, professionalID int64, from, to time.Time) ([]*domain.Slot, error)
	Delete(ctx context.Context, id int64) error
	DeleteAvailableInRange(ctx context.Context, professionalID int64, from, to time.Time) (int64, error)
	Statistics(ctx context.Context, professionalID int64, from, to time.Time) (*domain.SlotStatistics, error)
}

// CatalogRepository интерфейс справочника мастеров
type CatalogRepository interface {
	GetProfessionalByID(ctx context.Context, id int64) (*domain.Professional, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
