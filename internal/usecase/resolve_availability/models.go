package resolve_availability

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Request модель запроса доступных окон
type Request struct {
	Date       time.Time // Дата (без времени)
	ServiceIDs []int64   // Услуги в порядке выбора, повторы допустимы
}

// Response модель ответа со списком окон
type Response struct {
	Date            time.Time
	ServiceIDs      []int64
	DurationMinutes int     // суммарная длительность услуг
	TotalPrice      float64 // суммарная стоимость услуг
	DepositRequired float64 // предоплата за запись
	Windows         []domain.AvailableWindow
}
