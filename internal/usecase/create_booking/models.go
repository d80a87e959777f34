package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	Client         domain.Client   // Контакты клиента
	Date           time.Time       // Дата бронирования (без времени)
	StartTime      types.TimeOfDay // Время начала
	ServiceIDs     []int64         // Услуги в порядке выбора клиентом
	ProfessionalID int64           // Мастер
	TotalPrice     *float64        // Итоговая цена, если отличается от суммы услуг
	DepositPaid    float64         // Предоплата, внесенная при записи
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking *domain.Booking
}
