package generate_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Request модель запроса на генерацию слотов
type Request struct {
	ProfessionalID int64
	StartDate      time.Time       // Первая дата периода (включительно)
	EndDate        time.Time       // Последняя дата периода (включительно)
	DailyStart     types.TimeOfDay // Начало рабочего дня
	DailyEnd       types.TimeOfDay // Конец рабочего дня (последний слот начинается раньше)
	Weekdays       []int           // 0 = понедельник ... 6 = воскресенье
}

// Response результат генерации
type Response struct {
	ProfessionalID int64
	Created        int // вставлено новых слотов
	Skipped        int // слоты, которые уже существовали
	WorkingDays    int // дат периода, попавших в выбранные дни недели
}
