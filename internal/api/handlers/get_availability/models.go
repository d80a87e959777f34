package get_availability

import (
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	resolveAvailability "github.com/m04kA/SMC-SalonBooking/internal/usecase/resolve_availability"
)

// WindowResponse окно для записи
type WindowResponse struct {
	StartTime        string `json:"startTime"` // "10:00"
	EndTime          string `json:"endTime"`   // "11:30"
	ProfessionalID   int64  `json:"professionalId"`
	ProfessionalName string `json:"professionalName"`
	DurationMinutes  int    `json:"durationMinutes"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date            string           `json:"date"`
	ServiceIDs      []int64          `json:"serviceIds"`
	DurationMinutes int              `json:"durationMinutes"`
	TotalPrice      float64          `json:"totalPrice"`
	DepositRequired float64          `json:"depositRequired"`
	Windows         []WindowResponse `json:"windows"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *resolveAvailability.Response) *AvailabilityResponse {
	windows := make([]WindowResponse, len(resp.Windows))
	for i, w := range resp.Windows {
		windows[i] = WindowResponse{
			StartTime:        w.StartTime.String(),
			EndTime:          w.EndTime.String(),
			ProfessionalID:   w.ProfessionalID,
			ProfessionalName: w.ProfessionalName,
			DurationMinutes:  w.DurationMinutes,
		}
	}

	return &AvailabilityResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		ServiceIDs:      resp.ServiceIDs,
		DurationMinutes: resp.DurationMinutes,
		TotalPrice:      resp.TotalPrice,
		DepositRequired: resp.DepositRequired,
		Windows:         windows,
	}
}
