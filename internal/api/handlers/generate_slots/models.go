package generate_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	generateSlots "github.com/m04kA/SMC-SalonBooking/internal/usecase/generate_slots"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// GenerateSlotsRequest HTTP request model
type GenerateSlotsRequest struct {
	StartDate  string    `json:"startDate"`  // "2025-01-06"
	EndDate    string    `json:"endDate"`    // "2025-01-31"
	DailyStart string    `json:"dailyStart"` // "09:00"
	DailyEnd   string    `json:"dailyEnd"`   // "18:00"
	Weekdays   []Weekday `json:"weekdays"`   // [0, 1, "Wednesday", "Jueves"]
}

// GenerateSlotsResponse HTTP response model
type GenerateSlotsResponse struct {
	ProfessionalID int64 `json:"professionalId"`
	Created        int   `json:"created"`
	Skipped        int   `json:"skipped"`
	WorkingDays    int   `json:"workingDays"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *GenerateSlotsRequest) ToUseCaseRequest(professionalID int64) (*generateSlots.Request, error) {
	start, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, fmt.Errorf("startDate: %w", err)
	}
	end, err := time.Parse(domain.DateFormat, r.EndDate)
	if err != nil {
		return nil, fmt.Errorf("endDate: %w", err)
	}
	dailyStart, err := types.ParseTimeOfDay(r.DailyStart)
	if err != nil {
		return nil, fmt.Errorf("dailyStart: %w", err)
	}
	dailyEnd, err := types.ParseTimeOfDay(r.DailyEnd)
	if err != nil {
		return nil, fmt.Errorf("dailyEnd: %w", err)
	}

	weekdays := make([]int, len(r.Weekdays))
	for i, wd := range r.Weekdays {
		weekdays[i] = int(wd)
	}

	return &generateSlots.Request{
		ProfessionalID: professionalID,
		StartDate:      start,
		EndDate:        end,
		DailyStart:     dailyStart,
		DailyEnd:       dailyEnd,
		Weekdays:       weekdays,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *generateSlots.Response) *GenerateSlotsResponse {
	return &GenerateSlotsResponse{
		ProfessionalID: resp.ProfessionalID,
		Created:        resp.Created,
		Skipped:        resp.Skipped,
		WorkingDays:    resp.WorkingDays,
	}
}
