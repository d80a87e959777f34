package models

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Request модели

// RangeRequest период расписания мастера, обе даты включительно
type RangeRequest struct {
	ProfessionalID int64     `json:"professionalId"`
	From           time.Time `json:"from"`
	To             time.Time `json:"to"`
}

// Response модели

// SlotResponse слот расписания
type SlotResponse struct {
	ID             int64  `json:"id"`
	ProfessionalID int64  `json:"professionalId"`
	Date           string `json:"date"`      // "2025-01-06"
	StartTime      string `json:"startTime"` // "09:00"
	Available      bool   `json:"available"`
}

// SlotListResponse список слотов за период
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
	Total int            `json:"total"`
}

// DeleteSlotsResponse результат массового удаления
type DeleteSlotsResponse struct {
	Deleted int64 `json:"deleted"`
}

// StatisticsResponse загрузка расписания за период
type StatisticsResponse struct {
	ProfessionalID  int64   `json:"professionalId"`
	From            string  `json:"from"`
	To              string  `json:"to"`
	TotalSlots      int     `json:"totalSlots"`
	AvailableSlots  int     `json:"availableSlots"`
	OccupiedSlots   int     `json:"occupiedSlots"`
	UtilizationRate float64 `json:"utilizationRate"` // проценты, 0-100
}

// Конвертеры

// FromDomainSlots конвертирует список domain.Slot в SlotListResponse
func FromDomainSlots(slots []*domain.Slot) *SlotListResponse {
	result := make([]SlotResponse, len(slots))
	for i, s := range slots {
		result[i] = SlotResponse{
			ID:             s.ID,
			ProfessionalID: s.ProfessionalID,
			Date:           s.Date.Format(domain.DateFormat),
			StartTime:      s.StartTime.String(),
			Available:      s.Available,
		}
	}
	return &SlotListResponse{Slots: result, Total: len(result)}
}

// FromDomainStatistics конвертирует domain.SlotStatistics в StatisticsResponse
func FromDomainStatistics(req *RangeRequest, stats *domain.SlotStatistics) *StatisticsResponse {
	return &StatisticsResponse{
		ProfessionalID:  req.ProfessionalID,
		From:            req.From.Format(domain.DateFormat),
		To:              req.To.Format(domain.DateFormat),
		TotalSlots:      stats.Total,
		AvailableSlots:  stats.Available,
		OccupiedSlots:   stats.Occupied,
		UtilizationRate: stats.UtilizationRate(),
	}
}
