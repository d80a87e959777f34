package get_slot_stats

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule"
	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule/models"
)

const (
	msgInvalidProfessionalID = "некорректный ID мастера"
	msgInvalidRange          = "параметры from и to обязательны в формате YYYY-MM-DD"
	msgInvalidInput          = "некорректный период"
	msgProfessionalNotFound  = "мастер не найден"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/professionals/{professionalId}/slots/stats?from=2025-01-06&to=2025-01-12
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	professionalID, err := handlers.PathInt64(r, "professionalId")
	if err != nil {
		h.logger.Warn("GET /admin/professionals/{id}/slots/stats - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	from, err := handlers.QueryDate(r, "from")
	if err != nil {
		h.logger.Warn("GET /admin/professionals/{id}/slots/stats - Invalid from: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}
	to, err := handlers.QueryDate(r, "to")
	if err != nil {
		h.logger.Warn("GET /admin/professionals/{id}/slots/stats - Invalid to: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	stats, err := h.service.GetStatistics(r.Context(), &models.RangeRequest{
		ProfessionalID: professionalID,
		From:           from,
		To:             to,
	})
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("GET /admin/professionals/{id}/slots/stats - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, schedule.ErrProfessionalNotFound):
			h.logger.Warn("GET /admin/professionals/{id}/slots/stats - Professional not found: professional_id=%d", professionalID)
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		default:
			h.logger.Error("GET /admin/professionals/{id}/slots/stats - Failed to get statistics: professional_id=%d, error=%v", professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/professionals/{id}/slots/stats - Statistics retrieved: professional_id=%d, total=%d, occupied=%d",
		professionalID, stats.TotalSlots, stats.OccupiedSlots)
	handlers.RespondJSON(w, http.StatusOK, stats)
}
