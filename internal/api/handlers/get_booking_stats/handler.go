package get_booking_stats

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
)

const (
	msgInvalidProfessionalID = "некорректный ID мастера"
	msgInvalidRange          = "параметры from и to обязательны в формате YYYY-MM-DD"
	msgInvalidInput          = "некорректный период"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/bookings/stats?from=2025-01-01&to=2025-01-31&professionalId=1
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	from, err := handlers.QueryDate(r, "from")
	if err != nil {
		h.logger.Warn("GET /admin/bookings/stats - Invalid from: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}
	to, err := handlers.QueryDate(r, "to")
	if err != nil {
		h.logger.Warn("GET /admin/bookings/stats - Invalid to: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	professionalID, err := handlers.QueryOptionalInt64(r, "professionalId")
	if err != nil {
		h.logger.Warn("GET /admin/bookings/stats - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	stats, err := h.service.GetBookingStatistics(r.Context(), &models.BookingStatisticsRequest{
		From:           from,
		To:             to,
		ProfessionalID: professionalID,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /admin/bookings/stats - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /admin/bookings/stats - Failed to get statistics: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/bookings/stats - Statistics retrieved: from=%s, to=%s, total=%d",
		stats.From, stats.To, stats.TotalBookings)
	handlers.RespondJSON(w, http.StatusOK, stats)
}
