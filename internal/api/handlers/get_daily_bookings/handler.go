package get_daily_bookings

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
)

const (
	msgInvalidDate           = "параметр date обязателен в формате YYYY-MM-DD"
	msgInvalidProfessionalID = "некорректный ID мастера"
	msgInvalidIncludeFlag    = "некорректное значение includeInactive"
	msgInvalidFilter         = "некорректный фильтр записей"
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

// Handle GET /api/v1/admin/bookings?date=2025-01-06&professionalId=10&status=confirmed&includeInactive=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		h.logger.Warn("GET /admin/bookings - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	professionalID, err := handlers.QueryOptionalInt64(r, "professionalId")
	if err != nil {
		h.logger.Warn("GET /admin/bookings - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	includeInactive, err := handlers.QueryBool(r, "includeInactive")
	if err != nil {
		h.logger.Warn("GET /admin/bookings - Invalid includeInactive: %v", err)
		handlers.RespondBadRequest(w, msgInvalidIncludeFlag)
		return
	}

	req := &models.GetDailyBookingsRequest{
		Date:            date,
		ProfessionalID:  professionalID,
		IncludeInactive: includeInactive,
	}
	if status := strings.TrimSpace(r.URL.Query().Get("status")); status != "" {
		req.Status = &status
	}

	result, err := h.service.GetDailyBookings(r.Context(), req)
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidInput) {
			h.logger.Warn("GET /admin/bookings - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		h.logger.Error("GET /admin/bookings - Failed to get bookings: date=%s, error=%v", date.Format(domain.DateFormat), err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/bookings - Bookings retrieved: date=%s, count=%d", date.Format(domain.DateFormat), result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
