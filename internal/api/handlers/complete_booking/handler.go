package complete_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings"
)

const (
	msgMissingCode   = "код бронирования обязателен"
	msgNotFound      = "бронирование не найдено"
	msgInvalidStatus = "завершить можно только подтвержденную запись"
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

// Handle PATCH /api/v1/admin/bookings/{code}/complete
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	code := handlers.PathString(r, "code")

	booking, err := h.service.Complete(r.Context(), code)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("PATCH /admin/bookings/{code}/complete - Missing booking code")
			handlers.RespondBadRequest(w, msgMissingCode)

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /admin/bookings/{code}/complete - Booking not found: code=%s", code)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrInvalidStatus):
			h.logger.Warn("PATCH /admin/bookings/{code}/complete - Invalid status: code=%s, error=%v", code, err)
			handlers.RespondConflict(w, msgInvalidStatus)

		default:
			h.logger.Error("PATCH /admin/bookings/{code}/complete - Failed to complete booking: code=%s, error=%v", code, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/bookings/{code}/complete - Booking completed: code=%s", code)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
