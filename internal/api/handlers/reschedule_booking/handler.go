package reschedule_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	rescheduleBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/reschedule_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат новой даты, ожидается YYYY-MM-DD"
	msgInvalidTime         = "некорректный формат нового времени, ожидается HH:MM"
	msgInvalidInput        = "некорректные данные переноса"
	msgNotFound            = "бронирование не найдено"
	msgCannotReschedule    = "бронирование не может быть перенесено"
	msgOutsideWorkingHours = "запись заканчивается после закрытия салона"
	msgSlotNotAvailable    = "выбранное время уже занято"
)

type Handler struct {
	useCase RescheduleBookingUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{code}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	code := handlers.PathString(r, "code")

	var req RescheduleBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{code}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(code)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{code}/reschedule - Failed to parse request: %v", err)
		if errors.Is(err, errInvalidTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{code}/reschedule - Booking not found: code=%s", code)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleBooking.ErrCannotReschedule):
			h.logger.Warn("PATCH /bookings/{code}/reschedule - Cannot reschedule: code=%s", code)
			handlers.RespondBadRequest(w, msgCannotReschedule)

		case errors.Is(err, rescheduleBooking.ErrOutsideWorkingHours):
			h.logger.Warn("PATCH /bookings/{code}/reschedule - Outside working hours: code=%s, new_time=%s", code, req.NewTime)
			handlers.RespondBadRequest(w, msgOutsideWorkingHours)

		case errors.Is(err, rescheduleBooking.ErrSlotNotAvailable):
			h.logger.Warn("PATCH /bookings/{code}/reschedule - Slot not available: code=%s, new_date=%s, new_time=%s",
				code, req.NewDate, req.NewTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, rescheduleBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{code}/reschedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /bookings/{code}/reschedule - Failed to reschedule booking: code=%s, error=%v", code, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{code}/reschedule - Booking rescheduled successfully: code=%s, new_date=%s, new_time=%s",
		code, req.NewDate, req.NewTime)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
