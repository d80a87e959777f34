package confirm_payment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	confirmPayment "github.com/m04kA/SMC-SalonBooking/internal/usecase/confirm_payment"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidInput        = "ID платежа обязателен"
	msgNotFound            = "бронирование не найдено"
	msgCannotConfirm       = "бронирование не может быть подтверждено"
	msgAlreadyConfirmed    = "предоплата по бронированию уже подтверждена"
	msgPaymentRejected     = "платеж не подтвержден платежной системой"
	msgProviderUnavailable = "платежная система временно недоступна"
)

type Handler struct {
	useCase ConfirmPaymentUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{code}/payments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	code := handlers.PathString(r, "code")

	var req ConfirmPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{code}/payments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &confirmPayment.Request{
		Code:             code,
		PaymentReference: req.PaymentReference,
	})
	if err != nil {
		switch {
		case errors.Is(err, confirmPayment.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{code}/payments - Booking not found: code=%s", code)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, confirmPayment.ErrAlreadyConfirmed):
			h.logger.Warn("POST /bookings/{code}/payments - Already confirmed: code=%s", code)
			handlers.RespondConflict(w, msgAlreadyConfirmed)

		case errors.Is(err, confirmPayment.ErrCannotConfirm):
			h.logger.Warn("POST /bookings/{code}/payments - Cannot confirm: code=%s", code)
			handlers.RespondBadRequest(w, msgCannotConfirm)

		case errors.Is(err, confirmPayment.ErrPaymentRejected):
			h.logger.Warn("POST /bookings/{code}/payments - Payment rejected: code=%s, reference=%s, reason=%v",
				code, req.PaymentReference, err)
			handlers.RespondPaymentRequired(w, msgPaymentRejected)

		case errors.Is(err, confirmPayment.ErrPaymentProviderUnavailable):
			h.logger.Error("POST /bookings/{code}/payments - Provider unavailable: code=%s, error=%v", code, err)
			handlers.RespondBadGateway(w, msgProviderUnavailable)

		case errors.Is(err, confirmPayment.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{code}/payments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings/{code}/payments - Failed to confirm payment: code=%s, error=%v", code, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{code}/payments - Booking confirmed: code=%s, provider=%s, operation=%s",
		code, result.Payment.Provider, result.Payment.OperationID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
