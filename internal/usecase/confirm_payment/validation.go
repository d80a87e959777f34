package confirm_payment

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.Code) == "" {
		return fmt.Errorf("%w: code is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.PaymentReference) == "" {
		return fmt.Errorf("%w: paymentReference is required", ErrInvalidInput)
	}
	return nil
}

// checkStatus можно ли подтверждать запись
func checkStatus(booking *domain.Booking) error {
	if booking.Status == domain.StatusConfirmed {
		return ErrAlreadyConfirmed
	}
	if !booking.CanBeConfirmed() {
		return fmt.Errorf("%w: status is %s", ErrCannotConfirm, booking.Status)
	}
	return nil
}

// checkVerification платеж одобрен, относится к записи и покрывает предоплату.
// Пустая внешняя ссылка допускается: провайдер не всегда ее возвращает.
func checkVerification(v *domain.PaymentVerification, booking *domain.Booking) error {
	if !v.Approved {
		return fmt.Errorf("%w: payment status is %s", ErrPaymentRejected, v.Status)
	}
	if v.ExternalReference != "" && v.ExternalReference != booking.Code {
		return fmt.Errorf("%w: payment belongs to %s", ErrPaymentRejected, v.ExternalReference)
	}
	if v.Amount < booking.DepositRequired {
		return fmt.Errorf("%w: amount %.2f is below required deposit %.2f",
			ErrPaymentRejected, v.Amount, booking.DepositRequired)
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
