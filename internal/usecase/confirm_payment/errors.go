package confirm_payment

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("confirm_payment: booking not found")

	// ErrCannotConfirm возвращается для отмененной или завершенной записи
	ErrCannotConfirm = errors.New("confirm_payment: booking cannot be confirmed")

	// ErrAlreadyConfirmed возвращается, когда предоплата уже подтверждена
	ErrAlreadyConfirmed = errors.New("confirm_payment: booking is already confirmed")

	// ErrPaymentRejected возвращается, когда платеж не одобрен или не относится к записи
	ErrPaymentRejected = errors.New("confirm_payment: payment rejected")

	// ErrPaymentProviderUnavailable возвращается, когда провайдер не ответил
	ErrPaymentProviderUnavailable = errors.New("confirm_payment: payment provider unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("confirm_payment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_payment: internal error")
)
