package confirm_payment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	paymentRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/payment"
)

// UseCase use case подтверждения записи по платежу предоплаты
type UseCase struct {
	bookingRepo BookingRepository
	paymentRepo PaymentRepository
	verifier    PaymentVerifier
	notifier    Notifier
	txManager   TransactionManager
	metrics     Metrics
	logger      Logger
	now         func() time.Time
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	paymentRepo PaymentRepository,
	verifier PaymentVerifier,
	notifier Notifier,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
		verifier:    verifier,
		notifier:    notifier,
		txManager:   txManager,
		metrics:     metrics,
		logger:      logger,
		now:         time.Now,
	}
}

// Execute проверяет платеж у провайдера и подтверждает ожидающую запись.
// Платеж и смена статуса сохраняются в одной транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmPayment: code=%s, reference=%s, provider=%s", req.Code, req.PaymentReference, uc.verifier.Provider())

	resp, err := uc.confirm(ctx, req)
	if err != nil {
		uc.metrics.IncBookingOperation("confirm", outcome(err))
		return nil, err
	}
	uc.metrics.IncBookingOperation("confirm", "success")

	uc.logger.Info("ConfirmPayment: booking code=%s confirmed, deposit=%.2f", resp.Booking.Code, resp.Booking.DepositPaid)

	event := domain.BookingEvent{
		Type:       domain.EventBookingConfirmed,
		Booking:    resp.Booking,
		Payment:    resp.Payment,
		OccurredAt: uc.now(),
	}
	if err := uc.notifier.Notify(ctx, event); err != nil {
		uc.logger.Warn("ConfirmPayment: failed to notify about booking code=%s: %v", resp.Booking.Code, err)
	}

	return resp, nil
}

func (uc *UseCase) confirm(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ConfirmPayment: validation failed: %v", err)
		return nil, err
	}
	code := strings.TrimSpace(req.Code)
	reference := strings.TrimSpace(req.PaymentReference)

	// 2. Получаем запись и проверяем статус до обращения к провайдеру
	booking, err := uc.getBooking(ctx, code)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(booking); err != nil {
		uc.logger.Warn("ConfirmPayment: booking code=%s: %v", code, err)
		return nil, err
	}

	// 3. Проверяем платеж у провайдера
	provider := uc.verifier.Provider()
	verification, err := uc.verifier.Verify(ctx, reference)
	if err != nil {
		uc.metrics.IncPaymentVerification(provider, "unavailable")
		uc.logger.Error("ConfirmPayment: provider %s failed for reference=%s: %v", provider, reference, err)
		return nil, fmt.Errorf("%w: %v", ErrPaymentProviderUnavailable, err)
	}

	if err := checkVerification(verification, booking); err != nil {
		uc.metrics.IncPaymentVerification(provider, "rejected")
		uc.logger.Warn("ConfirmPayment: booking code=%s: %v", code, err)
		uc.recordRejected(ctx, booking, provider, reference, verification)
		return nil, err
	}
	uc.metrics.IncPaymentVerification(provider, "approved")

	response := &Response{}

	// 4. Сохраняем платеж и подтверждаем запись в одной транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Повторно читаем запись с блокировкой
		locked, err := uc.getBooking(txCtx, code)
		if err != nil {
			return err
		}
		if err := checkStatus(locked); err != nil {
			return err
		}

		// 4.2. Сохраняем подтвержденный платеж
		payment, err := uc.paymentRepo.Create(txCtx, newPayment(locked.ID, provider, reference, verification, domain.PaymentVerified))
		if err != nil {
			if errors.Is(err, paymentRepo.ErrAlreadyVerified) {
				uc.logger.Warn("ConfirmPayment: verified payment for booking code=%s or operation %s already exists", code, reference)
				return ErrAlreadyConfirmed
			}
			uc.logger.Error("ConfirmPayment: failed to save payment: %v", err)
			return fmt.Errorf("%w: failed to save payment: %w", ErrInternal, err)
		}

		// 4.3. Подтверждаем запись
		if err := uc.bookingRepo.Confirm(txCtx, locked.ID, verification.Amount); err != nil {
			if errors.Is(err, bookingRepo.ErrStatusConflict) {
				return ErrAlreadyConfirmed
			}
			uc.logger.Error("ConfirmPayment: failed to confirm booking: %v", err)
			return fmt.Errorf("%w: failed to confirm booking: %w", ErrInternal, err)
		}

		locked.Status = domain.StatusConfirmed
		locked.DepositPaid = verification.Amount
		response.Booking = locked
		response.Payment = payment
		return nil
	})

	if err != nil {
		if isKnown(err) {
			return nil, err
		}
		uc.logger.Error("ConfirmPayment: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %w", ErrInternal, err)
	}

	return response, nil
}

func (uc *UseCase) getBooking(ctx context.Context, code string) (*domain.Booking, error) {
	booking, err := uc.bookingRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("ConfirmPayment: booking code=%s not found", code)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("ConfirmPayment: failed to get booking code=%s: %v", code, err)
		return nil, fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
	}
	return booking, nil
}

// recordRejected сохраняет отклоненный платеж для истории; ошибка только логируется
func (uc *UseCase) recordRejected(ctx context.Context, booking *domain.Booking, provider, reference string, v *domain.PaymentVerification) {
	payment := newPayment(booking.ID, provider, reference, v, domain.PaymentRejected)
	if _, err := uc.paymentRepo.Create(ctx, payment); err != nil {
		uc.logger.Warn("ConfirmPayment: failed to record rejected payment %s: %v", reference, err)
	}
}

func newPayment(bookingID int64, provider, reference string, v *domain.PaymentVerification, status domain.PaymentStatus) *domain.Payment {
	return &domain.Payment{
		BookingID:         bookingID,
		Provider:          provider,
		OperationID:       reference,
		Amount:            v.Amount,
		Currency:          v.Currency,
		Method:            optional(v.Method),
		PayerEmail:        optional(v.PayerEmail),
		Status:            status,
		ExternalReference: optional(v.ExternalReference),
		ApprovedAt:        v.ApprovedAt,
	}
}

func isKnown(err error) bool {
	for _, target := range []error{
		ErrBookingNotFound,
		ErrCannotConfirm,
		ErrAlreadyConfirmed,
		ErrPaymentRejected,
		ErrPaymentProviderUnavailable,
		ErrInvalidInput,
		ErrInternal,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func outcome(err error) string {
	switch {
	case errors.Is(err, ErrAlreadyConfirmed):
		return "conflict"
	case errors.Is(err, ErrBookingNotFound):
		return "not_found"
	case errors.Is(err, ErrPaymentProviderUnavailable), errors.Is(err, ErrInternal), !isKnown(err):
		return "error"
	}
	return "rejected"
}
