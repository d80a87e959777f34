package cancel_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
)

// UseCase use case отмены бронирования
type UseCase struct {
	bookingRepo BookingRepository
	slotRepo    SlotRepository
	notifier    Notifier
	txManager   TransactionManager
	metrics     Metrics
	logger      Logger
	now         func() time.Time
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	notifier Notifier,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		slotRepo:    slotRepo,
		notifier:    notifier,
		txManager:   txManager,
		metrics:     metrics,
		logger:      logger,
		now:         time.Now,
	}
}

// Execute отменяет запись: статус, журнал изменений и освобождение слотов
// меняются в одной транзакции. Повторная отмена ничего не меняет.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: code=%s", req.Code)

	code := strings.TrimSpace(req.Code)
	if code == "" {
		return nil, fmt.Errorf("%w: code is required", ErrInvalidInput)
	}
	if req.Reason != nil && len(*req.Reason) > domain.MaxReasonLength {
		return nil, fmt.Errorf("%w: reason is too long", ErrInvalidInput)
	}

	response := &Response{}

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Получаем запись с блокировкой
		booking, err := uc.bookingRepo.GetByCode(txCtx, code)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CancelBooking: booking code=%s not found", code)
				return ErrBookingNotFound
			}
			uc.logger.Error("CancelBooking: failed to get booking code=%s: %v", code, err)
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}

		// 2. Проверяем статус
		if booking.IsCancelled() {
			uc.logger.Info("CancelBooking: booking code=%s is already cancelled", code)
			response.Booking = booking
			response.AlreadyCancelled = true
			return nil
		}
		if !booking.CanBeCancelled() {
			uc.logger.Warn("CancelBooking: booking code=%s has status %s", code, booking.Status)
			return fmt.Errorf("%w: status is %s", ErrCannotCancel, booking.Status)
		}

		// 3. Меняем статус
		if err := uc.bookingRepo.UpdateStatus(txCtx, booking.ID, domain.ActiveStatuses, domain.StatusCancelled); err != nil {
			if errors.Is(err, bookingRepo.ErrStatusConflict) {
				return fmt.Errorf("%w: status changed concurrently", ErrCannotCancel)
			}
			uc.logger.Error("CancelBooking: failed to update status: %v", err)
			return fmt.Errorf("%w: failed to update status: %w", ErrInternal, err)
		}

		// 4. Пишем журнал изменений
		change, err := uc.bookingRepo.AddChange(txCtx, &domain.BookingChange{
			BookingID:    booking.ID,
			Type:         domain.ChangeCancellation,
			OriginalDate: booking.Date,
			OriginalTime: booking.StartTime,
			Reason:       req.Reason,
		})
		if err != nil {
			uc.logger.Error("CancelBooking: failed to add change: %v", err)
			return fmt.Errorf("%w: failed to add change: %w", ErrInternal, err)
		}

		// 5. Освобождаем слоты
		released, err := uc.slotRepo.Release(txCtx, booking.ProfessionalID, booking.Date, booking.Window())
		if err != nil {
			uc.logger.Error("CancelBooking: failed to release slots: %v", err)
			return fmt.Errorf("%w: failed to release slots: %w", ErrInternal, err)
		}
		uc.logger.Info("CancelBooking: released %d slots of booking code=%s", released, code)

		booking.Status = domain.StatusCancelled
		response.Booking = booking
		response.Change = change
		return nil
	})

	if err != nil {
		uc.metrics.IncBookingOperation("cancel", outcome(err))
		if errors.Is(err, ErrBookingNotFound) || errors.Is(err, ErrCannotCancel) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("CancelBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %w", ErrInternal, err)
	}

	if response.AlreadyCancelled {
		uc.metrics.IncBookingOperation("cancel", "noop")
		return response, nil
	}
	uc.metrics.IncBookingOperation("cancel", "success")

	uc.logger.Info("CancelBooking: successfully cancelled booking code=%s", code)

	event := domain.BookingEvent{
		Type:       domain.EventBookingCancelled,
		Booking:    response.Booking,
		Change:     response.Change,
		OccurredAt: uc.now(),
	}
	if err := uc.notifier.Notify(ctx, event); err != nil {
		uc.logger.Warn("CancelBooking: failed to notify about booking code=%s: %v", code, err)
	}

	return response, nil
}

func outcome(err error) string {
	switch {
	case errors.Is(err, ErrBookingNotFound):
		return "not_found"
	case errors.Is(err, ErrCannotCancel):
		return "rejected"
	}
	return "error"
}
