package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/slot"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// UseCase use case переноса записи на другое время
type UseCase struct {
	bookingRepo BookingRepository
	slotRepo    SlotRepository
	notifier    Notifier
	txManager   TransactionManager
	metrics     Metrics
	closingTime types.TimeOfDay
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
	closingTime types.TimeOfDay,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		slotRepo:    slotRepo,
		notifier:    notifier,
		txManager:   txManager,
		metrics:     metrics,
		closingTime: closingTime,
		logger:      logger,
		now:         time.Now,
	}
}

// Execute переносит запись. Освобождение старых слотов, занятие новых,
// обновление записи и журнал изменений выполняются в одной транзакции:
// если новое время занято, запись остается на прежнем месте.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: code=%s, newDate=%s, newTime=%s",
		req.Code, req.NewDate.Format(domain.DateFormat), req.NewTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	code := strings.TrimSpace(req.Code)
	newDate := domain.DateOnly(req.NewDate)
	response := &Response{}

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2. Получаем запись с блокировкой
		booking, err := uc.bookingRepo.GetByCode(txCtx, code)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("RescheduleBooking: booking code=%s not found", code)
				return ErrBookingNotFound
			}
			uc.logger.Error("RescheduleBooking: failed to get booking code=%s: %v", code, err)
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}

		if !booking.CanBeRescheduled() {
			uc.logger.Warn("RescheduleBooking: booking code=%s has status %s", code, booking.Status)
			return fmt.Errorf("%w: status is %s", ErrCannotReschedule, booking.Status)
		}

		if booking.Date.Equal(newDate) && booking.StartTime.Equal(req.NewTime) {
			uc.logger.Warn("RescheduleBooking: booking code=%s already starts at %s", code, req.NewTime)
			return fmt.Errorf("%w: new date and time match the current ones", ErrInvalidInput)
		}

		// 3. Новое окно той же длительности
		newEnd, err := req.NewTime.AddMinutes(booking.DurationMinutes())
		if err != nil || newEnd.IsAfter(uc.closingTime) {
			uc.logger.Warn("RescheduleBooking: booking %s+%dmin ends after closing time %s",
				req.NewTime, booking.DurationMinutes(), uc.closingTime)
			return ErrOutsideWorkingHours
		}
		oldDate, oldWindow := booking.Date, booking.Window()
		newWindow := domain.Window{Start: req.NewTime, End: newEnd}

		// 4. Неотмененные записи мастера на новую дату, кроме переносимой
		bookings, err := uc.bookingRepo.List(txCtx, domain.BookingsFilter{
			ProfessionalID: &booking.ProfessionalID,
			Date:           &newDate,
			ExcludeCode:    &booking.Code,
			Statuses:       domain.BlockingStatuses,
		})
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}
		if conflict := findOverlap(newWindow, bookings); conflict != nil {
			uc.logger.Warn("RescheduleBooking: window %s-%s overlaps booking code=%s",
				newWindow.Start, newWindow.End, conflict.Code)
			return ErrSlotNotAvailable
		}

		// 5. Освобождаем старые слоты
		if _, err := uc.slotRepo.Release(txCtx, booking.ProfessionalID, oldDate, oldWindow); err != nil {
			uc.logger.Error("RescheduleBooking: failed to release slots: %v", err)
			return fmt.Errorf("%w: failed to release slots: %w", ErrInternal, err)
		}

		// 6. Занимаем новые слоты
		if _, err := uc.slotRepo.Occupy(txCtx, booking.ProfessionalID, newDate, newWindow); err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotAvailable) {
				uc.logger.Warn("RescheduleBooking: slot %s on %s is not available",
					newWindow.Start, newDate.Format(domain.DateFormat))
				return ErrSlotNotAvailable
			}
			uc.logger.Error("RescheduleBooking: failed to occupy slots: %v", err)
			return fmt.Errorf("%w: failed to occupy slots: %w", ErrInternal, err)
		}

		// 7. Обновляем запись
		booking.Date = newDate
		booking.StartTime = newWindow.Start
		booking.EndTime = newWindow.End
		if err := uc.bookingRepo.UpdateSchedule(txCtx, booking); err != nil {
			if errors.Is(err, bookingRepo.ErrStatusConflict) {
				return fmt.Errorf("%w: status changed concurrently", ErrCannotReschedule)
			}
			uc.logger.Error("RescheduleBooking: failed to update booking: %v", err)
			return fmt.Errorf("%w: failed to update booking: %w", ErrInternal, err)
		}

		// 8. Пишем журнал изменений
		change, err := uc.bookingRepo.AddChange(txCtx, &domain.BookingChange{
			BookingID:    booking.ID,
			Type:         domain.ChangeReschedule,
			OriginalDate: oldDate,
			OriginalTime: oldWindow.Start,
			NewDate:      &newDate,
			NewTime:      &newWindow.Start,
			Reason:       req.Reason,
		})
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to add change: %v", err)
			return fmt.Errorf("%w: failed to add change: %w", ErrInternal, err)
		}

		response.Booking = booking
		response.Change = change
		return nil
	})

	if err != nil {
		uc.metrics.IncBookingOperation("reschedule", outcome(err))
		if isKnown(err) {
			return nil, err
		}
		uc.logger.Error("RescheduleBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %w", ErrInternal, err)
	}
	uc.metrics.IncBookingOperation("reschedule", "success")

	uc.logger.Info("RescheduleBooking: booking code=%s moved to %s %s",
		code, newDate.Format(domain.DateFormat), response.Booking.StartTime)

	event := domain.BookingEvent{
		Type:       domain.EventBookingRescheduled,
		Booking:    response.Booking,
		Change:     response.Change,
		OccurredAt: uc.now(),
	}
	if err := uc.notifier.Notify(ctx, event); err != nil {
		uc.logger.Warn("RescheduleBooking: failed to notify about booking code=%s: %v", code, err)
	}

	return response, nil
}

func isKnown(err error) bool {
	for _, target := range []error{
		ErrBookingNotFound,
		ErrCannotReschedule,
		ErrOutsideWorkingHours,
		ErrSlotNotAvailable,
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
	case errors.Is(err, ErrSlotNotAvailable):
		return "conflict"
	case errors.Is(err, ErrBookingNotFound):
		return "not_found"
	case errors.Is(err, ErrInternal), !isKnown(err):
		return "error"
	}
	return "rejected"
}
