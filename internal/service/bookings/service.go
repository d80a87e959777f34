package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
)

// Service сервис чтения записей и их завершения
type Service struct {
	bookingRepo BookingRepository
	paymentRepo PaymentRepository
	txManager   TransactionManager
	metrics     Metrics
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	paymentRepo PaymentRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
		txManager:   txManager,
		metrics:     metrics,
		logger:      logger,
	}
}

// GetByCode получает запись по коду вместе с историей изменений и платежами.
// Все читается из одного снимка базы.
func (s *Service) GetByCode(ctx context.Context, code string) (*models.BookingDetailsResponse, error) {
	code = strings.TrimSpace(code)
	s.logger.Info("GetByCode: fetching booking code=%s", code)

	if code == "" {
		return nil, fmt.Errorf("%w: code is required", ErrInvalidInput)
	}

	var (
		booking  *domain.Booking
		changes  []*domain.BookingChange
		payments []*domain.Payment
	)

	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		booking, err = s.bookingRepo.GetByCode(txCtx, code)
		if err != nil {
			return err
		}

		changes, err = s.bookingRepo.ListChanges(txCtx, booking.ID)
		if err != nil {
			return err
		}

		payments, err = s.paymentRepo.ListByBooking(txCtx, booking.ID)
		return err
	})
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByCode: booking code=%s not found", code)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByCode: repository error for booking code=%s: %v", code, err)
		return nil, fmt.Errorf("%w: GetByCode - repository error: %v", ErrInternal, err)
	}

	resp := &models.BookingDetailsResponse{
		BookingResponse: *models.FromDomainBooking(booking),
		Changes:         make([]models.BookingChangeResponse, len(changes)),
		Payments:        make([]models.PaymentResponse, len(payments)),
	}
	for i, c := range changes {
		resp.Changes[i] = models.FromDomainChange(c)
	}
	for i, p := range payments {
		resp.Payments[i] = models.FromDomainPayment(p)
	}

	s.logger.Info("GetByCode: successfully fetched booking code=%s", code)
	return resp, nil
}

// GetDailyBookings получает записи за день, по возрастанию времени.
// По умолчанию только активные; фильтры по мастеру и статусу опциональны.
func (s *Service) GetDailyBookings(ctx context.Context, req *models.GetDailyBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetDailyBookings: fetching bookings for date=%s", req.Date.Format(domain.DateFormat))
	if req.ProfessionalID != nil {
		logMsg += fmt.Sprintf(", professional=%d", *req.ProfessionalID)
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetDailyBookings: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("GetDailyBookings: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetDailyBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetDailyBookings: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// GetBookingStatistics сводка по записям за период: количество по статусам и суммы оплат
func (s *Service) GetBookingStatistics(ctx context.Context, req *models.BookingStatisticsRequest) (*models.BookingStatisticsResponse, error) {
	s.logger.Info("GetBookingStatistics: period %s..%s",
		req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))

	if req.From.IsZero() || req.To.IsZero() {
		return nil, fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}
	req.From, req.To = domain.DateOnly(req.From), domain.DateOnly(req.To)
	if req.To.Before(req.From) {
		return nil, fmt.Errorf("%w: to is before from", ErrInvalidInput)
	}

	stats, err := s.bookingRepo.Statistics(ctx, req.From, req.To, req.ProfessionalID)
	if err != nil {
		s.logger.Error("GetBookingStatistics: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetBookingStatistics - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainStatistics(req, stats), nil
}

// Complete отмечает подтвержденную запись как состоявшуюся
func (s *Service) Complete(ctx context.Context, code string) (*models.BookingResponse, error) {
	code = strings.TrimSpace(code)
	s.logger.Info("Complete: completing booking code=%s", code)

	var booking *domain.Booking

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		booking, err = s.bookingRepo.GetByCode(txCtx, code)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Complete - get booking: %v", ErrInternal, err)
		}

		if !booking.CanBeCompleted() {
			return fmt.Errorf("%w: cannot complete booking with status %s", ErrInvalidStatus, booking.Status)
		}

		err = s.bookingRepo.UpdateStatus(txCtx, booking.ID, []domain.BookingStatus{domain.StatusConfirmed}, domain.StatusCompleted)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrStatusConflict) {
				return fmt.Errorf("%w: status changed concurrently", ErrInvalidStatus)
			}
			return fmt.Errorf("%w: Complete - update status: %v", ErrInternal, err)
		}

		booking.Status = domain.StatusCompleted
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			s.logger.Warn("Complete: booking code=%s not found", code)
			s.metrics.IncBookingOperation("complete", "not_found")
		case errors.Is(err, ErrInvalidStatus):
			s.logger.Warn("Complete: %v", err)
			s.metrics.IncBookingOperation("complete", "rejected")
		default:
			s.logger.Error("Complete: failed for booking code=%s: %v", code, err)
			s.metrics.IncBookingOperation("complete", "error")
		}
		return nil, err
	}

	s.metrics.IncBookingOperation("complete", "success")
	s.logger.Info("Complete: booking code=%s completed", code)
	return models.FromDomainBooking(booking), nil
}
