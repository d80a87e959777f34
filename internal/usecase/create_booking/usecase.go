package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	slotRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/slot"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo   BookingRepository
	slotRepo      SlotRepository
	catalogRepo   CatalogRepository
	codeGenerator CodeGenerator
	notifier      Notifier
	txManager     TransactionManager
	metrics       Metrics
	timeProvider  TimeProvider
	closingTime   types.TimeOfDay
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	catalogRepo CatalogRepository,
	codeGenerator CodeGenerator,
	notifier Notifier,
	txManager TransactionManager,
	metrics Metrics,
	closingTime types.TimeOfDay,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		slotRepo:      slotRepo,
		catalogRepo:   catalogRepo,
		codeGenerator: codeGenerator,
		notifier:      notifier,
		txManager:     txManager,
		metrics:       metrics,
		timeProvider:  &RealTimeProvider{},
		closingTime:   closingTime,
		logger:        logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка пересечений, занятие слотов и запись бронирования выполняются
// в одной сериализуемой транзакции: либо применяется все, либо ничего.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: professional=%d, date=%s, time=%s, services=%v",
		req.ProfessionalID, req.Date.Format(domain.DateFormat), req.StartTime, req.ServiceIDs)

	booking, err := uc.create(ctx, req)
	if err != nil {
		uc.metrics.IncBookingOperation("create", outcome(err))
		return nil, err
	}
	uc.metrics.IncBookingOperation("create", "success")

	uc.logger.Info("CreateBooking: successfully created booking code=%s id=%d", booking.Code, booking.ID)

	// Уведомление после коммита: ошибка доставки не отменяет запись
	event := domain.BookingEvent{
		Type:       domain.EventBookingCreated,
		Booking:    booking,
		OccurredAt: uc.timeProvider.Now(),
	}
	if err := uc.notifier.Notify(ctx, event); err != nil {
		uc.logger.Warn("CreateBooking: failed to notify about booking code=%s: %v", booking.Code, err)
	}

	return &Response{Booking: booking}, nil
}

func (uc *UseCase) create(ctx context.Context, req *Request) (*domain.Booking, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	date := domain.DateOnly(req.Date)

	// 2. Получаем мастера
	professional, err := uc.catalogRepo.GetProfessionalByID(ctx, req.ProfessionalID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrProfessionalNotFound) {
			uc.logger.Warn("CreateBooking: professional id=%d not found", req.ProfessionalID)
			return nil, ErrProfessionalNotFound
		}
		uc.logger.Error("CreateBooking: failed to get professional id=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: failed to get professional: %v", ErrInternal, err)
	}
	if !professional.Active {
		uc.logger.Warn("CreateBooking: professional id=%d is inactive", req.ProfessionalID)
		return nil, ErrProfessionalNotFound
	}

	// 3. Получаем услуги
	services, err := uc.catalogRepo.GetServicesByIDs(ctx, req.ServiceIDs)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get services: %v", err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}
	bundle, err := buildBundle(req.ServiceIDs, services)
	if err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	// 4. Проверяем, что мастер оказывает все услуги
	qualified, err := uc.catalogRepo.IsQualified(ctx, req.ProfessionalID, bundle.DistinctIDs())
	if err != nil {
		uc.logger.Error("CreateBooking: failed to check qualification: %v", err)
		return nil, fmt.Errorf("%w: failed to check qualification: %v", ErrInternal, err)
	}
	if !qualified {
		uc.logger.Warn("CreateBooking: professional id=%d does not offer services %v", req.ProfessionalID, req.ServiceIDs)
		return nil, ErrProfessionalNotQualified
	}

	// 5. Время окончания: сумма длительностей, не позже закрытия
	endTime, err := req.StartTime.AddMinutes(bundle.TotalDuration())
	if err != nil || endTime.IsAfter(uc.closingTime) {
		uc.logger.Warn("CreateBooking: booking %s+%dmin ends after closing time %s",
			req.StartTime, bundle.TotalDuration(), uc.closingTime)
		return nil, ErrOutsideWorkingHours
	}
	window := domain.Window{Start: req.StartTime, End: endTime}

	totalPrice := bundle.TotalPrice()
	if req.TotalPrice != nil {
		totalPrice = *req.TotalPrice
	}

	draft := &domain.Booking{
		Client: domain.Client{
			Name:  strings.TrimSpace(req.Client.Name),
			Phone: req.Client.Phone,
			Email: req.Client.Email,
		},
		Date:             date,
		StartTime:        window.Start,
		EndTime:          window.End,
		ProfessionalID:   professional.ID,
		ProfessionalName: professional.Name,
		Services:         bookingLines(bundle),
		TotalPrice:       totalPrice,
		DepositRequired:  bundle.RequiredDeposit(),
		DepositPaid:      req.DepositPaid,
		Status:           domain.StatusPending,
	}

	var result *domain.Booking

	// 6. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Неотмененные записи мастера на дату с блокировкой (FOR UPDATE)
		bookings, err := uc.bookingRepo.List(txCtx, domain.BookingsFilter{
			ProfessionalID: &professional.ID,
			Date:           &date,
			Statuses:       domain.BlockingStatuses,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		// 6.2. Проверяем пересечения
		if conflict := findOverlap(window, bookings); conflict != nil {
			uc.logger.Warn("CreateBooking: window %s-%s overlaps booking code=%s (%s-%s)",
				window.Start, window.End, conflict.Code, conflict.StartTime, conflict.EndTime)
			return ErrSlotNotAvailable
		}

		// 6.3. Занимаем слоты окна
		occupied, err := uc.slotRepo.Occupy(txCtx, professional.ID, date, window)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotAvailable) {
				uc.logger.Warn("CreateBooking: slot %s is not available for professional=%d", window.Start, professional.ID)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to occupy slots: %v", err)
			return fmt.Errorf("%w: failed to occupy slots: %w", ErrInternal, err)
		}
		uc.logger.Info("CreateBooking: occupied %d slots for professional=%d", len(occupied), professional.ID)

		// 6.4. Сохраняем бронирование с уникальным кодом
		created, err := uc.insertWithUniqueCode(txCtx, draft)
		if err != nil {
			return err
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrSlotNotAvailable) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %w", ErrInternal, err)
	}

	result.ProfessionalName = professional.Name
	return result, nil
}

// insertWithUniqueCode сохраняет запись, перегенерируя код при коллизии
func (uc *UseCase) insertWithUniqueCode(ctx context.Context, draft *domain.Booking) (*domain.Booking, error) {
	for attempt := 1; attempt <= domain.MaxBookingCodeAttempts; attempt++ {
		candidate := *draft
		candidate.Code = uc.codeGenerator.Generate()

		created, err := uc.bookingRepo.Create(ctx, &candidate)
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, bookingRepo.ErrDuplicateCode) {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return nil, fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}
		uc.logger.Warn("CreateBooking: booking code %s already taken, attempt %d", candidate.Code, attempt)
	}

	uc.logger.Error("CreateBooking: failed to generate unique booking code after %d attempts", domain.MaxBookingCodeAttempts)
	return nil, fmt.Errorf("%w: could not generate unique booking code", ErrInternal)
}

func outcome(err error) string {
	switch {
	case errors.Is(err, ErrSlotNotAvailable):
		return "conflict"
	case errors.Is(err, ErrInternal):
		return "error"
	}
	return "rejected"
}
