package resolve_availability

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// UseCase use case поиска окон для записи на набор услуг
type UseCase struct {
	catalogRepo CatalogRepository
	slotRepo    SlotRepository
	bookingRepo BookingRepository
	closingTime types.TimeOfDay
	logger      Logger
}

// NewUseCase создает новый экземпляр use case.
// closingTime время, позже которого запись не может заканчиваться.
func NewUseCase(
	catalogRepo CatalogRepository,
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	closingTime types.TimeOfDay,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalogRepo: catalogRepo,
		slotRepo:    slotRepo,
		bookingRepo: bookingRepo,
		closingTime: closingTime,
		logger:      logger,
	}
}

// Execute возвращает окна, в которые можно записаться на все услуги подряд.
// Отсутствие окон не ошибка: возвращается пустой список.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ResolveAvailability: date=%s, services=%v", req.Date.Format(domain.DateFormat), req.ServiceIDs)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ResolveAvailability: validation failed: %v", err)
		return nil, err
	}

	date := domain.DateOnly(req.Date)

	// 2. Получаем услуги и считаем суммарную длительность
	services, err := uc.catalogRepo.GetServicesByIDs(ctx, req.ServiceIDs)
	if err != nil {
		uc.logger.Error("ResolveAvailability: failed to get services: %v", err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}

	bundle, err := buildBundle(req.ServiceIDs, services)
	if err != nil {
		uc.logger.Warn("ResolveAvailability: %v", err)
		return nil, err
	}

	response := &Response{
		Date:            date,
		ServiceIDs:      req.ServiceIDs,
		DurationMinutes: bundle.TotalDuration(),
		TotalPrice:      bundle.TotalPrice(),
		DepositRequired: bundle.RequiredDeposit(),
		Windows:         []domain.AvailableWindow{},
	}

	// 3. Мастера, которым назначены все услуги
	professionals, err := uc.catalogRepo.ListQualifiedProfessionals(ctx, bundle.DistinctIDs())
	if err != nil {
		uc.logger.Error("ResolveAvailability: failed to get professionals: %v", err)
		return nil, fmt.Errorf("%w: failed to get professionals: %v", ErrInternal, err)
	}

	if len(professionals) == 0 {
		uc.logger.Info("ResolveAvailability: no professional offers services %v", req.ServiceIDs)
		return response, nil
	}

	professionalIDs := make([]int64, len(professionals))
	for i, p := range professionals {
		professionalIDs[i] = p.ID
	}

	// 4. Свободные слоты мастеров на дату
	slots, err := uc.slotRepo.ListAvailable(ctx, professionalIDs, date)
	if err != nil {
		uc.logger.Error("ResolveAvailability: failed to get slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get slots: %v", ErrInternal, err)
	}

	if len(slots) == 0 {
		uc.logger.Info("ResolveAvailability: no free slots on %s", date.Format(domain.DateFormat))
		return response, nil
	}

	// 5. Активные записи на дату для проверки пересечений
	bookings, err := uc.bookingRepo.List(ctx, domain.BookingsFilter{Date: &date})
	if err != nil {
		uc.logger.Error("ResolveAvailability: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 6. Строим окна
	response.Windows = buildWindows(professionals, slots, bookings, response.DurationMinutes, uc.closingTime)

	uc.logger.Info("ResolveAvailability: found %d windows for %d professionals on %s",
		len(response.Windows), len(professionals), date.Format(domain.DateFormat))

	return response, nil
}
