package generate_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
)

// UseCase use case генерации слотов расписания по шаблону рабочей недели
type UseCase struct {
	catalogRepo CatalogRepository
	slotRepo    SlotRepository
	txManager   TransactionManager
	metrics     Metrics
	logger      Logger
	maxDays     int
}

// NewUseCase создает новый экземпляр use case.
// maxDays ограничивает длину периода; 0 снимает ограничение.
func NewUseCase(
	catalogRepo CatalogRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
	maxDays int,
) *UseCase {
	return &UseCase{
		catalogRepo: catalogRepo,
		slotRepo:    slotRepo,
		txManager:   txManager,
		metrics:     metrics,
		logger:      logger,
		maxDays:     maxDays,
	}
}

// Execute создает по одному слоту на каждый час рабочего окна в выбранные дни недели.
// Уже существующие слоты пропускаются, вся пачка пишется в одной транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GenerateSlots: professional=%d, period=%s..%s, hours=%s-%s, weekdays=%v",
		req.ProfessionalID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat),
		req.DailyStart, req.DailyEnd, req.Weekdays)

	// 1. Валидация входных данных
	weekdays, err := validateRequest(req, uc.maxDays)
	if err != nil {
		uc.logger.Warn("GenerateSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем мастера
	if _, err := uc.catalogRepo.GetProfessionalByID(ctx, req.ProfessionalID); err != nil {
		if errors.Is(err, catalogRepo.ErrProfessionalNotFound) {
			uc.logger.Warn("GenerateSlots: professional id=%d not found", req.ProfessionalID)
			return nil, ErrProfessionalNotFound
		}
		uc.logger.Error("GenerateSlots: failed to get professional id=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: failed to get professional: %v", ErrInternal, err)
	}

	// 3. Разворачиваем шаблон в слоты
	template := &domain.ScheduleTemplate{
		ProfessionalID: req.ProfessionalID,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		DailyStart:     req.DailyStart,
		DailyEnd:       req.DailyEnd,
		Weekdays:       weekdays,
	}
	slots := template.Slots()
	workingDays := len(template.Days())

	response := &Response{
		ProfessionalID: req.ProfessionalID,
		WorkingDays:    workingDays,
	}

	// Пустое рабочее окно не ошибка: период корректен, просто слотов нет
	if len(slots) == 0 {
		uc.logger.Info("GenerateSlots: nothing to generate for professional=%d", req.ProfessionalID)
		return response, nil
	}

	// 4. Пишем пачку в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		created, err := uc.slotRepo.CreateBatch(txCtx, slots)
		if err != nil {
			return err
		}
		response.Created = created
		return nil
	})
	if err != nil {
		uc.logger.Error("GenerateSlots: failed to create slots for professional=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: failed to create slots: %v", ErrInternal, err)
	}

	response.Skipped = len(slots) - response.Created
	uc.metrics.AddSlotsGenerated(response.Created)

	uc.logger.Info("GenerateSlots: professional=%d, created=%d, skipped=%d",
		req.ProfessionalID, response.Created, response.Skipped)

	return response, nil
}
