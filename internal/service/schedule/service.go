package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	slotRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/slot"
	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule/models"
)

// Service администрирование расписания мастеров
type Service struct {
	slotRepo    SlotRepository
	catalogRepo CatalogRepository
	maxDays     int
	logger      Logger
}

// NewService создает новый экземпляр сервиса расписания.
// maxDays ограничивает длину запрашиваемого периода.
func NewService(
	slotRepo SlotRepository,
	catalogRepo CatalogRepository,
	maxDays int,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:    slotRepo,
		catalogRepo: catalogRepo,
		maxDays:     maxDays,
		logger:      logger,
	}
}

// ListSlots возвращает все слоты мастера за период, свободные и занятые
func (s *Service) ListSlots(ctx context.Context, req *models.RangeRequest) (*models.SlotListResponse, error) {
	s.logger.Info("ListSlots: fetching slots for professional=%d, %s..%s",
		req.ProfessionalID, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))

	if err := s.prepare(ctx, "ListSlots", req); err != nil {
		return nil, err
	}

	slots, err := s.slotRepo.ListByProfessional(ctx, req.ProfessionalID, req.From, req.To)
	if err != nil {
		s.logger.Error("ListSlots: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListSlots - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListSlots: successfully fetched %d slots", len(slots))
	return models.FromDomainSlots(slots), nil
}

// DeleteSlot удаляет свободный слот. Занятый слот удалить нельзя.
func (s *Service) DeleteSlot(ctx context.Context, id int64) error {
	s.logger.Info("DeleteSlot: deleting slot id=%d", id)

	if id <= 0 {
		return fmt.Errorf("%w: slot id must be positive", ErrInvalidInput)
	}

	err := s.slotRepo.Delete(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, slotRepo.ErrSlotNotFound):
			s.logger.Warn("DeleteSlot: slot id=%d not found", id)
			return ErrSlotNotFound
		case errors.Is(err, slotRepo.ErrSlotOccupied):
			s.logger.Warn("DeleteSlot: slot id=%d is occupied", id)
			return ErrSlotOccupied
		}
		s.logger.Error("DeleteSlot: repository error for slot id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteSlot - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteSlot: slot id=%d deleted", id)
	return nil
}

// DeleteSlots удаляет свободные слоты мастера за период. Занятые остаются на месте.
func (s *Service) DeleteSlots(ctx context.Context, req *models.RangeRequest) (*models.DeleteSlotsResponse, error) {
	s.logger.Info("DeleteSlots: deleting available slots for professional=%d, %s..%s",
		req.ProfessionalID, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))

	if err := s.prepare(ctx, "DeleteSlots", req); err != nil {
		return nil, err
	}

	deleted, err := s.slotRepo.DeleteAvailableInRange(ctx, req.ProfessionalID, req.From, req.To)
	if err != nil {
		s.logger.Error("DeleteSlots: repository error: %v", err)
		return nil, fmt.Errorf("%w: DeleteSlots - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteSlots: deleted %d slots", deleted)
	return &models.DeleteSlotsResponse{Deleted: deleted}, nil
}

// GetStatistics считает загрузку расписания мастера за период
func (s *Service) GetStatistics(ctx context.Context, req *models.RangeRequest) (*models.StatisticsResponse, error) {
	s.logger.Info("GetStatistics: professional=%d, %s..%s",
		req.ProfessionalID, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))

	if err := s.prepare(ctx, "GetStatistics", req); err != nil {
		return nil, err
	}

	stats, err := s.slotRepo.Statistics(ctx, req.ProfessionalID, req.From, req.To)
	if err != nil {
		s.logger.Error("GetStatistics: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetStatistics - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainStatistics(req, stats), nil
}

// prepare нормализует период и проверяет, что мастер существует
func (s *Service) prepare(ctx context.Context, op string, req *models.RangeRequest) error {
	if req.ProfessionalID <= 0 {
		return fmt.Errorf("%w: professional id must be positive", ErrInvalidInput)
	}
	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}

	req.From = domain.DateOnly(req.From)
	req.To = domain.DateOnly(req.To)
	if req.To.Before(req.From) {
		return fmt.Errorf("%w: to must not be before from", ErrInvalidInput)
	}
	if s.maxDays > 0 && int(req.To.Sub(req.From).Hours()/24)+1 > s.maxDays {
		return fmt.Errorf("%w: period must not exceed %d days", ErrInvalidInput, s.maxDays)
	}

	if _, err := s.catalogRepo.GetProfessionalByID(ctx, req.ProfessionalID); err != nil {
		if errors.Is(err, catalogRepo.ErrProfessionalNotFound) {
			s.logger.Warn("%s: professional id=%d not found", op, req.ProfessionalID)
			return ErrProfessionalNotFound
		}
		s.logger.Error("%s: failed to get professional id=%d: %v", op, req.ProfessionalID, err)
		return fmt.Errorf("%w: %s - get professional: %v", ErrInternal, op, err)
	}

	return nil
}
