package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// batchSize максимальное число строк в одном INSERT
const batchSize = 500

var slotColumns = []string{
	"id",
	"professional_id",
	"date",
	"start_time",
	"available",
	"created_at",
}

// Repository репозиторий слотов расписания (таблица schedules)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateBatch вставляет слоты пачками. Уже существующие тройки
// (professional_id, date, start_time) пропускаются, возвращается число вставленных строк.
func (r *Repository) CreateBatch(ctx context.Context, slots []*domain.Slot) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	created := 0
	for from := 0; from < len(slots); from += batchSize {
		to := from + batchSize
		if to > len(slots) {
			to = len(slots)
		}

		builder := psqlbuilder.Insert("schedules").
			Columns("professional_id", "date", "start_time", "available")
		for _, s := range slots[from:to] {
			builder = builder.Values(s.ProfessionalID, s.Date, s.StartTime, s.Available)
		}

		query, args, err := builder.
			Suffix("ON CONFLICT (professional_id, date, start_time) DO NOTHING").
			ToSql()
		if err != nil {
			return created, fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
		}

		result, err := executor.ExecContext(ctx, query, args...)
		if err != nil {
			return created, fmt.Errorf("%w: CreateBatch - execute insert: %w", ErrExecQuery, err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return created, fmt.Errorf("%w: CreateBatch - get rows affected: %w", ErrExecQuery, err)
		}
		created += int(affected)
	}

	return created, nil
}

// GetByID получает слот по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("schedules").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %w", ErrScanRow, err)
	}

	return s, nil
}

// ListAvailable свободные слоты мастеров на дату, по возрастанию мастера и времени
func (r *Repository) ListAvailable(ctx context.Context, professionalIDs []int64, date time.Time) ([]*domain.Slot, error) {
	if len(professionalIDs) == 0 {
		return []*domain.Slot{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("schedules").
		Where(squirrel.Eq{
			"professional_id": professionalIDs,
			"date":            date,
			"available":       true,
		}).
		OrderBy("professional_id ASC", "start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailable - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailable - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// ListByProfessional все слоты мастера за период (включительно)
func (r *Repository) ListByProfessional(ctx context.Context, professionalID int64, from, to time.Time) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("schedules").
		Where(squirrel.Eq{"professional_id": professionalID}).
		Where(squirrel.GtOrEq{"date": from}).
		Where(squirrel.LtOrEq{"date": to}).
		OrderBy("date ASC", "start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByProfessional - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByProfessional - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// Occupy помечает занятыми все свободные слоты мастера, начинающиеся внутри окна.
// Обновление условное (available = true), поэтому из двух конкурирующих транзакций
// слот достанется только одной. Если стартовый слот окна не был переключен,
// возвращается ErrSlotNotAvailable; откат частичных изменений делает транзакция вызывающего.
func (r *Repository) Occupy(ctx context.Context, professionalID int64, date time.Time, window domain.Window) ([]types.TimeOfDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("schedules").
		Set("available", false).
		Where(squirrel.Eq{
			"professional_id": professionalID,
			"date":            date,
			"available":       true,
		}).
		Where(squirrel.GtOrEq{"start_time": window.Start}).
		Where(squirrel.Lt{"start_time": window.End}).
		Suffix("RETURNING start_time").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Occupy - build update query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Occupy - execute update: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	occupied := make([]types.TimeOfDay, 0)
	startFlipped := false
	for rows.Next() {
		var start types.TimeOfDay
		if err := rows.Scan(&start); err != nil {
			return nil, fmt.Errorf("%w: Occupy - scan start_time: %w", ErrScanRow, err)
		}
		if start.Equal(window.Start) {
			startFlipped = true
		}
		occupied = append(occupied, start)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: Occupy - rows error: %w", ErrScanRow, err)
	}

	if !startFlipped {
		return nil, fmt.Errorf("%w: professional=%d date=%s start=%s",
			ErrSlotNotAvailable, professionalID, date.Format(domain.DateFormat), window.Start)
	}

	return occupied, nil
}

// Release освобождает слоты мастера, начинающиеся внутри окна
func (r *Repository) Release(ctx context.Context, professionalID int64, date time.Time, window domain.Window) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("schedules").
		Set("available", true).
		Where(squirrel.Eq{
			"professional_id": professionalID,
			"date":            date,
		}).
		Where(squirrel.GtOrEq{"start_time": window.Start}).
		Where(squirrel.Lt{"start_time": window.End}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Release - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: Release - execute update: %w", ErrExecQuery, err)
	}

	released, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: Release - get rows affected: %w", ErrExecQuery, err)
	}

	return released, nil
}

// Delete удаляет свободный слот. Занятый слот удалить нельзя.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("schedules").
		Where(squirrel.Eq{"id": id, "available": true}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		// Различаем "нет такого слота" и "слот занят"
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrSlotOccupied
	}

	return nil
}

// DeleteAvailableInRange удаляет свободные слоты мастера за период, занятые остаются
func (r *Repository) DeleteAvailableInRange(ctx context.Context, professionalID int64, from, to time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("schedules").
		Where(squirrel.Eq{"professional_id": professionalID, "available": true}).
		Where(squirrel.GtOrEq{"date": from}).
		Where(squirrel.LtOrEq{"date": to}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteAvailableInRange - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteAvailableInRange - execute delete: %w", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteAvailableInRange - get rows affected: %w", ErrExecQuery, err)
	}

	return deleted, nil
}

// Statistics загрузка расписания мастера за период
func (r *Repository) Statistics(ctx context.Context, professionalID int64, from, to time.Time) (*domain.SlotStatistics, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"COUNT(*)",
		"COUNT(*) FILTER (WHERE available)",
		"COUNT(*) FILTER (WHERE NOT available)",
	).
		From("schedules").
		Where(squirrel.Eq{"professional_id": professionalID}).
		Where(squirrel.GtOrEq{"date": from}).
		Where(squirrel.LtOrEq{"date": to}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Statistics - build select query: %v", ErrBuildQuery, err)
	}

	var stats domain.SlotStatistics
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&stats.Total, &stats.Available, &stats.Occupied); err != nil {
		return nil, fmt.Errorf("%w: Statistics - scan counts: %w", ErrScanRow, err)
	}

	return &stats, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row rowScanner) (*domain.Slot, error) {
	var s domain.Slot
	var createdAt sql.NullTime

	if err := row.Scan(&s.ID, &s.ProfessionalID, &s.Date, &s.StartTime, &s.Available, &createdAt); err != nil {
		return nil, err
	}

	s.CreatedAt = createdAt.Time
	return &s, nil
}

func scanSlots(rows *sql.Rows) ([]*domain.Slot, error) {
	slots := make([]*domain.Slot, 0)

	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %w", ErrScanRow, err)
		}
		slots = append(slots, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %w", ErrScanRow, err)
	}

	return slots, nil
}
