package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/pgerrors"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"b.id",
	"b.booking_code",
	"b.client_name",
	"b.client_phone",
	"b.client_email",
	"b.date",
	"b.start_time",
	"b.end_time",
	"b.professional_id",
	"p.name",
	"b.total_price",
	"b.deposit_required",
	"b.deposit_paid",
	"b.status",
	"b.created_at",
	"b.updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет бронирование вместе со строками услуг.
// Вызывается внутри транзакции создания записи: при конфликте кода
// возвращается ErrDuplicateCode, и вызывающий генерирует новый код.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"booking_code",
			"client_name",
			"client_phone",
			"client_email",
			"date",
			"start_time",
			"end_time",
			"professional_id",
			"total_price",
			"deposit_required",
			"deposit_paid",
			"status",
		).
		Values(
			booking.Code,
			booking.Client.Name,
			booking.Client.Phone,
			booking.Client.Email,
			booking.Date,
			booking.StartTime,
			booking.EndTime,
			booking.ProfessionalID,
			booking.TotalPrice,
			booking.DepositRequired,
			booking.DepositPaid,
			booking.Status,
		).
		Suffix("ON CONFLICT (booking_code) DO NOTHING RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.ID, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDuplicateCode
	}
	if err != nil {
		if pgerrors.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: Create - %v", ErrInvalidReference, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	if err := r.insertServices(ctx, booking.ID, booking.Services); err != nil {
		return nil, err
	}

	return booking, nil
}

func (r *Repository) insertServices(ctx context.Context, bookingID int64, lines []domain.BookingService) error {
	if len(lines) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Insert("booking_services").
		Columns("booking_id", "service_id", "service_name", "service_price", "duration_minutes", "position")
	for _, line := range lines {
		builder = builder.Values(bookingID, line.ServiceID, line.ServiceName, line.ServicePrice, line.DurationMinutes, line.Position)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertServices - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if pgerrors.IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: insertServices - %v", ErrInvalidReference, err)
		}
		return fmt.Errorf("%w: insertServices - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// GetByCode получает бронирование по коду вместе с услугами.
// Внутри транзакции строка блокируется (FOR UPDATE).
func (r *Repository) GetByCode(ctx context.Context, code string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		Join("professionals p ON p.id = b.professional_id").
		Where(squirrel.Eq{"b.booking_code": code})

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE OF b")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - scan booking: %w", ErrScanRow, err)
	}

	if err := r.attachServices(ctx, []*domain.Booking{booking}); err != nil {
		return nil, err
	}

	return booking, nil
}

// List получает бронирования по фильтру, отсортированные по дате и времени.
// Для выборки по мастеру и дате внутри транзакции строки блокируются (FOR UPDATE),
// что сериализует конкурирующие записи к одному мастеру.
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		Join("professionals p ON p.id = b.professional_id")

	if filter.ProfessionalID != nil {
		builder = builder.Where(squirrel.Eq{"b.professional_id": *filter.ProfessionalID})
	}
	if filter.Date != nil {
		builder = builder.Where(squirrel.Eq{"b.date": *filter.Date})
	}
	if filter.ExcludeCode != nil {
		builder = builder.Where(squirrel.NotEq{"b.booking_code": *filter.ExcludeCode})
	}

	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"b.status": *filter.Status})
	} else if len(filter.Statuses) > 0 {
		builder = builder.Where(squirrel.Eq{"b.status": statusStrings(filter.Statuses)})
	} else if !filter.IncludeInactive {
		builder = builder.Where(squirrel.Eq{"b.status": statusStrings(domain.ActiveStatuses)})
	}

	builder = builder.OrderBy("b.date ASC", "b.start_time ASC", "b.professional_id ASC")

	if dbmetrics.IsInTransaction(ctx) && filter.ProfessionalID != nil && filter.Date != nil {
		builder = builder.Suffix("FOR UPDATE OF b")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	if err := r.attachServices(ctx, bookings); err != nil {
		return nil, err
	}

	return bookings, nil
}

// UpdateStatus переводит бронирование в статус to, только если текущий статус входит в from
func (r *Repository) UpdateStatus(ctx context.Context, id int64, from []domain.BookingStatus, to domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": statusStrings(from)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "UpdateStatus", query, args)
}

// Confirm фиксирует внесенную предоплату и подтверждает ожидающее бронирование
func (r *Repository) Confirm(ctx context.Context, id int64, depositPaid float64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusConfirmed).
		Set("deposit_paid", depositPaid).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.StatusPending}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Confirm - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "Confirm", query, args)
}

// UpdateSchedule переносит активное бронирование на новые дату и время
func (r *Repository) UpdateSchedule(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("date", booking.Date).
		Set("start_time", booking.StartTime).
		Set("end_time", booking.EndTime).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": booking.ID, "status": statusStrings(domain.ActiveStatuses)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "UpdateSchedule", query, args)
}

// Statistics сводка по записям за период, опционально по одному мастеру
func (r *Repository) Statistics(ctx context.Context, from, to time.Time, professionalID *int64) (*domain.BookingStatistics, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(
		"COUNT(*)",
		"COUNT(*) FILTER (WHERE status = 'pending')",
		"COUNT(*) FILTER (WHERE status = 'confirmed')",
		"COUNT(*) FILTER (WHERE status = 'completed')",
		"COUNT(*) FILTER (WHERE status = 'cancelled')",
		"COALESCE(SUM(total_price) FILTER (WHERE status <> 'cancelled'), 0)",
		"COALESCE(SUM(deposit_paid) FILTER (WHERE status <> 'cancelled'), 0)",
	).
		From("bookings").
		Where(squirrel.GtOrEq{"date": from}).
		Where(squirrel.LtOrEq{"date": to})

	if professionalID != nil {
		builder = builder.Where(squirrel.Eq{"professional_id": *professionalID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Statistics - build select query: %v", ErrBuildQuery, err)
	}

	var stats domain.BookingStatistics
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&stats.Total, &stats.Pending, &stats.Confirmed, &stats.Completed, &stats.Cancelled,
		&stats.Revenue, &stats.Deposits,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Statistics - scan counts: %w", ErrScanRow, err)
	}

	return &stats, nil
}

func (r *Repository) execAffectingOne(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrStatusConflict
	}

	return nil
}

// AddChange добавляет запись в журнал изменений бронирования
func (r *Repository) AddChange(ctx context.Context, change *domain.BookingChange) (*domain.BookingChange, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_changes").
		Columns("booking_id", "change_type", "original_date", "original_time", "new_date", "new_time", "reason").
		Values(change.BookingID, change.Type, change.OriginalDate, change.OriginalTime, change.NewDate, change.NewTime, change.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: AddChange - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&change.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: AddChange - execute insert: %w", ErrExecQuery, err)
	}
	change.CreatedAt = createdAt.Time

	return change, nil
}

// ListChanges журнал изменений бронирования в хронологическом порядке
func (r *Repository) ListChanges(ctx context.Context, bookingID int64) ([]*domain.BookingChange, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"booking_id",
		"change_type",
		"original_date",
		"original_time",
		"new_date",
		"new_time",
		"reason",
		"created_at",
	).
		From("booking_changes").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListChanges - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListChanges - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	changes := make([]*domain.BookingChange, 0)
	for rows.Next() {
		var c domain.BookingChange
		var createdAt sql.NullTime
		if err := rows.Scan(
			&c.ID,
			&c.BookingID,
			&c.Type,
			&c.OriginalDate,
			&c.OriginalTime,
			&c.NewDate,
			&c.NewTime,
			&c.Reason,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListChanges - scan change: %w", ErrScanRow, err)
		}
		c.CreatedAt = createdAt.Time
		changes = append(changes, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListChanges - rows error: %w", ErrScanRow, err)
	}

	return changes, nil
}

// attachServices подгружает строки услуг одним запросом для всех бронирований
func (r *Repository) attachServices(ctx context.Context, bookings []*domain.Booking) error {
	if len(bookings) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	byID := make(map[int64]*domain.Booking, len(bookings))
	ids := make([]int64, 0, len(bookings))
	for _, b := range bookings {
		byID[b.ID] = b
		ids = append(ids, b.ID)
	}

	query, args, err := psqlbuilder.Select("booking_id", "service_id", "service_name", "service_price", "duration_minutes", "position").
		From("booking_services").
		Where(squirrel.Eq{"booking_id": ids}).
		OrderBy("booking_id ASC", "position ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: attachServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: attachServices - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var bookingID int64
		var line domain.BookingService
		if err := rows.Scan(&bookingID, &line.ServiceID, &line.ServiceName, &line.ServicePrice, &line.DurationMinutes, &line.Position); err != nil {
			return fmt.Errorf("%w: attachServices - scan line: %w", ErrScanRow, err)
		}
		if b, ok := byID[bookingID]; ok {
			b.Services = append(b.Services, line)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: attachServices - rows error: %w", ErrScanRow, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.Code,
		&b.Client.Name,
		&b.Client.Phone,
		&b.Client.Email,
		&b.Date,
		&b.StartTime,
		&b.EndTime,
		&b.ProfessionalID,
		&b.ProfessionalName,
		&b.TotalPrice,
		&b.DepositRequired,
		&b.DepositPaid,
		&b.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time
	b.Services = make([]domain.BookingService, 0)

	return &b, nil
}

func statusStrings(statuses []domain.BookingStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}
