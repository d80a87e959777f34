package payment

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/pgerrors"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

// Repository репозиторий платежей по записям
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория платежей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет платеж. Второй подтвержденный платеж по той же записи
// или по той же операции провайдера отклоняется уникальным индексом.
func (r *Repository) Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("payments").
		Columns(
			"booking_id",
			"provider",
			"operation_id",
			"amount",
			"currency",
			"method",
			"payer_email",
			"status",
			"external_reference",
			"approved_at",
		).
		Values(
			payment.BookingID,
			payment.Provider,
			payment.OperationID,
			payment.Amount,
			payment.Currency,
			payment.Method,
			payment.PayerEmail,
			payment.Status,
			payment.ExternalReference,
			payment.ApprovedAt,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&payment.ID, &createdAt); err != nil {
		switch {
		case pgerrors.IsUniqueViolation(err):
			return nil, fmt.Errorf("%w: Create - %v", ErrAlreadyVerified, err)
		case pgerrors.IsForeignKeyViolation(err):
			return nil, fmt.Errorf("%w: Create - %v", ErrInvalidReference, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}
	payment.CreatedAt = createdAt.Time

	return payment, nil
}

// ListByBooking платежи записи, от ранних к поздним
func (r *Repository) ListByBooking(ctx context.Context, bookingID int64) ([]*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"booking_id",
		"provider",
		"operation_id",
		"amount",
		"currency",
		"method",
		"payer_email",
		"status",
		"external_reference",
		"approved_at",
		"created_at",
	).
		From("payments").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	payments := make([]*domain.Payment, 0)
	for rows.Next() {
		var p domain.Payment
		var createdAt sql.NullTime
		if err := rows.Scan(
			&p.ID,
			&p.BookingID,
			&p.Provider,
			&p.OperationID,
			&p.Amount,
			&p.Currency,
			&p.Method,
			&p.PayerEmail,
			&p.Status,
			&p.ExternalReference,
			&p.ApprovedAt,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListByBooking - scan payment: %w", ErrScanRow, err)
		}
		p.CreatedAt = createdAt.Time
		payments = append(payments, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - rows error: %w", ErrScanRow, err)
	}

	return payments, nil
}
