package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

// Repository чтение справочников: мастера, услуги и их связи.
// Управление справочниками выполняется вне сервиса.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория справочников
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetProfessionalByID получает мастера по ID
func (r *Repository) GetProfessionalByID(ctx context.Context, id int64) (*domain.Professional, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "email", "phone", "specialization", "active").
		From("professionals").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetProfessionalByID - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.Professional
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.Name,
		&p.Email,
		&p.Phone,
		&p.Specialization,
		&p.Active,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfessionalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetProfessionalByID - scan professional: %w", ErrScanRow, err)
	}

	return &p, nil
}

// GetServicesByIDs получает услуги по списку ID. Отсутствующие ID в результат не попадают.
func (r *Repository) GetServicesByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Service, error) {
	result := make(map[int64]*domain.Service, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"description",
		"duration_minutes",
		"price",
		"deposit",
		"category",
		"active",
	).
		From("services").
		Where(squirrel.Eq{"id": domain.DistinctIDs(ids)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetServicesByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetServicesByIDs - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var s domain.Service
		if err := rows.Scan(
			&s.ID,
			&s.Name,
			&s.Description,
			&s.DurationMinutes,
			&s.Price,
			&s.Deposit,
			&s.Category,
			&s.Active,
		); err != nil {
			return nil, fmt.Errorf("%w: GetServicesByIDs - scan service: %w", ErrScanRow, err)
		}
		result[s.ID] = &s
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetServicesByIDs - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

// ListQualifiedProfessionals активные мастера, которым назначены все перечисленные услуги,
// по возрастанию ID
func (r *Repository) ListQualifiedProfessionals(ctx context.Context, serviceIDs []int64) ([]*domain.Professional, error) {
	distinct := domain.DistinctIDs(serviceIDs)
	if len(distinct) == 0 {
		return []*domain.Professional{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("p.id", "p.name", "p.email", "p.phone", "p.specialization", "p.active").
		From("professionals p").
		Join("professional_services ps ON ps.professional_id = p.id").
		Where(squirrel.Eq{"p.active": true, "ps.service_id": distinct}).
		GroupBy("p.id", "p.name", "p.email", "p.phone", "p.specialization", "p.active").
		Having("COUNT(DISTINCT ps.service_id) = ?", len(distinct)).
		OrderBy("p.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListQualifiedProfessionals - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListQualifiedProfessionals - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	professionals := make([]*domain.Professional, 0)
	for rows.Next() {
		var p domain.Professional
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &p.Specialization, &p.Active); err != nil {
			return nil, fmt.Errorf("%w: ListQualifiedProfessionals - scan professional: %w", ErrScanRow, err)
		}
		professionals = append(professionals, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListQualifiedProfessionals - rows error: %w", ErrScanRow, err)
	}

	return professionals, nil
}

// IsQualified назначены ли мастеру все перечисленные услуги
func (r *Repository) IsQualified(ctx context.Context, professionalID int64, serviceIDs []int64) (bool, error) {
	distinct := domain.DistinctIDs(serviceIDs)
	if len(distinct) == 0 {
		return false, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(DISTINCT service_id)").
		From("professional_services").
		Where(squirrel.Eq{"professional_id": professionalID, "service_id": distinct}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: IsQualified - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: IsQualified - scan count: %w", ErrScanRow, err)
	}

	return count == len(distinct), nil
}
