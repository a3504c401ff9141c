package property

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/avolkov/PRS-VisitService/internal/domain"
	"github.com/avolkov/PRS-VisitService/pkg/dbmetrics"
	"github.com/avolkov/PRS-VisitService/pkg/psqlbuilder"
)

var propertyColumns = []string{
	"id",
	"name",
	"full_address",
	"cadastral_ref",
	"insurance_company",
	"listing_url",
	"monthly_price",
	"visit_duration_minutes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с объектами недвижимости
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория объектов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает объект недвижимости по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(propertyColumns...).
		From("properties").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.Property
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.Name,
		&p.FullAddress,
		&p.CadastralRef,
		&p.InsuranceCompany,
		&p.ListingURL,
		&p.MonthlyPrice,
		&p.VisitDurationMinutes,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPropertyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan property: %v", ErrScanRow, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}

// GetByIDs получает объекты по списку идентификаторов
// Используется флоу доступа арендатора: телефон -> разрешённые объекты
func (r *Repository) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Property, error) {
	if len(ids) == 0 {
		return []*domain.Property{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(propertyColumns...).
		From("properties").
		Where(squirrel.Eq{"id": ids}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	properties := make([]*domain.Property, 0, len(ids))
	for rows.Next() {
		var p domain.Property
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.FullAddress,
			&p.CadastralRef,
			&p.InsuranceCompany,
			&p.ListingURL,
			&p.MonthlyPrice,
			&p.VisitDurationMinutes,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByIDs - scan row: %v", ErrScanRow, err)
		}

		p.CreatedAt = createdAt.Time
		p.UpdatedAt = updatedAt.Time

		properties = append(properties, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - rows error: %v", ErrScanRow, err)
	}

	return properties, nil
}

// GetAdministrators получает администраторов объекта
// Они - получатели уведомлений об отменах визитов
func (r *Repository) GetAdministrators(ctx context.Context, propertyID int64) ([]*domain.Administrator, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"a.id",
		"a.name",
		"a.email",
		"a.phone",
	).
		From("administrators a").
		Join("property_administrators pa ON pa.administrator_id = a.id").
		Where(squirrel.Eq{"pa.property_id": propertyID}).
		OrderBy("a.id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAdministrators - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAdministrators - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	admins := make([]*domain.Administrator, 0)
	for rows.Next() {
		var a domain.Administrator
		if err := rows.Scan(&a.ID, &a.Name, &a.Email, &a.Phone); err != nil {
			return nil, fmt.Errorf("%w: GetAdministrators - scan row: %v", ErrScanRow, err)
		}
		admins = append(admins, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAdministrators - rows error: %v", ErrScanRow, err)
	}

	return admins, nil
}
