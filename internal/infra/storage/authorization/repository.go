package authorization

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/avolkov/PRS-VisitService/internal/domain"
	"github.com/avolkov/PRS-VisitService/pkg/dbmetrics"
	"github.com/avolkov/PRS-VisitService/pkg/psqlbuilder"
)

// pgUniqueViolation код ошибки Postgres для нарушения уникальности
const pgUniqueViolation = "23505"

// Repository репозиторий для работы с авторизациями арендаторов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория авторизаций
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create авторизует телефон для объекта
// Пара (объект, телефон) уникальна - повтор отклоняется ErrDuplicateAuthorization
func (r *Repository) Create(ctx context.Context, auth *domain.Authorization) (*domain.Authorization, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("authorizations").
		Columns("property_id", "phone").
		Values(auth.PropertyID, auth.Phone).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&auth.ID, &createdAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return nil, ErrDuplicateAuthorization
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	auth.CreatedAt = createdAt.Time

	return auth, nil
}

// IsAuthorized проверяет, разрешено ли телефону бронировать визиты объекта
func (r *Repository) IsAuthorized(ctx context.Context, propertyID int64, phone string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("authorizations").
		Where(squirrel.Eq{"property_id": propertyID, "phone": phone}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: IsAuthorized - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: IsAuthorized - scan row: %v", ErrScanRow, err)
	}

	return true, nil
}

// GetPropertyIDs получает идентификаторы объектов, доступных телефону
func (r *Repository) GetPropertyIDs(ctx context.Context, phone string) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("property_id").
		From("authorizations").
		Where(squirrel.Eq{"phone": phone}).
		OrderBy("property_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetPropertyIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetPropertyIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: GetPropertyIDs - scan property_id: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetPropertyIDs - rows error: %v", ErrScanRow, err)
	}

	return ids, nil
}

// GetByProperty получает все авторизации объекта
func (r *Repository) GetByProperty(ctx context.Context, propertyID int64) ([]*domain.Authorization, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "property_id", "phone", "created_at").
		From("authorizations").
		Where(squirrel.Eq{"property_id": propertyID}).
		OrderBy("created_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByProperty - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProperty - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	auths := make([]*domain.Authorization, 0)
	for rows.Next() {
		var a domain.Authorization
		var createdAt sql.NullTime
		if err := rows.Scan(&a.ID, &a.PropertyID, &a.Phone, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: GetByProperty - scan row: %v", ErrScanRow, err)
		}
		a.CreatedAt = createdAt.Time
		auths = append(auths, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByProperty - rows error: %v", ErrScanRow, err)
	}

	return auths, nil
}

// Delete удаляет авторизацию объекта
func (r *Repository) Delete(ctx context.Context, propertyID, authorizationID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("authorizations").
		Where(squirrel.Eq{"id": authorizationID, "property_id": propertyID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if affected == 0 {
		return ErrAuthorizationNotFound
	}

	return nil
}
