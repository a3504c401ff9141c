package window

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/avolkov/PRS-VisitService/internal/domain"
	"github.com/avolkov/PRS-VisitService/pkg/dbmetrics"
	"github.com/avolkov/PRS-VisitService/pkg/psqlbuilder"
)

// pgUniqueViolation код ошибки Postgres для нарушения уникальности
const pgUniqueViolation = "23505"

var windowColumns = []string{
	"id",
	"property_id",
	"kind",
	"visit_date",
	"weekday",
	"start_time",
	"end_time",
	"created_at",
}

// Repository репозиторий для работы с окнами доступности
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория окон доступности
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое окно доступности
// Дубликат (объект, дата-или-день-недели, начало, конец) отклоняется
// уникальным индексом на уровне БД - ErrDuplicateWindow
func (r *Repository) Create(ctx context.Context, w *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var visitDate interface{}
	if w.VisitDate != nil {
		visitDate = *w.VisitDate
	}
	var weekday interface{}
	if w.Weekday != nil {
		weekday = int(*w.Weekday)
	}

	query, args, err := psqlbuilder.Insert("availability_windows").
		Columns(
			"property_id",
			"kind",
			"visit_date",
			"weekday",
			"start_time",
			"end_time",
		).
		Values(
			w.PropertyID,
			w.Kind,
			visitDate,
			weekday,
			w.StartTime,
			w.EndTime,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&w.ID, &createdAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return nil, ErrDuplicateWindow
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	w.CreatedAt = createdAt.Time

	return w, nil
}

// GetByProperty получает все окна объекта, упорядоченные по (дата, начало)
func (r *Repository) GetByProperty(ctx context.Context, propertyID int64) ([]*domain.AvailabilityWindow, error) {
	return r.query(ctx, squirrel.Eq{"property_id": propertyID})
}

// GetApplicable получает окна объекта, применимые начиная с даты notBefore:
// датированные окна с датой >= notBefore и все еженедельные окна
// (их конкретные даты разворачивает вызывающий)
func (r *Repository) GetApplicable(ctx context.Context, propertyID int64, notBefore time.Time) ([]*domain.AvailabilityWindow, error) {
	date := time.Date(notBefore.Year(), notBefore.Month(), notBefore.Day(), 0, 0, 0, 0, notBefore.Location())

	return r.query(ctx, squirrel.And{
		squirrel.Eq{"property_id": propertyID},
		squirrel.Or{
			squirrel.Eq{"kind": domain.WindowKindWeekly},
			squirrel.GtOrEq{"visit_date": date},
		},
	})
}

// Delete удаляет окно доступности объекта
func (r *Repository) Delete(ctx context.Context, propertyID, windowID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("availability_windows").
		Where(squirrel.Eq{"id": windowID, "property_id": propertyID}).
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
		return ErrWindowNotFound
	}

	return nil
}

func (r *Repository) query(ctx context.Context, where interface{}) ([]*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(windowColumns...).
		From("availability_windows").
		Where(where).
		OrderBy("visit_date ASC NULLS LAST", "weekday ASC NULLS LAST", "start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: query - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: query - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	windows := make([]*domain.AvailabilityWindow, 0)
	for rows.Next() {
		var w domain.AvailabilityWindow
		var visitDate sql.NullTime
		var weekday sql.NullInt64
		var createdAt sql.NullTime

		err := rows.Scan(
			&w.ID,
			&w.PropertyID,
			&w.Kind,
			&visitDate,
			&weekday,
			&w.StartTime,
			&w.EndTime,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: query - scan row: %v", ErrScanRow, err)
		}

		if visitDate.Valid {
			d := visitDate.Time
			w.VisitDate = &d
		}
		if weekday.Valid {
			wd := time.Weekday(weekday.Int64)
			w.Weekday = &wd
		}
		w.CreatedAt = createdAt.Time

		windows = append(windows, &w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: query - rows error: %v", ErrScanRow, err)
	}

	return windows, nil
}
