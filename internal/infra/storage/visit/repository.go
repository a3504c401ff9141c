package visit

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

// Имена ограничений из миграций - по ним различаем причину 23505
const (
	constraintActiveSlot  = "ux_visits_active_slot"
	constraintAccessToken = "ux_visits_access_token"
)

// pgUniqueViolation код ошибки Postgres для нарушения уникальности
const pgUniqueViolation = "23505"

var visitColumns = []string{
	"id",
	"property_id",
	"access_token",
	"phone",
	"first_name",
	"last_name",
	"email",
	"monthly_income",
	"num_tenants",
	"num_minors",
	"has_pets",
	"is_smoker",
	"occupation",
	"notes",
	"scheduled_at",
	"status",
	"times_cancelled",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с визитами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория визитов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateConfirmed вставляет новый визит в статусе confirmed.
//
// Уникальность активного слота (property_id, scheduled_at, status=confirmed)
// обеспечивает частичный уникальный индекс - при конкурентных вставках на один
// и тот же момент ровно одна проходит, остальные получают ErrSlotTaken.
// Если в контексте передана активная транзакция, использует её.
func (r *Repository) CreateConfirmed(ctx context.Context, visit *domain.Visit) (*domain.Visit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("visits").
		Columns(
			"property_id",
			"access_token",
			"phone",
			"first_name",
			"last_name",
			"email",
			"monthly_income",
			"num_tenants",
			"num_minors",
			"has_pets",
			"is_smoker",
			"occupation",
			"notes",
			"scheduled_at",
			"status",
			"times_cancelled",
		).
		Values(
			visit.PropertyID,
			visit.AccessToken,
			visit.Phone,
			visit.FirstName,
			visit.LastName,
			visit.Email,
			visit.MonthlyIncome,
			visit.NumTenants,
			visit.NumMinors,
			visit.HasPets,
			visit.IsSmoker,
			visit.Occupation,
			visit.Notes,
			visit.ScheduledAt,
			domain.StatusConfirmed,
			visit.TimesCancelled,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateConfirmed - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&visit.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			switch pqErr.Constraint {
			case constraintActiveSlot:
				return nil, ErrSlotTaken
			case constraintAccessToken:
				return nil, ErrTokenCollision
			}
		}
		return nil, fmt.Errorf("%w: CreateConfirmed - execute insert: %v", ErrExecQuery, err)
	}

	visit.Status = domain.StatusConfirmed
	visit.CreatedAt = createdAt.Time
	visit.UpdatedAt = updatedAt.Time

	return visit, nil
}

// GetByToken получает визит по access token
func (r *Repository) GetByToken(ctx context.Context, token string) (*domain.Visit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(visitColumns...).
		From("visits").
		Where(squirrel.Eq{"access_token": token}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByToken - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanVisit(executor.QueryRowContext(ctx, query, args...), "GetByToken")
}

// GetByPhone получает историю визитов по номеру телефона заявителя
// Опционально фильтрует по статусу
func (r *Repository) GetByPhone(ctx context.Context, phone string, status *domain.VisitStatus) ([]*domain.Visit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(visitColumns...).
		From("visits").
		Where(squirrel.Eq{"phone": phone}).
		OrderBy("scheduled_at DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPhone - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPhone - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanVisits(rows)
}

// GetByPropertyWithFilter получает визиты объекта с гибкой фильтрацией
//
// Внутри транзакции при запросе на один день добавляет FOR UPDATE - это
// блокирует confirmed-визиты даты на время проверки доступности слота в
// usecase создания визита.
func (r *Repository) GetByPropertyWithFilter(ctx context.Context, filter domain.PropertyVisitsFilter) ([]*domain.Visit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(visitColumns...).
		From("visits").
		Where(squirrel.Eq{"property_id": filter.PropertyID})

	// Фильтрация по периоду
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"scheduled_at": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"scheduled_at": *filter.EndDate})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		// Если не указан конкретный статус и не нужны неактивные - только confirmed
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": domain.StatusConfirmed})
	}

	selectBuilder = selectBuilder.OrderBy("scheduled_at ASC")

	if dbmetrics.IsInTransaction(ctx) && filter.StartDate != nil && filter.EndDate != nil {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPropertyWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPropertyWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanVisits(rows)
}

// GetConfirmedInstants получает занятые моменты объекта начиная с notBefore
// Используется аллокатором слотов: один консистентный снимок занятости
func (r *Repository) GetConfirmedInstants(ctx context.Context, propertyID int64, notBefore time.Time) ([]time.Time, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("scheduled_at").
		From("visits").
		Where(squirrel.Eq{"property_id": propertyID, "status": domain.StatusConfirmed}).
		Where(squirrel.GtOrEq{"scheduled_at": notBefore}).
		OrderBy("scheduled_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetConfirmedInstants - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetConfirmedInstants - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	instants := make([]time.Time, 0)
	for rows.Next() {
		var instant time.Time
		if err := rows.Scan(&instant); err != nil {
			return nil, fmt.Errorf("%w: GetConfirmedInstants - scan instant: %v", ErrScanRow, err)
		}
		instants = append(instants, instant)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetConfirmedInstants - rows error: %v", ErrScanRow, err)
	}

	return instants, nil
}

// CancelByToken переводит confirmed-визит в cancelled одним атомарным UPDATE
//
// Guard по статусу в WHERE гарантирует, что переход и инкремент счётчика
// выполняются ровно один раз: конкурентная повторная отмена не находит строку
// и получает ErrNoConfirmedVisit (вызывающий различает NotFound/AlreadyTerminal
// отдельным чтением).
func (r *Repository) CancelByToken(ctx context.Context, token string, reason string) (*domain.Visit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("visits").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("times_cancelled", squirrel.Expr("times_cancelled + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"access_token": token, "status": domain.StatusConfirmed}).
		Suffix("RETURNING " + joinColumns(visitColumns)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CancelByToken - build update query: %v", ErrBuildQuery, err)
	}

	updated, err := r.scanVisit(executor.QueryRowContext(ctx, query, args...), "CancelByToken")
	if errors.Is(err, ErrVisitNotFound) {
		return nil, ErrNoConfirmedVisit
	}
	return updated, err
}

// CompleteElapsed массово переводит прошедшие confirmed-визиты в completed
// Возвращает количество изменённых строк. Идемпотентна: терминальные визиты не трогает
func (r *Repository) CompleteElapsed(ctx context.Context, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("visits").
		Set("status", domain.StatusCompleted).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		Where(squirrel.Lt{"scheduled_at": now}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CompleteElapsed - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CompleteElapsed - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CompleteElapsed - get rows affected: %v", ErrExecQuery, err)
	}

	return affected, nil
}

// scanVisit сканирует одну строку визита
func (r *Repository) scanVisit(row *sql.Row, method string) (*domain.Visit, error) {
	var visit domain.Visit
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&visit.ID,
		&visit.PropertyID,
		&visit.AccessToken,
		&visit.Phone,
		&visit.FirstName,
		&visit.LastName,
		&visit.Email,
		&visit.MonthlyIncome,
		&visit.NumTenants,
		&visit.NumMinors,
		&visit.HasPets,
		&visit.IsSmoker,
		&visit.Occupation,
		&visit.Notes,
		&visit.ScheduledAt,
		&visit.Status,
		&visit.TimesCancelled,
		&visit.CancellationReason,
		&visit.CancelledAt,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrVisitNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan visit: %v", ErrScanRow, method, err)
	}

	visit.CreatedAt = createdAt.Time
	visit.UpdatedAt = updatedAt.Time

	return &visit, nil
}

// scanVisits сканирует результаты запроса в слайс визитов
func (r *Repository) scanVisits(rows *sql.Rows) ([]*domain.Visit, error) {
	visits := make([]*domain.Visit, 0)

	for rows.Next() {
		var visit domain.Visit
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&visit.ID,
			&visit.PropertyID,
			&visit.AccessToken,
			&visit.Phone,
			&visit.FirstName,
			&visit.LastName,
			&visit.Email,
			&visit.MonthlyIncome,
			&visit.NumTenants,
			&visit.NumMinors,
			&visit.HasPets,
			&visit.IsSmoker,
			&visit.Occupation,
			&visit.Notes,
			&visit.ScheduledAt,
			&visit.Status,
			&visit.TimesCancelled,
			&visit.CancellationReason,
			&visit.CancelledAt,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanVisits - scan row: %v", ErrScanRow, err)
		}

		visit.CreatedAt = createdAt.Time
		visit.UpdatedAt = updatedAt.Time

		visits = append(visits, &visit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanVisits - rows error: %v", ErrScanRow, err)
	}

	return visits, nil
}

// joinColumns собирает список колонок для RETURNING
func joinColumns(columns []string) string {
	out := ""
	for i, c := range columns {
		if i > 0 {
			out += ", "
		}
		out += c
	}
	return out
}
