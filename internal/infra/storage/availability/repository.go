package availability

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/m04kA/SMC-VenueService/internal/domain"
	"github.com/m04kA/SMC-VenueService/pkg/dbmetrics"
	"github.com/m04kA/SMC-VenueService/pkg/psqlbuilder"
)

// Repository репозиторий недельного шаблона и переопределений по датам
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetTemplate получает недельный шаблон площадки.
// Дни без строки в БД считаются закрытыми.
func (r *Repository) GetTemplate(ctx context.Context, venueID int64) (*domain.AvailabilityTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("weekday", "hours").
		From("venue_weekly_hours").
		Where(squirrel.Eq{"venue_id": venueID}).
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetTemplate - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetTemplate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	template := domain.NewAvailabilityTemplate()

	for rows.Next() {
		var weekday int
		var hours pq.Int64Array

		if err := rows.Scan(&weekday, &hours); err != nil {
			return nil, fmt.Errorf("%w: GetTemplate - scan row: %w", ErrScanRow, err)
		}

		set, err := toHourSet(hours)
		if err != nil {
			return nil, fmt.Errorf("%w: GetTemplate - weekday %d: %v", ErrInvalidData, weekday, err)
		}
		if err := template.SetWeekdaySet(time.Weekday(weekday), set); err != nil {
			return nil, fmt.Errorf("%w: GetTemplate - weekday %d: %v", ErrInvalidData, weekday, err)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetTemplate - rows error: %w", ErrScanRow, err)
	}

	return template, nil
}

// SaveWeekdayHours создает или заменяет часы работы для переданных дней недели.
// Остальные дни шаблона не затрагиваются.
func (r *Repository) SaveWeekdayHours(ctx context.Context, venueID int64, days []domain.WeeklyHours) error {
	if len(days) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Insert("venue_weekly_hours").
		Columns("venue_id", "weekday", "hours", "updated_at")

	for _, day := range days {
		builder = builder.Values(venueID, int(day.Weekday), toArray(day.Hours), squirrel.Expr("NOW()"))
	}

	query, args, err := builder.
		Suffix("ON CONFLICT (venue_id, weekday) DO UPDATE SET hours = EXCLUDED.hours, updated_at = NOW()").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SaveWeekdayHours - build upsert query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SaveWeekdayHours - execute upsert: %w", ErrExecQuery, err)
	}

	return nil
}

// GetOverride получает переопределение на конкретную дату
func (r *Repository) GetOverride(ctx context.Context, venueID int64, date time.Time) (*domain.DateOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("override_date", "hours").
		From("venue_date_overrides").
		Where(squirrel.Eq{
			"venue_id":      venueID,
			"override_date": domain.DateKey(date),
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOverride - build select query: %w", ErrBuildQuery, err)
	}

	override, err := scanOverride(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrOverrideNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverride - scan override: %w", ErrScanRow, err)
	}

	return override, nil
}

// GetOverridesInRange получает переопределения в диапазоне дат [from, to] включительно
func (r *Repository) GetOverridesInRange(ctx context.Context, venueID int64, from, to time.Time) ([]domain.DateOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("override_date", "hours").
		From("venue_date_overrides").
		Where(squirrel.Eq{"venue_id": venueID}).
		Where(squirrel.GtOrEq{"override_date": domain.DateKey(from)}).
		Where(squirrel.LtOrEq{"override_date": domain.DateKey(to)}).
		OrderBy("override_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOverridesInRange - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverridesInRange - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	overrides := make([]domain.DateOverride, 0)

	for rows.Next() {
		override, err := scanOverride(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetOverridesInRange - scan row: %w", ErrScanRow, err)
		}
		overrides = append(overrides, *override)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetOverridesInRange - rows error: %w", ErrScanRow, err)
	}

	return overrides, nil
}

// SaveOverride создает или заменяет переопределение на дату.
// Пустой набор часов означает, что площадка закрыта весь день.
func (r *Repository) SaveOverride(ctx context.Context, venueID int64, override domain.DateOverride) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("venue_date_overrides").
		Columns("venue_id", "override_date", "hours", "updated_at").
		Values(venueID, domain.DateKey(override.Date), toArray(override.Hours), squirrel.Expr("NOW()")).
		Suffix("ON CONFLICT (venue_id, override_date) DO UPDATE SET hours = EXCLUDED.hours, updated_at = NOW()").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SaveOverride - build upsert query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SaveOverride - execute upsert: %w", ErrExecQuery, err)
	}

	return nil
}

// DeleteOverride удаляет переопределение, после чего дата снова следует шаблону
func (r *Repository) DeleteOverride(ctx context.Context, venueID int64, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("venue_date_overrides").
		Where(squirrel.Eq{
			"venue_id":      venueID,
			"override_date": domain.DateKey(date),
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrOverrideNotFound
	}

	return nil
}

// DeleteOverridesBefore удаляет переопределения всех площадок на даты раньше before
func (r *Repository) DeleteOverridesBefore(ctx context.Context, before time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("venue_date_overrides").
		Where(squirrel.Lt{"override_date": domain.DateKey(before)}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteOverridesBefore - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteOverridesBefore - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteOverridesBefore - get rows affected: %w", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOverride(row rowScanner) (*domain.DateOverride, error) {
	var date time.Time
	var hours pq.Int64Array

	if err := row.Scan(&date, &hours); err != nil {
		return nil, err
	}

	set, err := toHourSet(hours)
	if err != nil {
		return nil, fmt.Errorf("%w: date %s: %v", ErrInvalidData, domain.DateKey(date), err)
	}

	return &domain.DateOverride{Date: domain.DateOnly(date), Hours: set}, nil
}

// toArray переводит набор часов в массив для колонки INTEGER[]
func toArray(set domain.HourSet) pq.Int64Array {
	sorted := set.Sorted()
	arr := make(pq.Int64Array, len(sorted))
	for i, h := range sorted {
		arr[i] = int64(h)
	}
	return arr
}

func toHourSet(arr pq.Int64Array) (domain.HourSet, error) {
	hours := make([]int, len(arr))
	for i, h := range arr {
		hours[i] = int(h)
	}
	return domain.NewHourSet(hours...)
}
