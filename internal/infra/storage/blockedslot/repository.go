package blockedslot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/m04kA/SMC-VenueService/internal/domain"
	"github.com/m04kA/SMC-VenueService/pkg/dbmetrics"
	"github.com/m04kA/SMC-VenueService/pkg/psqlbuilder"
)

var blockColumns = []string{
	"id",
	"venue_id",
	"scope",
	"weekday",
	"block_date",
	"hour",
	"created_at",
}

// Repository репозиторий заблокированных слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetForDate получает все блокировки, действующие на дату:
// еженедельные по дню недели и разовые на саму дату
func (r *Repository) GetForDate(ctx context.Context, venueID int64, date time.Time) ([]domain.BlockedSlot, error) {
	query, args, err := psqlbuilder.Select(blockColumns...).
		From("blocked_slots").
		Where(squirrel.Eq{"venue_id": venueID}).
		Where(squirrel.Or{
			squirrel.Eq{"scope": string(domain.BlockScopeRecurring), "weekday": int(domain.WeekdayOf(date))},
			squirrel.Eq{"scope": string(domain.BlockScopeSpecific), "block_date": domain.DateKey(date)},
		}).
		OrderBy("hour ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetForDate - build select query: %w", ErrBuildQuery, err)
	}

	return r.query(ctx, "GetForDate", query, args)
}

// GetAllByVenue получает все блокировки площадки
func (r *Repository) GetAllByVenue(ctx context.Context, venueID int64) ([]domain.BlockedSlot, error) {
	query, args, err := psqlbuilder.Select(blockColumns...).
		From("blocked_slots").
		Where(squirrel.Eq{"venue_id": venueID}).
		OrderBy("scope ASC, weekday ASC, block_date ASC NULLS FIRST, hour ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByVenue - build select query: %w", ErrBuildQuery, err)
	}

	return r.query(ctx, "GetAllByVenue", query, args)
}

// GetRecurringByVenue получает только еженедельные блокировки площадки
func (r *Repository) GetRecurringByVenue(ctx context.Context, venueID int64) ([]domain.BlockedSlot, error) {
	query, args, err := psqlbuilder.Select(blockColumns...).
		From("blocked_slots").
		Where(squirrel.Eq{"venue_id": venueID, "scope": string(domain.BlockScopeRecurring)}).
		OrderBy("weekday ASC, hour ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetRecurringByVenue - build select query: %w", ErrBuildQuery, err)
	}

	return r.query(ctx, "GetRecurringByVenue", query, args)
}

// GetByID получает блокировку площадки по ID
func (r *Repository) GetByID(ctx context.Context, venueID int64, id uuid.UUID) (*domain.BlockedSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(blockColumns...).
		From("blocked_slots").
		Where(squirrel.Eq{"id": id.String(), "venue_id": venueID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	block, err := scanBlock(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBlockNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan block: %w", ErrScanRow, err)
	}

	return block, nil
}

// FindByKey ищет блокировку с тем же ключом уникальности, что и probe:
// (scope, weekday для еженедельной или дата для разовой, час)
func (r *Repository) FindByKey(ctx context.Context, probe domain.BlockedSlot) (*domain.BlockedSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	where := squirrel.Eq{
		"venue_id": probe.VenueID,
		"scope":    string(probe.Scope),
		"hour":     probe.Hour,
	}
	if probe.IsRecurring() {
		where["weekday"] = int(probe.Weekday())
	} else {
		where["block_date"] = domain.DateKey(probe.Date())
	}

	query, args, err := psqlbuilder.Select(blockColumns...).
		From("blocked_slots").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindByKey - build select query: %w", ErrBuildQuery, err)
	}

	block, err := scanBlock(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBlockNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindByKey - scan block: %w", ErrScanRow, err)
	}

	return block, nil
}

// Insert сохраняет блокировки одним запросом.
// Уже существующие по ключу уникальности пропускаются (ON CONFLICT DO NOTHING),
// возвращается количество реально вставленных строк.
func (r *Repository) Insert(ctx context.Context, blocks ...domain.BlockedSlot) (int64, error) {
	if len(blocks) == 0 {
		return 0, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Insert("blocked_slots").
		Columns(blockColumns...)

	for _, b := range blocks {
		var blockDate interface{}
		if !b.IsRecurring() {
			blockDate = domain.DateKey(b.Date())
		}

		createdAt := b.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now().UTC()
		}

		builder = builder.Values(b.ID, b.VenueID, string(b.Scope), int(b.Weekday()), blockDate, b.Hour, createdAt)
	}

	query, args, err := builder.Suffix("ON CONFLICT DO NOTHING").ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Insert - build insert query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: Insert - execute insert: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: Insert - get rows affected: %w", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// Delete удаляет блокировку площадки по ID
func (r *Repository) Delete(ctx context.Context, venueID int64, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocked_slots").
		Where(squirrel.Eq{"id": id.String(), "venue_id": venueID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
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
		return ErrBlockNotFound
	}

	return nil
}

// DeleteSpecificBefore удаляет разовые блокировки всех площадок на даты раньше before.
// Еженедельные блокировки не затрагиваются.
func (r *Repository) DeleteSpecificBefore(ctx context.Context, before time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocked_slots").
		Where(squirrel.Eq{"scope": string(domain.BlockScopeSpecific)}).
		Where(squirrel.Lt{"block_date": domain.DateKey(before)}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteSpecificBefore - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteSpecificBefore - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteSpecificBefore - get rows affected: %w", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

func (r *Repository) query(ctx context.Context, method, query string, args []interface{}) ([]domain.BlockedSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, method, err)
	}
	defer rows.Close()

	blocks := make([]domain.BlockedSlot, 0)

	for rows.Next() {
		block, err := scanBlock(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, method, err)
		}
		blocks = append(blocks, *block)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, method, err)
	}

	return blocks, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBlock(row rowScanner) (*domain.BlockedSlot, error) {
	var (
		id        uuid.UUID
		venueID   int64
		scope     string
		weekday   int
		blockDate sql.NullTime
		hour      int
		createdAt sql.NullTime
	)

	if err := row.Scan(&id, &venueID, &scope, &weekday, &blockDate, &hour, &createdAt); err != nil {
		return nil, err
	}

	var date *time.Time
	if blockDate.Valid {
		date = &blockDate.Time
	}

	block, err := domain.RestoreBlock(id, venueID, domain.BlockScope(scope), time.Weekday(weekday), date, hour, createdAt.Time)
	if err != nil {
		return nil, err
	}

	return &block, nil
}
