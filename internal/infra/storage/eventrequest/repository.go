package eventrequest

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-VenueService/internal/domain"
	"github.com/m04kA/SMC-VenueService/pkg/dbmetrics"
	"github.com/m04kA/SMC-VenueService/pkg/psqlbuilder"
)

var requestColumns = []string{
	"id",
	"venue_id",
	"artist_id",
	"event_date",
	"start_hour",
	"end_hour",
	"status",
	"title",
	"notes",
	"rejection_reason",
	"decided_by",
	"decided_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий заявок на мероприятия
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заявок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую заявку в статусе pending
func (r *Repository) Create(ctx context.Context, req *domain.EventRequest) (*domain.EventRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("event_requests").
		Columns(
			"venue_id",
			"artist_id",
			"event_date",
			"start_hour",
			"end_hour",
			"status",
			"title",
			"notes",
		).
		Values(
			req.VenueID,
			req.ArtistID,
			domain.DateKey(req.Date),
			req.StartHour,
			req.EndHour,
			string(req.Status),
			req.Title,
			req.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&req.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	req.CreatedAt = createdAt.Time
	req.UpdatedAt = updatedAt.Time

	return req, nil
}

// GetByID получает заявку по ID.
// Внутри транзакции строка блокируется (FOR UPDATE) до конца транзакции.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.EventRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(requestColumns...).
		From("event_requests").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	req, err := scanRequest(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan request: %w", ErrScanRow, err)
	}

	return req, nil
}

// GetByVenue получает заявки площадки, опционально фильтруя по статусу
func (r *Repository) GetByVenue(ctx context.Context, venueID int64, status *domain.RequestStatus) ([]*domain.EventRequest, error) {
	selectBuilder := psqlbuilder.Select(requestColumns...).
		From("event_requests").
		Where(squirrel.Eq{"venue_id": venueID}).
		OrderBy("event_date ASC, start_hour ASC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*status)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByVenue - build select query: %w", ErrBuildQuery, err)
	}

	return r.query(ctx, "GetByVenue", query, args)
}

// GetByArtist получает заявки артиста, сначала новые
func (r *Repository) GetByArtist(ctx context.Context, artistID int64, status *domain.RequestStatus) ([]*domain.EventRequest, error) {
	selectBuilder := psqlbuilder.Select(requestColumns...).
		From("event_requests").
		Where(squirrel.Eq{"artist_id": artistID}).
		OrderBy("event_date DESC, start_hour DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*status)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByArtist - build select query: %w", ErrBuildQuery, err)
	}

	return r.query(ctx, "GetByArtist", query, args)
}

// GetApprovedInRange получает одобренные заявки площадки на даты [from, to] включительно
func (r *Repository) GetApprovedInRange(ctx context.Context, venueID int64, from, to time.Time) ([]*domain.EventRequest, error) {
	query, args, err := psqlbuilder.Select(requestColumns...).
		From("event_requests").
		Where(squirrel.Eq{
			"venue_id": venueID,
			"status":   string(domain.RequestStatusApproved),
		}).
		Where(squirrel.GtOrEq{"event_date": domain.DateKey(from)}).
		Where(squirrel.LtOrEq{"event_date": domain.DateKey(to)}).
		OrderBy("event_date ASC, start_hour ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetApprovedInRange - build select query: %w", ErrBuildQuery, err)
	}

	return r.query(ctx, "GetApprovedInRange", query, args)
}

// UpdateDecision сохраняет решение менеджера.
// Обновление проходит только из статуса pending: если заявку уже рассмотрели,
// возвращается ErrRequestNotPending.
func (r *Repository) UpdateDecision(ctx context.Context, req *domain.EventRequest) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("event_requests").
		Set("status", string(req.Status)).
		Set("rejection_reason", req.RejectionReason).
		Set("decided_by", req.DecidedBy).
		Set("decided_at", req.DecidedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":     req.ID,
			"status": string(domain.RequestStatusPending),
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateDecision - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateDecision - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateDecision - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRequestNotPending
	}

	return nil
}

func (r *Repository) query(ctx context.Context, method, query string, args []interface{}) ([]*domain.EventRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, method, err)
	}
	defer rows.Close()

	requests := make([]*domain.EventRequest, 0)

	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, method, err)
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, method, err)
	}

	return requests, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRequest(row rowScanner) (*domain.EventRequest, error) {
	var req domain.EventRequest
	var status string
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&req.ID,
		&req.VenueID,
		&req.ArtistID,
		&req.Date,
		&req.StartHour,
		&req.EndHour,
		&status,
		&req.Title,
		&req.Notes,
		&req.RejectionReason,
		&req.DecidedBy,
		&req.DecidedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	req.Date = domain.DateOnly(req.Date)
	req.Status = domain.RequestStatus(status)
	req.CreatedAt = createdAt.Time
	req.UpdatedAt = updatedAt.Time

	return &req, nil
}
