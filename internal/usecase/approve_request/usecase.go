package approve_request

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	"github.com/m04kA/SMC-VenueService/internal/infra/lock"
	requestRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/eventrequest"
	venueRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/venue"
	"github.com/m04kA/SMC-VenueService/internal/integrations/notifier"
)

const (
	resultApproved    = "approved"
	resultUnavailable = "conflict"
	resultFailed      = "error"
)

// UseCase use case для одобрения заявки менеджером площадки
type UseCase struct {
	requestRepo  RequestRepository
	venueRepo    VenueRepository
	blockRepo    BlockRepository
	availability AvailabilityLoader
	locker       Locker
	txManager    TransactionManager
	notifier     Notifier
	metrics      MetricsCollector
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	requestRepo RequestRepository,
	venueRepo VenueRepository,
	blockRepo BlockRepository,
	availability AvailabilityLoader,
	locker Locker,
	txManager TransactionManager,
	notifier Notifier,
	metrics MetricsCollector,
	logger Logger,
) *UseCase {
	return &UseCase{
		requestRepo:  requestRepo,
		venueRepo:    venueRepo,
		blockRepo:    blockRepo,
		availability: availability,
		locker:       locker,
		txManager:    txManager,
		notifier:     notifier,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case одобрения заявки.
// Повторная проверка доступности, создание блокировок и смена статуса
// выполняются одной транзакцией READ COMMITTED. Блокировка (площадка, дата)
// берется первым запросом, а снимок доступности читается уже после неё,
// поэтому ожидавшее одобрение видит блокировки предыдущего победителя:
// из двух конкурентных одобрений пересекающихся заявок успешно только одно.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ApproveRequest: request=%d, user=%d", req.RequestID, req.UserID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ApproveRequest: validation failed: %v", err)
		return nil, err
	}

	// 2. Читаем заявку вне транзакции, чтобы узнать площадку и дату для блокировки
	current, err := uc.getRequest(ctx, req.RequestID)
	if err != nil {
		return nil, err
	}

	// 3. Проверяем, что пользователь менеджер площадки
	if err := uc.checkManager(ctx, current.VenueID, req.UserID); err != nil {
		return nil, err
	}

	if !current.IsPending() {
		uc.logger.Warn("ApproveRequest: request=%d already %s", req.RequestID, current.Status)
		return nil, ErrAlreadyDecided
	}

	var (
		approved *domain.EventRequest
		result   *domain.ApprovalResult
		snapshot *domain.VenueAvailability
		release  lock.Release
	)

	// 4. Транзакция; при конфликте или deadlock txManager повторяет её целиком
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 4.1. Снимаем блокировку предыдущей попытки, если она была
		uc.releaseLock(ctx, release)
		release = nil

		// 4.2. Берем блокировку (площадка, дата)
		rel, err := uc.locker.Lock(txCtx, current.VenueID, current.Date)
		if err != nil {
			uc.logger.Error("ApproveRequest: failed to lock venue=%d date=%s: %v",
				current.VenueID, domain.DateKey(current.Date), err)
			return fmt.Errorf("%w: failed to acquire lock: %w", ErrInternal, err)
		}
		release = rel

		// 4.3. Перечитываем заявку под FOR UPDATE
		pending, err := uc.requestRepo.GetByID(txCtx, req.RequestID)
		if err != nil {
			if errors.Is(err, requestRepo.ErrRequestNotFound) {
				return ErrRequestNotFound
			}
			uc.logger.Error("ApproveRequest: failed to reload request=%d: %v", req.RequestID, err)
			return fmt.Errorf("%w: failed to reload request: %w", ErrInternal, err)
		}

		// 4.4. Загружаем снимок доступности на дату; запросы идут после
		// блокировки и видят всё, что зафиксировал её предыдущий владелец
		snapshot, err = uc.availability.LoadForDate(txCtx, pending.VenueID, pending.Date)
		if err != nil {
			uc.logger.Error("ApproveRequest: failed to load availability venue=%d: %v", pending.VenueID, err)
			return fmt.Errorf("%w: failed to load availability: %w", ErrInternal, err)
		}

		// 4.5. Повторная проверка и переход pending -> approved
		result, err = domain.Approve(snapshot, pending, req.UserID, uc.timeProvider.Now().UTC())
		if err != nil {
			return mapDomainError(err)
		}

		// 4.6. Сохраняем новые разовые блокировки
		if len(result.Created) > 0 {
			inserted, err := uc.blockRepo.Insert(txCtx, result.Created...)
			if err != nil {
				uc.logger.Error("ApproveRequest: failed to insert blocks for request=%d: %v", req.RequestID, err)
				return fmt.Errorf("%w: failed to insert blocks: %w", ErrInternal, err)
			}
			// Блок закрыт параллельно между чтением снимка и вставкой
			if inserted != int64(len(result.Created)) {
				uc.logger.Warn("ApproveRequest: %d of %d blocks already existed for request=%d",
					int64(len(result.Created))-inserted, len(result.Created), req.RequestID)
				return ErrSlotNoLongerAvailable
			}
		}

		// 4.7. Сохраняем решение, только если заявка ещё pending
		if err := uc.requestRepo.UpdateDecision(txCtx, pending); err != nil {
			if errors.Is(err, requestRepo.ErrRequestNotPending) {
				return ErrAlreadyDecided
			}
			uc.logger.Error("ApproveRequest: failed to update request=%d: %v", req.RequestID, err)
			return fmt.Errorf("%w: failed to update request: %w", ErrInternal, err)
		}

		approved = pending
		return nil
	})

	// 5. Снимаем блокировку последней попытки
	uc.releaseLock(ctx, release)

	if err != nil {
		uc.observe(err)
		if errors.Is(err, ErrSlotNoLongerAvailable) {
			uc.logger.Warn("ApproveRequest: request=%d slot no longer available: %v", req.RequestID, err)
		} else if !errors.Is(err, ErrInternal) {
			uc.logger.Warn("ApproveRequest: request=%d not approved: %v", req.RequestID, err)
		}
		return nil, err
	}

	uc.metrics.ObserveApproval(resultApproved)
	uc.metrics.AddBlocksCreated(string(domain.BlockScopeSpecific), len(result.Created))

	// 6. Уведомление публикуется после коммита и не влияет на результат
	if err := uc.notifier.PublishStatusChanged(ctx, notifier.NewRequestStatusEvent(approved, approved.UpdatedAt)); err != nil {
		uc.logger.Warn("ApproveRequest: failed to publish event for request=%d: %v", approved.ID, err)
	}

	uc.logger.Info("ApproveRequest: successfully approved request=%d, created %d blocks",
		approved.ID, len(result.Created))

	return buildResponse(approved, result, snapshot), nil
}

func (uc *UseCase) getRequest(ctx context.Context, id int64) (*domain.EventRequest, error) {
	req, err := uc.requestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, requestRepo.ErrRequestNotFound) {
			uc.logger.Warn("ApproveRequest: request id=%d not found", id)
			return nil, ErrRequestNotFound
		}
		uc.logger.Error("ApproveRequest: failed to get request id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get request: %v", ErrInternal, err)
	}
	return req, nil
}

func (uc *UseCase) checkManager(ctx context.Context, venueID, userID int64) error {
	venue, err := uc.venueRepo.GetByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			uc.logger.Warn("ApproveRequest: venue id=%d not found", venueID)
			return ErrVenueNotFound
		}
		uc.logger.Error("ApproveRequest: failed to get venue id=%d: %v", venueID, err)
		return fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	if !venue.IsManagedBy(userID) {
		uc.logger.Warn("ApproveRequest: user=%d is not a manager of venue=%d", userID, venueID)
		return ErrAccessDenied
	}
	return nil
}

func (uc *UseCase) releaseLock(ctx context.Context, release lock.Release) {
	if release == nil {
		return
	}
	if err := release(ctx); err != nil {
		uc.logger.Warn("ApproveRequest: failed to release lock: %v", err)
	}
}

func (uc *UseCase) observe(err error) {
	if errors.Is(err, ErrSlotNoLongerAvailable) {
		uc.metrics.ObserveApproval(resultUnavailable)
		return
	}
	uc.metrics.ObserveApproval(resultFailed)
}

// mapDomainError переводит ошибки доменного workflow в ошибки usecase
func mapDomainError(err error) error {
	switch {
	case errors.Is(err, domain.ErrSlotNoLongerAvailable):
		return fmt.Errorf("%w: %w", ErrSlotNoLongerAvailable, err)
	case errors.Is(err, domain.ErrInvalidTransition):
		return ErrAlreadyDecided
	case errors.Is(err, domain.ErrEmptyRange), errors.Is(err, domain.ErrInvalidHour):
		return fmt.Errorf("%w: stored request has invalid range: %v", ErrInternal, err)
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

func buildResponse(req *domain.EventRequest, result *domain.ApprovalResult, snapshot *domain.VenueAvailability) *Response {
	created := make([]uuid.UUID, 0, len(result.Created))
	for _, b := range result.Created {
		created = append(created, b.ID)
	}

	resp := &Response{
		ID:              req.ID,
		VenueID:         req.VenueID,
		ArtistID:        req.ArtistID,
		Date:            req.Date,
		StartHour:       req.StartHour,
		EndHour:         req.EndHour,
		Status:          string(req.Status),
		BlockedHours:    req.Hours(),
		CreatedBlockIDs: created,
		RemainingHours:  snapshot.Resolver().BookableHours(req.Date),
	}
	if req.DecidedBy != nil {
		resp.DecidedBy = *req.DecidedBy
	}
	if req.DecidedAt != nil {
		resp.DecidedAt = *req.DecidedAt
	}
	return resp
}
