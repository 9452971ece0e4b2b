package reject_request

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	requestRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/eventrequest"
	venueRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/venue"
	"github.com/m04kA/SMC-VenueService/internal/integrations/notifier"
	"github.com/m04kA/SMC-VenueService/pkg/ptr"
)

// UseCase use case для отклонения заявки менеджером площадки
type UseCase struct {
	requestRepo  RequestRepository
	venueRepo    VenueRepository
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
	txManager TransactionManager,
	notifier Notifier,
	metrics MetricsCollector,
	logger Logger,
) *UseCase {
	return &UseCase{
		requestRepo:  requestRepo,
		venueRepo:    venueRepo,
		txManager:    txManager,
		notifier:     notifier,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case отклонения заявки.
// Блокировки слотов не затрагиваются: часы заявки остаются свободными.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RejectRequest: request=%d, user=%d", req.RequestID, req.UserID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RejectRequest: validation failed: %v", err)
		return nil, err
	}

	var rejected *domain.EventRequest

	// 2. Решение сохраняем в транзакции под FOR UPDATE
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем заявку
		current, err := uc.requestRepo.GetByID(txCtx, req.RequestID)
		if err != nil {
			if errors.Is(err, requestRepo.ErrRequestNotFound) {
				uc.logger.Warn("RejectRequest: request id=%d not found", req.RequestID)
				return ErrRequestNotFound
			}
			uc.logger.Error("RejectRequest: failed to get request id=%d: %v", req.RequestID, err)
			return fmt.Errorf("%w: failed to get request: %w", ErrInternal, err)
		}

		// 2.2. Проверяем, что пользователь менеджер площадки
		venue, err := uc.venueRepo.GetByID(txCtx, current.VenueID)
		if err != nil {
			if errors.Is(err, venueRepo.ErrVenueNotFound) {
				uc.logger.Warn("RejectRequest: venue id=%d not found", current.VenueID)
				return ErrVenueNotFound
			}
			uc.logger.Error("RejectRequest: failed to get venue id=%d: %v", current.VenueID, err)
			return fmt.Errorf("%w: failed to get venue: %w", ErrInternal, err)
		}
		if !venue.IsManagedBy(req.UserID) {
			uc.logger.Warn("RejectRequest: user=%d is not a manager of venue=%d", req.UserID, venue.ID)
			return ErrAccessDenied
		}

		// 2.3. Переход pending -> rejected
		if err := domain.Reject(current, req.Reason, req.UserID, uc.timeProvider.Now().UTC()); err != nil {
			return mapDomainError(err)
		}

		// 2.4. Сохраняем решение, только если заявка ещё pending
		if err := uc.requestRepo.UpdateDecision(txCtx, current); err != nil {
			if errors.Is(err, requestRepo.ErrRequestNotPending) {
				return ErrAlreadyDecided
			}
			uc.logger.Error("RejectRequest: failed to update request=%d: %v", req.RequestID, err)
			return fmt.Errorf("%w: failed to update request: %w", ErrInternal, err)
		}

		rejected = current
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrAlreadyDecided) {
			uc.logger.Warn("RejectRequest: request=%d already decided", req.RequestID)
		}
		return nil, err
	}

	uc.metrics.ObserveRejection()

	// 3. Уведомление публикуется после коммита и не влияет на результат
	if err := uc.notifier.PublishStatusChanged(ctx, notifier.NewRequestStatusEvent(rejected, rejected.UpdatedAt)); err != nil {
		uc.logger.Warn("RejectRequest: failed to publish event for request=%d: %v", rejected.ID, err)
	}

	uc.logger.Info("RejectRequest: successfully rejected request=%d", rejected.ID)

	return &Response{
		ID:              rejected.ID,
		VenueID:         rejected.VenueID,
		ArtistID:        rejected.ArtistID,
		Date:            rejected.Date,
		StartHour:       rejected.StartHour,
		EndHour:         rejected.EndHour,
		Status:          string(rejected.Status),
		RejectionReason: ptr.Value(rejected.RejectionReason),
		DecidedBy:       ptr.Value(rejected.DecidedBy),
		DecidedAt:       ptr.Value(rejected.DecidedAt),
	}, nil
}

func mapDomainError(err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidTransition):
		return ErrAlreadyDecided
	case errors.Is(err, domain.ErrMissingReason):
		return ErrMissingReason
	case errors.Is(err, domain.ErrReasonTooLong):
		return fmt.Errorf("%w: %v", ErrReasonTooLong, err)
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
