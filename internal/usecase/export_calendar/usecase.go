package export_calendar

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	venueRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/venue"
)

// UseCase use case для экспорта календаря площадки в формате iCalendar
type UseCase struct {
	venueRepo    VenueRepository
	requestRepo  RequestRepository
	blockRepo    BlockRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	venueRepo VenueRepository,
	requestRepo RequestRepository,
	blockRepo BlockRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		venueRepo:    venueRepo,
		requestRepo:  requestRepo,
		blockRepo:    blockRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case экспорта: одобренные заявки в окне
// и повторяющиеся блокировки как еженедельные события
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ExportCalendar: venue=%d", req.VenueID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ExportCalendar: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	from, to, err := resolveWindow(req, now)
	if err != nil {
		uc.logger.Warn("ExportCalendar: %v", err)
		return nil, err
	}

	// 2. Получаем площадку
	venue, err := uc.venueRepo.GetByID(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			uc.logger.Warn("ExportCalendar: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("ExportCalendar: failed to get venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	// 3. Получаем одобренные заявки в окне
	approved, err := uc.requestRepo.GetApprovedInRange(ctx, venue.ID, from, to)
	if err != nil {
		uc.logger.Error("ExportCalendar: failed to get approved requests venue=%d: %v", venue.ID, err)
		return nil, fmt.Errorf("%w: failed to get approved requests: %v", ErrInternal, err)
	}

	// 4. Получаем повторяющиеся блокировки
	recurring, err := uc.blockRepo.GetRecurringByVenue(ctx, venue.ID)
	if err != nil {
		uc.logger.Error("ExportCalendar: failed to get recurring blocks venue=%d: %v", venue.ID, err)
		return nil, fmt.Errorf("%w: failed to get recurring blocks: %v", ErrInternal, err)
	}

	// 5. Собираем календарь
	builder := newCalendarBuilder(venue, now)
	for _, r := range approved {
		builder.addRequest(r)
	}

	recurringCount := 0
	for _, block := range recurring {
		added, err := builder.addRecurringBlock(block, from, to)
		if err != nil {
			uc.logger.Error("ExportCalendar: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		if added {
			recurringCount++
		}
	}

	uc.logger.Info("ExportCalendar: venue=%d, %s..%s: %d events, %d recurring blocks",
		venue.ID, domain.DateKey(from), domain.DateKey(to), len(approved), recurringCount)

	return &Response{
		VenueID:        venue.ID,
		From:           from,
		To:             to,
		Body:           builder.serialize(),
		Filename:       fmt.Sprintf("venue-%d.ics", venue.ID),
		EventCount:     len(approved),
		RecurringCount: recurringCount,
	}, nil
}
