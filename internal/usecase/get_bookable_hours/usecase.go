package get_bookable_hours

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	venueRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/venue"
)

// UseCase use case для получения свободных часов площадки на дату
type UseCase struct {
	venueRepo    VenueRepository
	availability AvailabilityLoader
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(venueRepo VenueRepository, availability AvailabilityLoader, logger Logger) *UseCase {
	return &UseCase{
		venueRepo:    venueRepo,
		availability: availability,
		logger:       logger,
	}
}

// Execute выполняет use case получения свободных часов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetBookableHours: venue=%d, date=%s", req.VenueID, domain.DateKey(req.Date))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetBookableHours: validation failed: %v", err)
		return nil, err
	}
	date := domain.DateOnly(req.Date)

	// 2. Проверяем существование площадки
	if _, err := uc.venueRepo.GetByID(ctx, req.VenueID); err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			uc.logger.Warn("GetBookableHours: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("GetBookableHours: failed to get venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	// 3. Загружаем доступность площадки на дату
	avail, err := uc.availability.LoadForDate(ctx, req.VenueID, date)
	if err != nil {
		uc.logger.Error("GetBookableHours: failed to load availability venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to load availability: %v", ErrInternal, err)
	}

	// 4. Свободные часы = часы работы минус блокировки
	resolver := avail.Resolver()
	open, source := resolver.OpenHours(date)
	bookable := resolver.BookableSet(date)

	uc.logger.Info("GetBookableHours: venue=%d, date=%s: %d of %d open hours bookable",
		req.VenueID, domain.DateKey(date), bookable.Len(), open.Len())

	return &Response{
		VenueID:      req.VenueID,
		Date:         date,
		Hours:        bookable.Sorted(),
		OpenHours:    open.Sorted(),
		Source:       string(source),
		BlockedHours: open.Minus(bookable).Sorted(),
	}, nil
}
