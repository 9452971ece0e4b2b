package validate_selection

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	venueRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/venue"
)

// UseCase use case для пошаговой проверки выбора часов
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

// Execute выполняет use case проверки выбора.
// Выбор можно расширять или сужать только на один час с любого края.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ValidateSelection: venue=%d, date=%s, hours=%v", req.VenueID, domain.DateKey(req.Date), req.Hours)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ValidateSelection: validation failed: %v", err)
		return nil, err
	}
	date := domain.DateOnly(req.Date)

	// 2. Собираем выбор и применяем toggle
	sel, err := buildSelection(req.Hours, req.Toggle)
	if err != nil {
		uc.logger.Warn("ValidateSelection: selection rejected: %v", err)
		return nil, mapDomainError(err)
	}

	resp := &Response{
		VenueID: req.VenueID,
		Date:    date,
		Hours:   sel.Hours(),
	}

	// Снятие последнего часа дает пустой, но корректный выбор
	start, end, ok := sel.Range()
	if !ok {
		resp.Empty = true
		return resp, nil
	}

	// 3. Проверяем существование площадки
	if _, err := uc.venueRepo.GetByID(ctx, req.VenueID); err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			uc.logger.Warn("ValidateSelection: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("ValidateSelection: failed to get venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	// 4. Все часы выбора должны быть свободны
	avail, err := uc.availability.LoadForDate(ctx, req.VenueID, date)
	if err != nil {
		uc.logger.Error("ValidateSelection: failed to load availability venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to load availability: %v", ErrInternal, err)
	}

	if err := avail.Resolver().ValidateContiguousRange(date, start, end); err != nil {
		uc.logger.Warn("ValidateSelection: range [%d,%d) rejected: %v", start, end, err)
		return nil, mapDomainError(err)
	}

	resp.StartHour = start
	resp.EndHour = end
	return resp, nil
}

func mapDomainError(err error) error {
	switch {
	case errors.Is(err, domain.ErrNotConsecutive):
		return fmt.Errorf("%w: %v", ErrNotConsecutive, err)
	case errors.Is(err, domain.ErrHourNotBookable):
		return fmt.Errorf("%w: %v", ErrHourNotBookable, err)
	case errors.Is(err, domain.ErrEmptyRange):
		return ErrEmptySelection
	case errors.Is(err, domain.ErrInvalidHour):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
