package submit_request

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	venueRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/venue"
)

// UseCase use case для подачи заявки на мероприятие
type UseCase struct {
	requestRepo  RequestRepository
	venueRepo    VenueRepository
	availability AvailabilityLoader
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	requestRepo RequestRepository,
	venueRepo VenueRepository,
	availability AvailabilityLoader,
	logger Logger,
) *UseCase {
	return &UseCase{
		requestRepo:  requestRepo,
		venueRepo:    venueRepo,
		availability: availability,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case подачи заявки.
// Часы не резервируются: заявка лишь проверяется по текущей доступности,
// окончательная проверка выполняется при одобрении.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SubmitRequest: artist=%d, venue=%d, date=%s, hours=%v",
		req.UserID, req.VenueID, domain.DateKey(req.Date), req.Hours)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SubmitRequest: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата не должна быть в прошлом
	date := domain.DateOnly(req.Date)
	if err := validateDate(date, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("SubmitRequest: %v", err)
		return nil, err
	}

	// 3. Проверяем существование площадки
	if _, err := uc.venueRepo.GetByID(ctx, req.VenueID); err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			uc.logger.Warn("SubmitRequest: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("SubmitRequest: failed to get venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	// 4. Загружаем доступность площадки на дату
	avail, err := uc.availability.LoadForDate(ctx, req.VenueID, date)
	if err != nil {
		uc.logger.Error("SubmitRequest: failed to load availability venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to load availability: %v", ErrInternal, err)
	}

	// 5. Выбранные часы должны быть свободны и идти подряд
	start, end, err := avail.Resolver().ValidateSelection(date, req.Hours)
	if err != nil {
		uc.logger.Warn("SubmitRequest: selection %v rejected: %v", req.Hours, err)
		return nil, mapSelectionError(err)
	}

	// 6. Создаем заявку в статусе pending
	created, err := uc.requestRepo.Create(ctx, &domain.EventRequest{
		VenueID:   req.VenueID,
		ArtistID:  req.UserID,
		Date:      date,
		StartHour: start,
		EndHour:   end,
		Status:    domain.RequestStatusPending,
		Title:     normalizeText(req.Title),
		Notes:     normalizeText(req.Notes),
	})
	if err != nil {
		uc.logger.Error("SubmitRequest: failed to create request: %v", err)
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	uc.logger.Info("SubmitRequest: successfully created request id=%d for venue=%d, %s [%d,%d)",
		created.ID, created.VenueID, domain.DateKey(created.Date), created.StartHour, created.EndHour)

	return &Response{
		ID:        created.ID,
		VenueID:   created.VenueID,
		ArtistID:  created.ArtistID,
		Date:      created.Date,
		StartHour: created.StartHour,
		EndHour:   created.EndHour,
		Status:    string(created.Status),
		Title:     created.Title,
		Notes:     created.Notes,
		CreatedAt: created.CreatedAt,
	}, nil
}

func mapSelectionError(err error) error {
	switch {
	case errors.Is(err, domain.ErrNotConsecutive):
		return ErrNotConsecutive
	case errors.Is(err, domain.ErrHourNotBookable):
		return fmt.Errorf("%w: %v", ErrHourNotBookable, err)
	case errors.Is(err, domain.ErrInvalidHour), errors.Is(err, domain.ErrEmptyRange):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
