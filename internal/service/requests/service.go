package requests

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	requestRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/eventrequest"
	venueRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/venue"
	"github.com/m04kA/SMC-VenueService/internal/service/requests/models"
)

// Service сервис чтения заявок на мероприятия
type Service struct {
	requestRepo RequestRepository
	venueRepo   VenueRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса заявок
func NewService(
	requestRepo RequestRepository,
	venueRepo VenueRepository,
	logger Logger,
) *Service {
	return &Service{
		requestRepo: requestRepo,
		venueRepo:   venueRepo,
		logger:      logger,
	}
}

// GetByID получает заявку по ID
// Заявку видят артист, который её подал, и менеджер площадки
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.EventRequestResponse, error) {
	s.logger.Info("GetByID: fetching request id=%d for user=%d", id, userID)

	req, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, requestRepo.ErrRequestNotFound) {
			s.logger.Warn("GetByID: request id=%d not found", id)
			return nil, ErrRequestNotFound
		}
		s.logger.Error("GetByID: repository error for request id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Артист-владелец заявки проходит без обращения к площадке
	if req.ArtistID == userID {
		return models.FromDomainRequest(req), nil
	}

	venue, err := s.getVenue(ctx, req.VenueID)
	if err != nil {
		return nil, err
	}

	if !req.IsAccessibleBy(userID, venue) {
		s.logger.Warn("GetByID: access denied for user=%d to request id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched request id=%d", id)
	return models.FromDomainRequest(req), nil
}

// GetArtistRequests получает заявки артиста
// Опционально фильтрует по статусу
func (s *Service) GetArtistRequests(ctx context.Context, req *models.GetArtistRequestsRequest) (*models.EventRequestListResponse, error) {
	s.logger.Info("GetArtistRequests: fetching requests for artist=%d, status=%v", req.ArtistID, req.Status)

	status, err := toStatusFilter(req.Status)
	if err != nil {
		s.logger.Warn("GetArtistRequests: invalid status=%s for artist=%d", *req.Status, req.ArtistID)
		return nil, err
	}

	list, err := s.requestRepo.GetByArtist(ctx, req.ArtistID, status)
	if err != nil {
		s.logger.Error("GetArtistRequests: repository error for artist=%d: %v", req.ArtistID, err)
		return nil, fmt.Errorf("%w: GetArtistRequests - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetArtistRequests: successfully fetched %d requests for artist=%d", len(list), req.ArtistID)
	return models.FromDomainRequestList(list), nil
}

// GetVenueRequests получает заявки площадки
// Доступно только менеджеру площадки
func (s *Service) GetVenueRequests(ctx context.Context, req *models.GetVenueRequestsRequest) (*models.EventRequestListResponse, error) {
	s.logger.Info("GetVenueRequests: fetching requests for venue=%d by user=%d, status=%v", req.VenueID, req.UserID, req.Status)

	venue, err := s.getVenue(ctx, req.VenueID)
	if err != nil {
		return nil, err
	}
	if !venue.IsManagedBy(req.UserID) {
		s.logger.Warn("GetVenueRequests: user=%d is not a manager of venue=%d", req.UserID, req.VenueID)
		return nil, ErrAccessDenied
	}

	status, err := toStatusFilter(req.Status)
	if err != nil {
		s.logger.Warn("GetVenueRequests: invalid status=%s for venue=%d", *req.Status, req.VenueID)
		return nil, err
	}

	list, err := s.requestRepo.GetByVenue(ctx, req.VenueID, status)
	if err != nil {
		s.logger.Error("GetVenueRequests: repository error for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: GetVenueRequests - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetVenueRequests: successfully fetched %d requests for venue=%d", len(list), req.VenueID)
	return models.FromDomainRequestList(list), nil
}

// Вспомогательные методы

func (s *Service) getVenue(ctx context.Context, venueID int64) (*domain.Venue, error) {
	venue, err := s.venueRepo.GetByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			s.logger.Warn("getVenue: venue id=%d not found", venueID)
			return nil, ErrVenueNotFound
		}
		s.logger.Error("getVenue: failed to get venue id=%d: %v", venueID, err)
		return nil, fmt.Errorf("%w: getVenue - repository error: %v", ErrInternal, err)
	}
	return venue, nil
}

func toStatusFilter(status *string) (*domain.RequestStatus, error) {
	if status == nil {
		return nil, nil
	}
	s, err := models.ToDomainRequestStatus(*status)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}
	return &s, nil
}
