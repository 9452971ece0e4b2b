package requests

import (
	"context"

	"github.com/m04kA/SMC-VenueService/internal/domain"
)

// RequestRepository интерфейс репозитория заявок
type RequestRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.EventRequest, error)
	GetByVenue(ctx context.Context, venueID int64, status *domain.RequestStatus) ([]*domain.EventRequest, error)
	GetByArtist(ctx context.Context, artistID int64, status *domain.RequestStatus) ([]*domain.EventRequest, error)
}

// VenueRepository интерфейс репозитория площадок
type VenueRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Venue, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
