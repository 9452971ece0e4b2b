package get_bookable_hours

import (
	"context"
	"time"

	"github.com/m04kA/SMC-VenueService/internal/domain"
)

// VenueRepository интерфейс репозитория площадок
type VenueRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Venue, error)
}

// AvailabilityLoader собирает снимок доступности площадки на дату
type AvailabilityLoader interface {
	LoadForDate(ctx context.Context, venueID int64, date time.Time) (*domain.VenueAvailability, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
