package availability

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-VenueService/internal/domain"
)

// VenueRepository интерфейс репозитория площадок
type VenueRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Venue, error)
}

// AvailabilityRepository интерфейс репозитория шаблона и переопределений
type AvailabilityRepository interface {
	GetTemplate(ctx context.Context, venueID int64) (*domain.AvailabilityTemplate, error)
	SaveWeekdayHours(ctx context.Context, venueID int64, days []domain.WeeklyHours) error
	GetOverride(ctx context.Context, venueID int64, date time.Time) (*domain.DateOverride, error)
	GetOverridesInRange(ctx context.Context, venueID int64, from, to time.Time) ([]domain.DateOverride, error)
	SaveOverride(ctx context.Context, venueID int64, override domain.DateOverride) error
	DeleteOverride(ctx context.Context, venueID int64, date time.Time) error
}

// BlockRepository интерфейс репозитория заблокированных слотов
type BlockRepository interface {
	GetForDate(ctx context.Context, venueID int64, date time.Time) ([]domain.BlockedSlot, error)
	GetAllByVenue(ctx context.Context, venueID int64) ([]domain.BlockedSlot, error)
	GetByID(ctx context.Context, venueID int64, id uuid.UUID) (*domain.BlockedSlot, error)
	FindByKey(ctx context.Context, probe domain.BlockedSlot) (*domain.BlockedSlot, error)
	Insert(ctx context.Context, blocks ...domain.BlockedSlot) (int64, error)
	Delete(ctx context.Context, venueID int64, id uuid.UUID) error
}

// MetricsCollector счетчики доменных событий (nil-safe реализация в pkg/metrics)
type MetricsCollector interface {
	AddBlocksCreated(scope string, n int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
