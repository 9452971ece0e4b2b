package export_calendar

import (
	"context"
	"time"

	"github.com/m04kA/SMC-VenueService/internal/domain"
)

// VenueRepository интерфейс репозитория площадок
type VenueRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Venue, error)
}

// RequestRepository интерфейс репозитория заявок
type RequestRepository interface {
	GetApprovedInRange(ctx context.Context, venueID int64, from, to time.Time) ([]*domain.EventRequest, error)
}

// BlockRepository интерфейс репозитория заблокированных слотов
type BlockRepository interface {
	GetRecurringByVenue(ctx context.Context, venueID int64) ([]domain.BlockedSlot, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
