package approve_request

import (
	"context"
	"time"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	"github.com/m04kA/SMC-VenueService/internal/infra/lock"
	"github.com/m04kA/SMC-VenueService/internal/integrations/notifier"
)

// RequestRepository интерфейс репозитория заявок
type RequestRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.EventRequest, error)
	UpdateDecision(ctx context.Context, req *domain.EventRequest) error
}

// VenueRepository интерфейс репозитория площадок
type VenueRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Venue, error)
}

// BlockRepository интерфейс репозитория заблокированных слотов
type BlockRepository interface {
	Insert(ctx context.Context, blocks ...domain.BlockedSlot) (int64, error)
}

// AvailabilityLoader собирает снимок доступности площадки на дату
type AvailabilityLoader interface {
	LoadForDate(ctx context.Context, venueID int64, date time.Time) (*domain.VenueAvailability, error)
}

// Locker сериализует одобрения по паре (площадка, дата)
type Locker interface {
	Lock(ctx context.Context, venueID int64, date time.Time) (lock.Release, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier публикует события о смене статуса заявки
type Notifier interface {
	PublishStatusChanged(ctx context.Context, event notifier.RequestStatusEvent) error
}

// MetricsCollector счетчики результатов одобрения
type MetricsCollector interface {
	ObserveApproval(result string)
	AddBlocksCreated(scope string, n int)
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
