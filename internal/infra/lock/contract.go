package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-VenueService/internal/domain"
)

// Release снимает взятую блокировку
type Release func(ctx context.Context) error

// Locker сериализует одобрения заявок на одну и ту же пару (площадка, дата)
type Locker interface {
	Lock(ctx context.Context, venueID int64, date time.Time) (Release, error)
}

func lockName(venueID int64, date time.Time) string {
	return fmt.Sprintf("venue-slots:%d:%s", venueID, domain.DateKey(date))
}

func noopRelease(context.Context) error { return nil }
