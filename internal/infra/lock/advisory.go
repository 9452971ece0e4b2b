package lock

import (
	"context"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/m04kA/SMC-VenueService/pkg/dbmetrics"
)

// AdvisoryLocker блокировка через pg_advisory_xact_lock.
// Блокировка живет до конца текущей транзакции, поэтому Release ничего не делает.
type AdvisoryLocker struct{}

// NewAdvisoryLocker создает блокировщик на advisory locks PostgreSQL
func NewAdvisoryLocker() *AdvisoryLocker {
	return &AdvisoryLocker{}
}

// Lock берет транзакционную advisory-блокировку для (venueID, date).
// Транзакция должна быть открыта через txmanager и лежать в контексте.
func (l *AdvisoryLocker) Lock(ctx context.Context, venueID int64, date time.Time) (Release, error) {
	if !dbmetrics.IsInTransaction(ctx) {
		return nil, ErrNoTransaction
	}

	executor := dbmetrics.GetExecutor(ctx, nil)
	if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", advisoryKey(venueID, date)); err != nil {
		return nil, fmt.Errorf("%w: advisory venue=%d date=%s: %w", ErrAcquire, venueID, date.Format("2006-01-02"), err)
	}

	return noopRelease, nil
}

// advisoryKey сворачивает имя блокировки в bigint для pg_advisory_xact_lock
func advisoryKey(venueID int64, date time.Time) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(lockName(venueID, date)))
	return int64(h.Sum64())
}
