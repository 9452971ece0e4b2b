package clear_override

import (
	"context"
	"time"
)

type AvailabilityService interface {
	ClearOverride(ctx context.Context, venueID, userID int64, date time.Time) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
