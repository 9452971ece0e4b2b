package remove_block

import (
	"context"

	"github.com/google/uuid"
)

type AvailabilityService interface {
	RemoveBlock(ctx context.Context, venueID, userID int64, blockID uuid.UUID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
