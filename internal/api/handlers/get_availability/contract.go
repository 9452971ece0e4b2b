package get_availability

import (
	"context"

	"github.com/m04kA/SMC-VenueService/internal/service/availability/models"
)

type AvailabilityService interface {
	GetTemplate(ctx context.Context, venueID, userID int64) (*models.TemplateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
