package set_override

import (
	"context"

	"github.com/m04kA/SMC-VenueService/internal/service/availability/models"
)

type AvailabilityService interface {
	SetOverride(ctx context.Context, req *models.SetOverrideRequest) (*models.OverrideResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
