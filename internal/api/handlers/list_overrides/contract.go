package list_overrides

import (
	"context"

	"github.com/m04kA/SMC-VenueService/internal/service/availability/models"
)

type AvailabilityService interface {
	ListOverrides(ctx context.Context, req *models.ListOverridesRequest) (*models.OverrideListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
