package get_venue_requests

import (
	"context"

	"github.com/m04kA/SMC-VenueService/internal/service/requests/models"
)

type RequestService interface {
	GetVenueRequests(ctx context.Context, req *models.GetVenueRequestsRequest) (*models.EventRequestListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
