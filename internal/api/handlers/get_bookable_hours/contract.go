package get_bookable_hours

import (
	"context"

	getBookableHours "github.com/m04kA/SMC-VenueService/internal/usecase/get_bookable_hours"
)

type GetBookableHoursUseCase interface {
	Execute(ctx context.Context, req *getBookableHours.Request) (*getBookableHours.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
