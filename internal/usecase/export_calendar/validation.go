package export_calendar

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-VenueService/internal/domain"
)

const defaultWindowDays = 90

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.VenueID <= 0 {
		return fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}
	return nil
}

// resolveWindow подставляет границы окна по умолчанию и проверяет его длину
func resolveWindow(req *Request, now time.Time) (time.Time, time.Time, error) {
	from := domain.DateOnly(now.UTC())
	if req.From != nil {
		from = domain.DateOnly(*req.From)
	}

	to := from.AddDate(0, 0, defaultWindowDays)
	if req.To != nil {
		to = domain.DateOnly(*req.To)
	}

	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: to=%s is before from=%s",
			ErrInvalidRange, domain.DateKey(to), domain.DateKey(from))
	}
	if to.Sub(from) > domain.MaxOverrideRangeDays*24*time.Hour {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: window is longer than %d days",
			ErrInvalidRange, domain.MaxOverrideRangeDays)
	}
	return from, to, nil
}
