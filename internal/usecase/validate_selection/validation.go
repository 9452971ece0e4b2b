package validate_selection

import (
	"fmt"

	"github.com/m04kA/SMC-VenueService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.VenueID <= 0 {
		return fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if len(req.Hours) == 0 && req.Toggle == nil {
		return ErrEmptySelection
	}

	for _, h := range req.Hours {
		if err := domain.ValidateHour(h); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	if req.Toggle != nil {
		if err := domain.ValidateHour(*req.Toggle); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	return nil
}

// buildSelection нормализует текущий выбор и применяет к нему toggle
func buildSelection(hours []int, toggle *int) (*domain.HourSelection, error) {
	sel := &domain.HourSelection{}
	if len(hours) > 0 {
		start, end, err := domain.ContiguousRange(hours)
		if err != nil {
			return nil, err
		}
		for h := start; h < end; h++ {
			if err := sel.Toggle(h); err != nil {
				return nil, err
			}
		}
	}
	if toggle != nil {
		if err := sel.Toggle(*toggle); err != nil {
			return nil, err
		}
	}
	return sel, nil
}
