package validate_selection

import (
	"github.com/m04kA/SMC-VenueService/internal/domain"
	validateSelection "github.com/m04kA/SMC-VenueService/internal/usecase/validate_selection"
)

// ValidateSelectionRequest HTTP request model
type ValidateSelectionRequest struct {
	Date   string `json:"date" validate:"required,datetime=2006-01-02"`
	Hours  []int  `json:"hours" validate:"dive,min=0,max=23"`
	Toggle *int   `json:"toggle,omitempty" validate:"omitempty,min=0,max=23"`
}

// SelectionResponse HTTP response model
type SelectionResponse struct {
	VenueID   int64  `json:"venueId"`
	Date      string `json:"date"`
	Hours     []int  `json:"hours"`
	StartHour *int   `json:"startHour,omitempty"`
	EndHour   *int   `json:"endHour,omitempty"`
	Empty     bool   `json:"empty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ValidateSelectionRequest) ToUseCaseRequest(venueID int64) (*validateSelection.Request, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	return &validateSelection.Request{
		VenueID: venueID,
		Date:    date,
		Hours:   r.Hours,
		Toggle:  r.Toggle,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *validateSelection.Response) *SelectionResponse {
	out := &SelectionResponse{
		VenueID: resp.VenueID,
		Date:    domain.DateKey(resp.Date),
		Hours:   resp.Hours,
		Empty:   resp.Empty,
	}
	if out.Hours == nil {
		out.Hours = []int{}
	}
	if !resp.Empty {
		start, end := resp.StartHour, resp.EndHour
		out.StartHour = &start
		out.EndHour = &end
	}
	return out
}
