package submit_request

import (
	"time"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	submitRequest "github.com/m04kA/SMC-VenueService/internal/usecase/submit_request"
)

// SubmitRequestRequest HTTP request model
type SubmitRequestRequest struct {
	VenueID int64   `json:"venueId" validate:"required,gt=0"`
	Date    string  `json:"date" validate:"required,datetime=2006-01-02"` // "2025-06-02"
	Hours   []int   `json:"hours" validate:"required,min=1,dive,min=0,max=23"`
	Title   *string `json:"title,omitempty"`
	Notes   *string `json:"notes,omitempty"`
}

// EventRequestResponse HTTP response model
type EventRequestResponse struct {
	ID        int64   `json:"id"`
	VenueID   int64   `json:"venueId"`
	ArtistID  int64   `json:"artistId"`
	Date      string  `json:"date"`
	StartHour int     `json:"startHour"`
	EndHour   int     `json:"endHour"`
	Status    string  `json:"status"`
	Title     *string `json:"title,omitempty"`
	Notes     *string `json:"notes,omitempty"`
	CreatedAt string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SubmitRequestRequest) ToUseCaseRequest(userID int64) (*submitRequest.Request, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	return &submitRequest.Request{
		UserID:  userID,
		VenueID: r.VenueID,
		Date:    date,
		Hours:   r.Hours,
		Title:   r.Title,
		Notes:   r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *submitRequest.Response) *EventRequestResponse {
	return &EventRequestResponse{
		ID:        resp.ID,
		VenueID:   resp.VenueID,
		ArtistID:  resp.ArtistID,
		Date:      domain.DateKey(resp.Date),
		StartHour: resp.StartHour,
		EndHour:   resp.EndHour,
		Status:    resp.Status,
		Title:     resp.Title,
		Notes:     resp.Notes,
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
	}
}
