package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-VenueService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid request status")
)

// Request модели

// GetArtistRequestsRequest запрос на получение заявок артиста
type GetArtistRequestsRequest struct {
	ArtistID int64   `json:"artistId"`
	Status   *string `json:"status,omitempty"`
}

// GetVenueRequestsRequest запрос на получение заявок площадки (для менеджера)
type GetVenueRequestsRequest struct {
	UserID  int64   `json:"userId"`
	VenueID int64   `json:"venueId"`
	Status  *string `json:"status,omitempty"`
}

// Response модели

// EventRequestResponse ответ с данными заявки
type EventRequestResponse struct {
	ID        int64   `json:"id"`
	VenueID   int64   `json:"venueId"`
	ArtistID  int64   `json:"artistId"`
	Date      string  `json:"date"` // "2025-06-02"
	StartHour int     `json:"startHour"`
	EndHour   int     `json:"endHour"`
	Hours     []int   `json:"hours"`
	Status    string  `json:"status"`
	Title     *string `json:"title,omitempty"`
	Notes     *string `json:"notes,omitempty"`

	RejectionReason *string `json:"rejectionReason,omitempty"`
	DecidedBy       *int64  `json:"decidedBy,omitempty"`
	DecidedAt       *string `json:"decidedAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EventRequestListResponse ответ со списком заявок
type EventRequestListResponse struct {
	Requests []EventRequestResponse `json:"requests"`
}

// Методы конвертации

// FromDomainRequest конвертирует domain модель в DTO
func FromDomainRequest(r *domain.EventRequest) *EventRequestResponse {
	if r == nil {
		return nil
	}

	resp := &EventRequestResponse{
		ID:              r.ID,
		VenueID:         r.VenueID,
		ArtistID:        r.ArtistID,
		Date:            domain.DateKey(r.Date),
		StartHour:       r.StartHour,
		EndHour:         r.EndHour,
		Hours:           r.Hours(),
		Status:          string(r.Status),
		Title:           r.Title,
		Notes:           r.Notes,
		RejectionReason: r.RejectionReason,
		DecidedBy:       r.DecidedBy,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}

	if r.DecidedAt != nil {
		decidedStr := r.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &decidedStr
	}

	return resp
}

// FromDomainRequestList конвертирует список domain моделей в DTO
func FromDomainRequestList(requests []*domain.EventRequest) *EventRequestListResponse {
	resp := &EventRequestListResponse{
		Requests: make([]EventRequestResponse, 0, len(requests)),
	}

	for _, r := range requests {
		if item := FromDomainRequest(r); item != nil {
			resp.Requests = append(resp.Requests, *item)
		}
	}

	return resp
}

// ToDomainRequestStatus конвертирует строку в domain.RequestStatus с валидацией
func ToDomainRequestStatus(status string) (domain.RequestStatus, error) {
	s := domain.RequestStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
