package notifier

import (
	"time"

	"github.com/m04kA/SMC-VenueService/internal/domain"
)

// RequestStatusEvent событие об изменении статуса заявки
type RequestStatusEvent struct {
	RequestID       int64     `json:"requestId"`
	VenueID         int64     `json:"venueId"`
	ArtistID        int64     `json:"artistId"`
	Date            string    `json:"date"`
	StartHour       int       `json:"startHour"`
	EndHour         int       `json:"endHour"`
	Status          string    `json:"status"`
	RejectionReason *string   `json:"rejectionReason,omitempty"`
	DecidedBy       *int64    `json:"decidedBy,omitempty"`
	OccurredAt      time.Time `json:"occurredAt"`
}

// NewRequestStatusEvent собирает событие из заявки
func NewRequestStatusEvent(req *domain.EventRequest, at time.Time) RequestStatusEvent {
	return RequestStatusEvent{
		RequestID:       req.ID,
		VenueID:         req.VenueID,
		ArtistID:        req.ArtistID,
		Date:            domain.DateKey(req.Date),
		StartHour:       req.StartHour,
		EndHour:         req.EndHour,
		Status:          string(req.Status),
		RejectionReason: req.RejectionReason,
		DecidedBy:       req.DecidedBy,
		OccurredAt:      at,
	}
}

// RoutingKey ключ маршрутизации в topic exchange, например event_request.approved
func (e RequestStatusEvent) RoutingKey() string {
	return "event_request." + e.Status
}
