package domain

import "time"

// RequestStatus represents the status of an event request
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// IsValid returns true for a known status
func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestStatusPending, RequestStatusApproved, RequestStatusRejected:
		return true
	}
	return false
}

// Venue represents a cultural space registered by a manager
type Venue struct {
	ID        int64
	Name      string
	ManagerID int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsManagedBy returns true if userID is the venue's manager
func (v *Venue) IsManagedBy(userID int64) bool {
	return v.ManagerID == userID
}

// EventRequest is an artist's request to book hours [StartHour, EndHour) of a venue on Date
type EventRequest struct {
	ID        int64
	VenueID   int64
	ArtistID  int64
	Date      time.Time
	StartHour int
	EndHour   int
	Status    RequestStatus

	Title *string
	Notes *string

	RejectionReason *string
	DecidedBy       *int64
	DecidedAt       *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPending returns true if the request has not been decided yet
func (r *EventRequest) IsPending() bool {
	return r.Status == RequestStatusPending
}

// Hours returns every hour covered by the request
func (r *EventRequest) Hours() []int {
	if r.EndHour <= r.StartHour {
		return []int{}
	}
	hours := make([]int, 0, r.EndHour-r.StartHour)
	for h := r.StartHour; h < r.EndHour; h++ {
		hours = append(hours, h)
	}
	return hours
}

// DurationHours returns the number of requested hours
func (r *EventRequest) DurationHours() int {
	if r.EndHour <= r.StartHour {
		return 0
	}
	return r.EndHour - r.StartHour
}

// StartsAt returns the start of the event as an instant on the venue calendar
func (r *EventRequest) StartsAt() time.Time {
	return DateOnly(r.Date).Add(time.Duration(r.StartHour) * time.Hour)
}

// EndsAt returns the end of the event as an instant on the venue calendar
func (r *EventRequest) EndsAt() time.Time {
	return DateOnly(r.Date).Add(time.Duration(r.EndHour) * time.Hour)
}

// IsAccessibleBy returns true if userID is the requesting artist or the venue's manager
func (r *EventRequest) IsAccessibleBy(userID int64, venue *Venue) bool {
	if r.ArtistID == userID {
		return true
	}
	return venue != nil && venue.ID == r.VenueID && venue.IsManagedBy(userID)
}
