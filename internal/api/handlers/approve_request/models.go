package approve_request

import (
	"time"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	approveRequest "github.com/m04kA/SMC-VenueService/internal/usecase/approve_request"
)

// ApprovalResponse HTTP response model
type ApprovalResponse struct {
	ID              int64    `json:"id"`
	VenueID         int64    `json:"venueId"`
	ArtistID        int64    `json:"artistId"`
	Date            string   `json:"date"`
	StartHour       int      `json:"startHour"`
	EndHour         int      `json:"endHour"`
	Status          string   `json:"status"`
	DecidedBy       int64    `json:"decidedBy"`
	DecidedAt       string   `json:"decidedAt"`
	BlockedHours    []int    `json:"blockedHours"`
	CreatedBlockIDs []string `json:"createdBlockIds"`
	RemainingHours  []int    `json:"remainingHours"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *approveRequest.Response) *ApprovalResponse {
	ids := make([]string, 0, len(resp.CreatedBlockIDs))
	for _, id := range resp.CreatedBlockIDs {
		ids = append(ids, id.String())
	}

	remaining := resp.RemainingHours
	if remaining == nil {
		remaining = []int{}
	}

	return &ApprovalResponse{
		ID:              resp.ID,
		VenueID:         resp.VenueID,
		ArtistID:        resp.ArtistID,
		Date:            domain.DateKey(resp.Date),
		StartHour:       resp.StartHour,
		EndHour:         resp.EndHour,
		Status:          resp.Status,
		DecidedBy:       resp.DecidedBy,
		DecidedAt:       resp.DecidedAt.Format(time.RFC3339),
		BlockedHours:    resp.BlockedHours,
		CreatedBlockIDs: ids,
		RemainingHours:  remaining,
	}
}
