package reject_request

import (
	"time"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	rejectRequest "github.com/m04kA/SMC-VenueService/internal/usecase/reject_request"
)

// RejectRequestRequest HTTP request model.
// Пустая причина проверяется в use case, чтобы вернуть осмысленную ошибку.
type RejectRequestRequest struct {
	Reason string `json:"reason"`
}

// RejectionResponse HTTP response model
type RejectionResponse struct {
	ID              int64  `json:"id"`
	VenueID         int64  `json:"venueId"`
	ArtistID        int64  `json:"artistId"`
	Date            string `json:"date"`
	StartHour       int    `json:"startHour"`
	EndHour         int    `json:"endHour"`
	Status          string `json:"status"`
	RejectionReason string `json:"rejectionReason"`
	DecidedBy       int64  `json:"decidedBy"`
	DecidedAt       string `json:"decidedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RejectRequestRequest) ToUseCaseRequest(requestID, userID int64) *rejectRequest.Request {
	return &rejectRequest.Request{
		RequestID: requestID,
		UserID:    userID,
		Reason:    r.Reason,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *rejectRequest.Response) *RejectionResponse {
	return &RejectionResponse{
		ID:              resp.ID,
		VenueID:         resp.VenueID,
		ArtistID:        resp.ArtistID,
		Date:            domain.DateKey(resp.Date),
		StartHour:       resp.StartHour,
		EndHour:         resp.EndHour,
		Status:          resp.Status,
		RejectionReason: resp.RejectionReason,
		DecidedBy:       resp.DecidedBy,
		DecidedAt:       resp.DecidedAt.Format(time.RFC3339),
	}
}
