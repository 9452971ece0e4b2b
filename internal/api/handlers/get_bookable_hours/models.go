package get_bookable_hours

import (
	"github.com/m04kA/SMC-VenueService/internal/domain"
	getBookableHours "github.com/m04kA/SMC-VenueService/internal/usecase/get_bookable_hours"
)

// BookableHoursResponse HTTP response model
type BookableHoursResponse struct {
	VenueID      int64  `json:"venueId"`
	Date         string `json:"date"`
	Hours        []int  `json:"hours"`
	OpenHours    []int  `json:"openHours"`
	BlockedHours []int  `json:"blockedHours"`
	Source       string `json:"source"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *getBookableHours.Response) *BookableHoursResponse {
	return &BookableHoursResponse{
		VenueID:      resp.VenueID,
		Date:         domain.DateKey(resp.Date),
		Hours:        nonNil(resp.Hours),
		OpenHours:    nonNil(resp.OpenHours),
		BlockedHours: nonNil(resp.BlockedHours),
		Source:       resp.Source,
	}
}

// nonNil гарантирует сериализацию пустого списка как []
func nonNil(hours []int) []int {
	if hours == nil {
		return []int{}
	}
	return hours
}
