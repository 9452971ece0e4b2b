package update_availability

import (
	"github.com/m04kA/SMC-VenueService/internal/service/availability/models"
)

// UpdateAvailabilityRequest HTTP request model
type UpdateAvailabilityRequest struct {
	Days []DayHours `json:"days" validate:"required,min=1,max=7,dive"`
}

// DayHours часы работы на день недели (0 = воскресенье)
type DayHours struct {
	Weekday *int  `json:"weekday" validate:"required,min=0,max=6"`
	Hours   []int `json:"hours" validate:"dive,min=0,max=23"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateAvailabilityRequest) ToServiceRequest(venueID, userID int64) *models.UpdateTemplateRequest {
	days := make([]models.WeekdayHours, 0, len(r.Days))
	for _, d := range r.Days {
		hours := d.Hours
		if hours == nil {
			hours = []int{}
		}
		days = append(days, models.WeekdayHours{Weekday: *d.Weekday, Hours: hours})
	}

	return &models.UpdateTemplateRequest{
		UserID:  userID,
		VenueID: venueID,
		Days:    days,
	}
}
