package set_override

import (
	"time"

	"github.com/m04kA/SMC-VenueService/internal/service/availability/models"
)

// SetOverrideRequest HTTP request model.
// Пустой список часов закрывает площадку на дату.
type SetOverrideRequest struct {
	Hours []int `json:"hours" validate:"dive,min=0,max=23"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *SetOverrideRequest) ToServiceRequest(venueID, userID int64, date time.Time) *models.SetOverrideRequest {
	hours := r.Hours
	if hours == nil {
		hours = []int{}
	}
	return &models.SetOverrideRequest{
		UserID:  userID,
		VenueID: venueID,
		Date:    date,
		Hours:   hours,
	}
}
