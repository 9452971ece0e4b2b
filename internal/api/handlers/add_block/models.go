package add_block

import (
	"time"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	"github.com/m04kA/SMC-VenueService/internal/service/availability/models"
)

// AddBlockRequest HTTP request model.
// Для scope = recurring нужен weekday, для scope = specific нужна date.
type AddBlockRequest struct {
	Scope   string  `json:"scope" validate:"required,oneof=recurring specific"`
	Weekday *int    `json:"weekday,omitempty" validate:"omitempty,min=0,max=6"`
	Date    *string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Hour    *int    `json:"hour" validate:"required,min=0,max=23"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *AddBlockRequest) ToServiceRequest(venueID, userID int64) (*models.AddBlockRequest, error) {
	req := &models.AddBlockRequest{
		UserID:  userID,
		VenueID: venueID,
		Scope:   r.Scope,
		Weekday: r.Weekday,
		Hour:    *r.Hour,
	}

	if r.Date != nil {
		date, err := domain.ParseDate(*r.Date)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	return req, nil
}

// dateOrNil нужен только для логов
func dateOrNil(d *time.Time) string {
	if d == nil {
		return "-"
	}
	return domain.DateKey(*d)
}
