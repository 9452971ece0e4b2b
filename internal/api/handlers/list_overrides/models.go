package list_overrides

import (
	"time"

	"github.com/m04kA/SMC-VenueService/internal/service/availability/models"
)

// defaultRangeDays окно по умолчанию, если to не передан
const defaultRangeDays = 30

// ToServiceRequest собирает запрос к сервису из query параметров.
// Без from окно начинается сегодня, без to заканчивается через defaultRangeDays.
func ToServiceRequest(venueID, userID int64, from, to *time.Time, now time.Time) *models.ListOverridesRequest {
	start := now
	if from != nil {
		start = *from
	}
	end := start.AddDate(0, 0, defaultRangeDays)
	if to != nil {
		end = *to
	}

	return &models.ListOverridesRequest{
		UserID:  userID,
		VenueID: venueID,
		From:    start,
		To:      end,
	}
}
