package get_bookable_hours

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-VenueService/internal/api/handlers"
	getBookableHours "github.com/m04kA/SMC-VenueService/internal/usecase/get_bookable_hours"
)

const (
	msgInvalidVenueID = "некорректный ID площадки"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingDate    = "параметр date обязателен"
	msgVenueNotFound  = "площадка не найдена"
)

type Handler struct {
	useCase GetBookableHoursUseCase
	logger  Logger
}

func NewHandler(useCase GetBookableHoursUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/venues/{venueId}/bookable-hours?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	venueID, err := handlers.PathID(r, "venueId")
	if err != nil {
		h.logger.Warn("GET /venues/{id}/bookable-hours - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		h.logger.Warn("GET /venues/{id}/bookable-hours - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	if date == nil {
		h.logger.Warn("GET /venues/{id}/bookable-hours - Missing date: venue_id=%d", venueID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getBookableHours.Request{
		VenueID: venueID,
		Date:    *date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getBookableHours.ErrVenueNotFound):
			h.logger.Warn("GET /venues/{id}/bookable-hours - Venue not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, getBookableHours.ErrInvalidInput):
			h.logger.Warn("GET /venues/{id}/bookable-hours - Invalid input: venue_id=%d, error=%v", venueID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /venues/{id}/bookable-hours - Failed to resolve hours: venue_id=%d, error=%v",
				venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /venues/{id}/bookable-hours - Hours resolved: venue_id=%d, date=%s, count=%d",
		venueID, r.URL.Query().Get("date"), len(result.Hours))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
