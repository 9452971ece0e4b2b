package export_calendar

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-VenueService/internal/api/handlers"
	exportCalendar "github.com/m04kA/SMC-VenueService/internal/usecase/export_calendar"
)

const (
	msgInvalidVenueID = "некорректный ID площадки"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRange   = "некорректный диапазон дат"
	msgVenueNotFound  = "площадка не найдена"
)

const contentTypeCalendar = "text/calendar; charset=utf-8"

type Handler struct {
	useCase ExportCalendarUseCase
	logger  Logger
}

func NewHandler(useCase ExportCalendarUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/venues/{venueId}/calendar.ics
// Query params: from, to (опционально, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	venueID, err := handlers.PathID(r, "venueId")
	if err != nil {
		h.logger.Warn("GET /venues/{id}/calendar.ics - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	from, err := handlers.QueryDate(r, "from")
	if err != nil {
		h.logger.Warn("GET /venues/{id}/calendar.ics - Invalid from: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	to, err := handlers.QueryDate(r, "to")
	if err != nil {
		h.logger.Warn("GET /venues/{id}/calendar.ics - Invalid to: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &exportCalendar.Request{
		VenueID: venueID,
		From:    from,
		To:      to,
	})
	if err != nil {
		switch {
		case errors.Is(err, exportCalendar.ErrVenueNotFound):
			h.logger.Warn("GET /venues/{id}/calendar.ics - Venue not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, exportCalendar.ErrInvalidRange), errors.Is(err, exportCalendar.ErrInvalidInput):
			h.logger.Warn("GET /venues/{id}/calendar.ics - Invalid range: venue_id=%d, error=%v", venueID, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /venues/{id}/calendar.ics - Failed to export calendar: venue_id=%d, error=%v",
				venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /venues/{id}/calendar.ics - Calendar exported: venue_id=%d, events=%d, recurring=%d",
		venueID, result.EventCount, result.RecurringCount)

	w.Header().Set("Content-Type", contentTypeCalendar)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(result.Body))
}
