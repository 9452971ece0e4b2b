package clear_override

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-VenueService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueService/internal/api/middleware"
	"github.com/m04kA/SMC-VenueService/internal/domain"
	"github.com/m04kA/SMC-VenueService/internal/service/availability"
)

const (
	msgInvalidVenueID   = "некорректный ID площадки"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgVenueNotFound    = "площадка не найдена"
	msgOverrideNotFound = "переопределение на дату не найдено"
	msgForbidden        = "доступ запрещен"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/venues/{venueId}/overrides/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	venueID, err := handlers.PathID(r, "venueId")
	if err != nil {
		h.logger.Warn("DELETE /venues/{id}/overrides/{date} - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	date, err := handlers.PathDate(r, "date")
	if err != nil {
		h.logger.Warn("DELETE /venues/{id}/overrides/{date} - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /venues/{id}/overrides/{date} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.ClearOverride(r.Context(), venueID, userID, date); err != nil {
		switch {
		case errors.Is(err, availability.ErrVenueNotFound):
			h.logger.Warn("DELETE /venues/{id}/overrides/{date} - Venue not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, availability.ErrOverrideNotFound):
			h.logger.Warn("DELETE /venues/{id}/overrides/{date} - Override not found: venue_id=%d, date=%s",
				venueID, domain.DateKey(date))
			handlers.RespondNotFound(w, msgOverrideNotFound)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("DELETE /venues/{id}/overrides/{date} - Access denied: venue_id=%d, user_id=%d",
				venueID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /venues/{id}/overrides/{date} - Failed to clear override: venue_id=%d, error=%v",
				venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /venues/{id}/overrides/{date} - Override cleared: venue_id=%d, date=%s",
		venueID, domain.DateKey(date))
	handlers.RespondNoContent(w)
}
