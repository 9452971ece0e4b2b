package get_venue_requests

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-VenueService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueService/internal/api/middleware"
	"github.com/m04kA/SMC-VenueService/internal/service/requests"
	"github.com/m04kA/SMC-VenueService/internal/service/requests/models"
)

const (
	msgInvalidVenueID = "некорректный ID площадки"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgInvalidStatus  = "некорректный статус заявки"
	msgVenueNotFound  = "площадка не найдена"
	msgForbidden      = "доступ запрещен"
)

type Handler struct {
	service RequestService
	logger  Logger
}

func NewHandler(service RequestService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/venues/{venueId}/event-requests
// Query params: status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	venueID, err := handlers.PathID(r, "venueId")
	if err != nil {
		h.logger.Warn("GET /venues/{id}/event-requests - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /venues/{id}/event-requests - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Сервис сам проверит права менеджера
	result, err := h.service.GetVenueRequests(r.Context(), &models.GetVenueRequestsRequest{
		UserID:  userID,
		VenueID: venueID,
		Status:  handlers.QueryString(r, "status"),
	})
	if err != nil {
		switch {
		case errors.Is(err, requests.ErrVenueNotFound):
			h.logger.Warn("GET /venues/{id}/event-requests - Venue not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, requests.ErrAccessDenied):
			h.logger.Warn("GET /venues/{id}/event-requests - Access denied: venue_id=%d, user_id=%d", venueID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, requests.ErrInvalidInput):
			h.logger.Warn("GET /venues/{id}/event-requests - Invalid status: venue_id=%d, error=%v", venueID, err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /venues/{id}/event-requests - Failed to get requests: venue_id=%d, error=%v",
				venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /venues/{id}/event-requests - Requests retrieved: venue_id=%d, count=%d",
		venueID, len(result.Requests))
	handlers.RespondJSON(w, http.StatusOK, result.Requests)
}
