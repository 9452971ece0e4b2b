package validate_selection

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-VenueService/internal/api/handlers"
	validateSelection "github.com/m04kA/SMC-VenueService/internal/usecase/validate_selection"
)

const (
	msgInvalidVenueID     = "некорректный ID площадки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgVenueNotFound      = "площадка не найдена"
	msgEmptySelection     = "не выбрано ни одного часа"
	msgNotConsecutive     = "выбранные часы должны идти подряд"
	msgHourNotBookable    = "выбранный час недоступен для бронирования"
	msgInvalidData        = "некорректные данные выбора"
)

type Handler struct {
	useCase ValidateSelectionUseCase
	logger  Logger
}

func NewHandler(useCase ValidateSelectionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/venues/{venueId}/selections/validate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	venueID, err := handlers.PathID(r, "venueId")
	if err != nil {
		h.logger.Warn("POST /venues/{id}/selections/validate - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	var req ValidateSelectionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /venues/{id}/selections/validate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(venueID)
	if err != nil {
		h.logger.Warn("POST /venues/{id}/selections/validate - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, validateSelection.ErrVenueNotFound):
			h.logger.Warn("POST /venues/{id}/selections/validate - Venue not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, validateSelection.ErrEmptySelection):
			h.logger.Warn("POST /venues/{id}/selections/validate - Empty selection: venue_id=%d", venueID)
			handlers.RespondBadRequest(w, msgEmptySelection)

		case errors.Is(err, validateSelection.ErrNotConsecutive):
			h.logger.Warn("POST /venues/{id}/selections/validate - Not consecutive: venue_id=%d, hours=%v, toggle=%v",
				venueID, req.Hours, req.Toggle)
			handlers.RespondBadRequest(w, msgNotConsecutive)

		case errors.Is(err, validateSelection.ErrHourNotBookable):
			h.logger.Warn("POST /venues/{id}/selections/validate - Hour not bookable: venue_id=%d, error=%v",
				venueID, err)
			handlers.RespondConflict(w, msgHourNotBookable)

		case errors.Is(err, validateSelection.ErrInvalidInput):
			h.logger.Warn("POST /venues/{id}/selections/validate - Invalid data: venue_id=%d, error=%v", venueID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /venues/{id}/selections/validate - Failed to validate selection: venue_id=%d, error=%v",
				venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /venues/{id}/selections/validate - Selection valid: venue_id=%d, hours=%v",
		venueID, result.Hours)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
