package submit_request

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-VenueService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueService/internal/api/middleware"
	submitRequest "github.com/m04kA/SMC-VenueService/internal/usecase/submit_request"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgVenueNotFound      = "площадка не найдена"
	msgDateInPast         = "дата мероприятия уже прошла"
	msgNotConsecutive     = "выбранные часы должны идти подряд"
	msgHourNotBookable    = "выбранный час недоступен для бронирования"
	msgInvalidData        = "некорректные данные заявки"
)

type Handler struct {
	useCase SubmitRequestUseCase
	logger  Logger
}

func NewHandler(useCase SubmitRequestUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/event-requests
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /event-requests - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req SubmitRequestRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /event-requests - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /event-requests - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, submitRequest.ErrVenueNotFound):
			h.logger.Warn("POST /event-requests - Venue not found: venue_id=%d", req.VenueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, submitRequest.ErrDateInPast):
			h.logger.Warn("POST /event-requests - Date in past: user_id=%d, date=%s", userID, req.Date)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, submitRequest.ErrNotConsecutive):
			h.logger.Warn("POST /event-requests - Not consecutive: user_id=%d, hours=%v", userID, req.Hours)
			handlers.RespondBadRequest(w, msgNotConsecutive)

		case errors.Is(err, submitRequest.ErrHourNotBookable):
			h.logger.Warn("POST /event-requests - Hour not bookable: user_id=%d, venue_id=%d, error=%v",
				userID, req.VenueID, err)
			handlers.RespondConflict(w, msgHourNotBookable)

		case errors.Is(err, submitRequest.ErrInvalidInput):
			h.logger.Warn("POST /event-requests - Invalid data: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /event-requests - Failed to submit request: user_id=%d, venue_id=%d, error=%v",
				userID, req.VenueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /event-requests - Request submitted: request_id=%d, user_id=%d, venue_id=%d",
		result.ID, userID, req.VenueID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
