package approve_request

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-VenueService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueService/internal/api/middleware"
	approveRequest "github.com/m04kA/SMC-VenueService/internal/usecase/approve_request"
)

const (
	msgInvalidRequestID = "некорректный ID заявки"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgNotFound         = "заявка не найдена"
	msgVenueNotFound    = "площадка не найдена"
	msgForbidden        = "доступ запрещен"
	msgAlreadyDecided   = "заявка уже рассмотрена"
	msgSlotUnavailable  = "часы заявки больше не свободны"
)

type Handler struct {
	useCase ApproveRequestUseCase
	logger  Logger
}

func NewHandler(useCase ApproveRequestUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/event-requests/{requestId}/approve
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requestID, err := handlers.PathID(r, "requestId")
	if err != nil {
		h.logger.Warn("POST /event-requests/{id}/approve - Invalid request ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /event-requests/{id}/approve - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &approveRequest.Request{
		RequestID: requestID,
		UserID:    userID,
	})
	if err != nil {
		switch {
		case errors.Is(err, approveRequest.ErrRequestNotFound):
			h.logger.Warn("POST /event-requests/{id}/approve - Request not found: request_id=%d", requestID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, approveRequest.ErrVenueNotFound):
			h.logger.Warn("POST /event-requests/{id}/approve - Venue not found: request_id=%d", requestID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, approveRequest.ErrAccessDenied):
			h.logger.Warn("POST /event-requests/{id}/approve - Access denied: request_id=%d, user_id=%d",
				requestID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, approveRequest.ErrSlotNoLongerAvailable):
			h.logger.Warn("POST /event-requests/{id}/approve - Slot no longer available: request_id=%d, error=%v",
				requestID, err)
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, approveRequest.ErrAlreadyDecided):
			h.logger.Warn("POST /event-requests/{id}/approve - Already decided: request_id=%d", requestID)
			handlers.RespondConflict(w, msgAlreadyDecided)

		case errors.Is(err, approveRequest.ErrInvalidInput):
			h.logger.Warn("POST /event-requests/{id}/approve - Invalid input: request_id=%d, error=%v", requestID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestID)

		default:
			h.logger.Error("POST /event-requests/{id}/approve - Failed to approve request: request_id=%d, error=%v",
				requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /event-requests/{id}/approve - Request approved: request_id=%d, user_id=%d, blocked_hours=%v",
		requestID, userID, result.BlockedHours)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
