package reject_request

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-VenueService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueService/internal/api/middleware"
	rejectRequest "github.com/m04kA/SMC-VenueService/internal/usecase/reject_request"
)

const (
	msgInvalidRequestID   = "некорректный ID заявки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "заявка не найдена"
	msgVenueNotFound      = "площадка не найдена"
	msgForbidden          = "доступ запрещен"
	msgAlreadyDecided     = "заявка уже рассмотрена"
	msgMissingReason      = "укажите причину отклонения"
	msgReasonTooLong      = "причина отклонения слишком длинная"
)

type Handler struct {
	useCase RejectRequestUseCase
	logger  Logger
}

func NewHandler(useCase RejectRequestUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/event-requests/{requestId}/reject
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requestID, err := handlers.PathID(r, "requestId")
	if err != nil {
		h.logger.Warn("POST /event-requests/{id}/reject - Invalid request ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /event-requests/{id}/reject - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req RejectRequestRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /event-requests/{id}/reject - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(requestID, userID))
	if err != nil {
		switch {
		case errors.Is(err, rejectRequest.ErrRequestNotFound):
			h.logger.Warn("POST /event-requests/{id}/reject - Request not found: request_id=%d", requestID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rejectRequest.ErrVenueNotFound):
			h.logger.Warn("POST /event-requests/{id}/reject - Venue not found: request_id=%d", requestID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, rejectRequest.ErrAccessDenied):
			h.logger.Warn("POST /event-requests/{id}/reject - Access denied: request_id=%d, user_id=%d",
				requestID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rejectRequest.ErrAlreadyDecided):
			h.logger.Warn("POST /event-requests/{id}/reject - Already decided: request_id=%d", requestID)
			handlers.RespondConflict(w, msgAlreadyDecided)

		case errors.Is(err, rejectRequest.ErrMissingReason):
			h.logger.Warn("POST /event-requests/{id}/reject - Missing reason: request_id=%d", requestID)
			handlers.RespondBadRequest(w, msgMissingReason)

		case errors.Is(err, rejectRequest.ErrReasonTooLong):
			h.logger.Warn("POST /event-requests/{id}/reject - Reason too long: request_id=%d", requestID)
			handlers.RespondBadRequest(w, msgReasonTooLong)

		case errors.Is(err, rejectRequest.ErrInvalidInput):
			h.logger.Warn("POST /event-requests/{id}/reject - Invalid input: request_id=%d, error=%v", requestID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestID)

		default:
			h.logger.Error("POST /event-requests/{id}/reject - Failed to reject request: request_id=%d, error=%v",
				requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /event-requests/{id}/reject - Request rejected: request_id=%d, user_id=%d", requestID, userID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
