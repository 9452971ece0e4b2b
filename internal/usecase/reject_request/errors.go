package reject_request

import "errors"

var (
	// ErrRequestNotFound возвращается, когда заявка не найдена
	ErrRequestNotFound = errors.New("reject_request: request not found")

	// ErrVenueNotFound возвращается, когда площадка заявки не найдена
	ErrVenueNotFound = errors.New("reject_request: venue not found")

	// ErrAccessDenied возвращается, когда пользователь не менеджер площадки
	ErrAccessDenied = errors.New("reject_request: access denied")

	// ErrAlreadyDecided возвращается, когда заявка уже одобрена или отклонена
	ErrAlreadyDecided = errors.New("reject_request: request already decided")

	// ErrMissingReason возвращается, когда причина отклонения пустая
	ErrMissingReason = errors.New("reject_request: rejection reason is required")

	// ErrReasonTooLong возвращается, когда причина длиннее допустимого
	ErrReasonTooLong = errors.New("reject_request: rejection reason is too long")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reject_request: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reject_request: internal error")
)
