package approve_request

import "errors"

var (
	// ErrRequestNotFound возвращается, когда заявка не найдена
	ErrRequestNotFound = errors.New("approve_request: request not found")

	// ErrVenueNotFound возвращается, когда площадка заявки не найдена
	ErrVenueNotFound = errors.New("approve_request: venue not found")

	// ErrAccessDenied возвращается, когда пользователь не менеджер площадки
	ErrAccessDenied = errors.New("approve_request: access denied")

	// ErrAlreadyDecided возвращается, когда заявка уже одобрена или отклонена
	ErrAlreadyDecided = errors.New("approve_request: request already decided")

	// ErrSlotNoLongerAvailable возвращается, когда часы заявки больше не свободны
	ErrSlotNoLongerAvailable = errors.New("approve_request: slot no longer available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("approve_request: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("approve_request: internal error")
)
