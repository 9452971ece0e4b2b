package submit_request

import "errors"

var (
	// ErrVenueNotFound возвращается, когда площадка не найдена
	ErrVenueNotFound = errors.New("submit_request: venue not found")

	// ErrDateInPast возвращается, когда дата мероприятия уже прошла
	ErrDateInPast = errors.New("submit_request: event date is in the past")

	// ErrNotConsecutive возвращается, когда выбранные часы идут не подряд
	ErrNotConsecutive = errors.New("submit_request: selected hours are not consecutive")

	// ErrHourNotBookable возвращается, когда выбранный час закрыт или заблокирован
	ErrHourNotBookable = errors.New("submit_request: selected hour is not bookable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("submit_request: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("submit_request: internal error")
)
