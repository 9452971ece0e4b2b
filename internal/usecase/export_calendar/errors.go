package export_calendar

import "errors"

var (
	// ErrVenueNotFound возвращается, когда площадка не найдена
	ErrVenueNotFound = errors.New("export_calendar: venue not found")

	// ErrInvalidRange возвращается, когда окно экспорта некорректно
	ErrInvalidRange = errors.New("export_calendar: invalid date range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("export_calendar: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("export_calendar: internal error")
)
