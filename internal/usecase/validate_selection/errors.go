package validate_selection

import "errors"

var (
	// ErrVenueNotFound возвращается, когда площадка не найдена
	ErrVenueNotFound = errors.New("validate_selection: venue not found")

	// ErrEmptySelection возвращается, когда не выбрано ни одного часа
	ErrEmptySelection = errors.New("validate_selection: no hours selected")

	// ErrNotConsecutive возвращается, когда выбор пропускает час или убирает час из середины
	ErrNotConsecutive = errors.New("validate_selection: selected hours are not consecutive")

	// ErrHourNotBookable возвращается, когда выбранный час закрыт или заблокирован
	ErrHourNotBookable = errors.New("validate_selection: selected hour is not bookable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("validate_selection: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("validate_selection: internal error")
)
