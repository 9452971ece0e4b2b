package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-VenueService/internal/domain"
)

var (
	// ErrInvalidPathParam возвращается, когда параметр пути некорректен
	ErrInvalidPathParam = errors.New("handlers: invalid path parameter")

	// ErrInvalidQueryParam возвращается, когда query параметр некорректен
	ErrInvalidQueryParam = errors.New("handlers: invalid query parameter")
)

// PathID извлекает положительный int64 из параметра пути name
func PathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidPathParam, name, raw)
	}
	return id, nil
}

// PathDate извлекает дату YYYY-MM-DD из параметра пути name
func PathDate(r *http.Request, name string) (time.Time, error) {
	raw := mux.Vars(r)[name]
	date, err := domain.ParseDate(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s=%q", ErrInvalidPathParam, name, raw)
	}
	return date, nil
}

// QueryDate извлекает необязательную дату YYYY-MM-DD из query параметра name.
// Для отсутствующего параметра возвращает nil.
func QueryDate(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	date, err := domain.ParseDate(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s=%q", ErrInvalidQueryParam, name, raw)
	}
	return &date, nil
}

// QueryString извлекает необязательный строковый query параметр
func QueryString(r *http.Request, name string) *string {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	return &raw
}
