package submit_request

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-VenueService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.VenueID <= 0 {
		return fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if len(req.Hours) == 0 {
		return fmt.Errorf("%w: at least one hour must be selected", ErrInvalidInput)
	}

	if err := validateText("title", req.Title, domain.MaxRequestTitleLength); err != nil {
		return err
	}

	return validateText("notes", req.Notes, domain.MaxRequestNotesLength)
}

// validateDate проверяет, что дата мероприятия не раньше текущего дня
func validateDate(date, now time.Time) error {
	today := domain.DateOnly(now.UTC())
	if domain.DateOnly(date).Before(today) {
		return fmt.Errorf("%w: date=%s, today=%s", ErrDateInPast, domain.DateKey(date), domain.DateKey(today))
	}
	return nil
}

func validateText(field string, value *string, maxLen int) error {
	if value == nil {
		return nil
	}
	if utf8.RuneCountInString(strings.TrimSpace(*value)) > maxLen {
		return fmt.Errorf("%w: %s must be at most %d characters", ErrInvalidInput, field, maxLen)
	}
	return nil
}

// normalizeText обрезает пробелы, пустую строку превращает в nil
func normalizeText(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
