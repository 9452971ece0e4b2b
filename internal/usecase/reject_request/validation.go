package reject_request

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-VenueService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.RequestID <= 0 {
		return fmt.Errorf("%w: requestID must be positive", ErrInvalidInput)
	}

	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return ErrMissingReason
	}
	if utf8.RuneCountInString(reason) > domain.MaxRejectionReasonLength {
		return fmt.Errorf("%w: max %d characters", ErrReasonTooLong, domain.MaxRejectionReasonLength)
	}

	return nil
}
