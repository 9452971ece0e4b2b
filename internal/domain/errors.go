package domain

import "errors"

// Engine error taxonomy. Every error here is an expected, recoverable condition.
var (
	// ErrInvalidHour is returned for an hour outside [0,23] (or a range bound outside [0,24])
	ErrInvalidHour = errors.New("domain: hour must be within 0..23")

	// ErrInvalidWeekday is returned for a weekday outside Sunday..Saturday
	ErrInvalidWeekday = errors.New("domain: weekday must be within 0..6")

	// ErrBlockNotFound is returned when removing a block that does not exist
	ErrBlockNotFound = errors.New("domain: blocked slot not found")

	// ErrEmptyRange is returned when endHour <= startHour or no hours are selected
	ErrEmptyRange = errors.New("domain: empty hour range")

	// ErrNotConsecutive is returned when a selection skips an hour or drops a middle hour
	ErrNotConsecutive = errors.New("domain: selected hours are not consecutive")

	// ErrHourNotBookable is returned when an hour in the range is closed or blocked
	ErrHourNotBookable = errors.New("domain: hour is not bookable")

	// ErrSlotNoLongerAvailable is returned when approval-time revalidation fails
	ErrSlotNoLongerAvailable = errors.New("domain: slot is no longer available")

	// ErrMissingReason is returned when a rejection has a blank reason
	ErrMissingReason = errors.New("domain: rejection reason is required")

	// ErrReasonTooLong is returned when a rejection reason exceeds MaxRejectionReasonLength
	ErrReasonTooLong = errors.New("domain: rejection reason is too long")

	// ErrInvalidTransition is returned when a decided request is approved or rejected again
	ErrInvalidTransition = errors.New("domain: event request is not pending")

	// ErrVenueMismatch is returned when a request is evaluated against another venue's availability
	ErrVenueMismatch = errors.New("domain: event request belongs to another venue")
)
