package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// ApprovalResult describes the side effects of an approval.
type ApprovalResult struct {
	// Created holds the blocks that did not exist before the approval.
	Created []BlockedSlot
	// Covered holds one block per approved hour, existing or new.
	Covered []BlockedSlot
}

// Approve re-validates req against the venue's current availability and, on
// success, blocks every hour of [StartHour, EndHour) as a specific block and
// moves req to Approved. Blocks are staged on a copy of the registry and swapped
// in only when every hour succeeded, so a failure leaves avail and req untouched.
func Approve(avail *VenueAvailability, req *EventRequest, decidedBy int64, at time.Time) (*ApprovalResult, error) {
	if req.VenueID != avail.VenueID {
		return nil, fmt.Errorf("%w: request venue=%d, availability venue=%d",
			ErrVenueMismatch, req.VenueID, avail.VenueID)
	}
	if !req.IsPending() {
		return nil, fmt.Errorf("%w: status=%s", ErrInvalidTransition, req.Status)
	}

	if err := avail.Resolver().ValidateContiguousRange(req.Date, req.StartHour, req.EndHour); err != nil {
		if errors.Is(err, ErrHourNotBookable) {
			return nil, fmt.Errorf("%w: %w", ErrSlotNoLongerAvailable, err)
		}
		return nil, err
	}

	staged := avail.Blocks.Clone()
	result := &ApprovalResult{
		Created: make([]BlockedSlot, 0, req.DurationHours()),
		Covered: make([]BlockedSlot, 0, req.DurationHours()),
	}
	for _, h := range req.Hours() {
		block, created, err := staged.AddSpecificBlock(req.Date, h)
		if err != nil {
			return nil, err
		}
		if created {
			result.Created = append(result.Created, block)
		}
		result.Covered = append(result.Covered, block)
	}

	avail.Blocks = staged

	decidedAt := at
	req.Status = RequestStatusApproved
	req.DecidedBy = &decidedBy
	req.DecidedAt = &decidedAt
	req.RejectionReason = nil
	req.UpdatedAt = at

	return result, nil
}

// Reject moves req to Rejected with reason. No blocks are touched.
func Reject(req *EventRequest, reason string, decidedBy int64, at time.Time) error {
	trimmed := strings.TrimSpace(reason)
	if trimmed == "" {
		return ErrMissingReason
	}
	if utf8.RuneCountInString(trimmed) > MaxRejectionReasonLength {
		return fmt.Errorf("%w: max %d characters", ErrReasonTooLong, MaxRejectionReasonLength)
	}
	if !req.IsPending() {
		return fmt.Errorf("%w: status=%s", ErrInvalidTransition, req.Status)
	}

	decidedAt := at
	req.Status = RequestStatusRejected
	req.RejectionReason = &trimmed
	req.DecidedBy = &decidedBy
	req.DecidedAt = &decidedAt
	req.UpdatedAt = at

	return nil
}
