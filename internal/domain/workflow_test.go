package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var decidedAt = time.Date(2025, 5, 30, 10, 0, 0, 0, time.UTC)

const managerID = int64(77)

func pendingRequest(start, end int) *EventRequest {
	return &EventRequest{
		ID:        100,
		VenueID:   venueOne,
		ArtistID:  5,
		Date:      monday,
		StartHour: start,
		EndHour:   end,
		Status:    RequestStatusPending,
	}
}

func TestApprove_EndToEnd(t *testing.T) {
	avail := newMondayVenue(t)
	assert.Equal(t, []int{9, 10, 11, 12}, avail.Resolver().BookableHours(monday))

	req := pendingRequest(10, 12)
	result, err := Approve(avail, req, managerID, decidedAt)
	require.NoError(t, err)

	require.Len(t, result.Created, 2)
	assert.Equal(t, 10, result.Created[0].Hour)
	assert.Equal(t, 11, result.Created[1].Hour)
	assert.Equal(t, BlockScopeSpecific, result.Created[0].Scope)

	assert.Equal(t, RequestStatusApproved, req.Status)
	require.NotNil(t, req.DecidedBy)
	assert.Equal(t, managerID, *req.DecidedBy)
	assert.Equal(t, []int{9, 12}, avail.Resolver().BookableHours(monday))
	assert.Equal(t, []int{9, 10, 11, 12}, avail.Resolver().BookableHours(nextMon))
}

func TestApprove_SlotNoLongerAvailable(t *testing.T) {
	avail := newMondayVenue(t)

	first := pendingRequest(10, 12)
	_, err := Approve(avail, first, managerID, decidedAt)
	require.NoError(t, err)

	second := pendingRequest(11, 13)
	second.ID = 101
	blocksBefore := avail.Blocks.Len()

	_, err = Approve(avail, second, managerID, decidedAt)
	assert.ErrorIs(t, err, ErrSlotNoLongerAvailable)
	assert.ErrorIs(t, err, ErrHourNotBookable)
	assert.Equal(t, RequestStatusPending, second.Status, "request untouched")
	assert.Equal(t, blocksBefore, avail.Blocks.Len(), "no partial blocks")
	assert.Equal(t, []int{9, 12}, avail.Resolver().BookableHours(monday))
}

func TestApprove_OverrideClosedSinceSubmission(t *testing.T) {
	avail := newMondayVenue(t)
	require.NoError(t, avail.Overrides.SetOverride(monday))

	_, err := Approve(avail, pendingRequest(9, 10), managerID, decidedAt)
	assert.ErrorIs(t, err, ErrSlotNoLongerAvailable)
	assert.Equal(t, 0, avail.Blocks.Len())
}

func TestApprove_InvalidTransitions(t *testing.T) {
	avail := newMondayVenue(t)
	req := pendingRequest(9, 10)
	_, err := Approve(avail, req, managerID, decidedAt)
	require.NoError(t, err)

	_, err = Approve(avail, req, managerID, decidedAt)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	assert.ErrorIs(t, Reject(req, "too late", managerID, decidedAt), ErrInvalidTransition)
	assert.Equal(t, RequestStatusApproved, req.Status)
}

func TestApprove_VenueMismatchAndEmptyRange(t *testing.T) {
	avail := newMondayVenue(t)

	other := pendingRequest(9, 10)
	other.VenueID = 2
	_, err := Approve(avail, other, managerID, decidedAt)
	assert.ErrorIs(t, err, ErrVenueMismatch)

	_, err = Approve(avail, pendingRequest(10, 10), managerID, decidedAt)
	assert.ErrorIs(t, err, ErrEmptyRange)
	assert.NotErrorIs(t, err, ErrSlotNoLongerAvailable)
}

func TestReject(t *testing.T) {
	avail := newMondayVenue(t)
	req := pendingRequest(10, 12)

	assert.ErrorIs(t, Reject(req, "", managerID, decidedAt), ErrMissingReason)
	assert.ErrorIs(t, Reject(req, "   \t", managerID, decidedAt), ErrMissingReason)
	assert.ErrorIs(t, Reject(req, strings.Repeat("x", MaxRejectionReasonLength+1), managerID, decidedAt), ErrReasonTooLong)
	assert.Equal(t, RequestStatusPending, req.Status)

	require.NoError(t, Reject(req, "  venue under maintenance ", managerID, decidedAt))
	assert.Equal(t, RequestStatusRejected, req.Status)
	require.NotNil(t, req.RejectionReason)
	assert.Equal(t, "venue under maintenance", *req.RejectionReason)

	assert.Equal(t, []int{9, 10, 11, 12}, avail.Resolver().BookableHours(monday))
	assert.Equal(t, 0, avail.Blocks.Len())

	_, err := Approve(avail, req, managerID, decidedAt)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestEventRequest_Times(t *testing.T) {
	req := pendingRequest(22, 24)
	assert.Equal(t, []int{22, 23}, req.Hours())
	assert.Equal(t, 2, req.DurationHours())
	assert.Equal(t, time.Date(2025, 6, 2, 22, 0, 0, 0, time.UTC), req.StartsAt())
	assert.Equal(t, time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC), req.EndsAt())
}
