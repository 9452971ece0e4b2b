package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	monday   = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	tuesday  = time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
	nextMon  = time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
	venueOne = int64(1)
)

func newMondayVenue(t *testing.T) *VenueAvailability {
	t.Helper()
	avail := NewVenueAvailability(venueOne)
	require.NoError(t, avail.Template.SetWeekdayHours(time.Monday, 9, 10, 11, 12))
	return avail
}

func TestWeekdayOf(t *testing.T) {
	assert.Equal(t, time.Monday, WeekdayOf(monday))
	assert.Equal(t, time.Sunday, WeekdayOf(time.Date(2025, 6, 8, 23, 59, 0, 0, time.UTC)))

	// Calendar day is taken in the instant's own location
	loc := time.FixedZone("UTC+3", 3*60*60)
	assert.Equal(t, time.Tuesday, WeekdayOf(time.Date(2025, 6, 3, 1, 0, 0, 0, loc)))
}

func TestHoursInDay(t *testing.T) {
	hours := HoursInDay()
	require.Len(t, hours, 24)
	assert.Equal(t, 0, hours[0])
	assert.Equal(t, 23, hours[23])
}

func TestSlotResolver_BookableHours_Template(t *testing.T) {
	avail := newMondayVenue(t)

	assert.Equal(t, []int{9, 10, 11, 12}, avail.Resolver().BookableHours(monday))
	assert.Equal(t, []int{}, avail.Resolver().BookableHours(tuesday), "unconfigured weekday is closed")
}

func TestSlotResolver_OverridePrecedence(t *testing.T) {
	tests := []struct {
		name     string
		override []int
		expected []int
	}{
		{name: "override replaces template", override: []int{14, 15}, expected: []int{14, 15}},
		{name: "empty override closes the day", override: []int{}, expected: []int{}},
		{name: "override may widen hours", override: []int{8, 9, 10, 11, 12, 13}, expected: []int{8, 9, 10, 11, 12, 13}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			avail := newMondayVenue(t)
			require.NoError(t, avail.Overrides.SetOverride(monday, tt.override...))

			hours, source := avail.Resolver().OpenHours(monday)
			assert.Equal(t, SourceOverride, source)
			assert.Equal(t, tt.expected, hours.Sorted())
			assert.Equal(t, tt.expected, avail.Resolver().BookableHours(monday))

			// Other Mondays still follow the template
			assert.Equal(t, []int{9, 10, 11, 12}, avail.Resolver().BookableHours(nextMon))
		})
	}
}

func TestSlotResolver_ClearOverrideRevertsToTemplate(t *testing.T) {
	avail := newMondayVenue(t)
	require.NoError(t, avail.Overrides.SetOverride(monday))

	assert.True(t, avail.Overrides.ClearOverride(monday))
	assert.False(t, avail.Overrides.ClearOverride(monday))
	assert.Equal(t, []int{9, 10, 11, 12}, avail.Resolver().BookableHours(monday))
}

func TestSlotResolver_RecurringBlockAppliesToEveryMatchingWeekday(t *testing.T) {
	avail := newMondayVenue(t)
	block, created, err := avail.Blocks.AddRecurringBlock(time.Monday, 10)
	require.NoError(t, err)
	require.True(t, created)

	for _, d := range []time.Time{monday, nextMon, monday.AddDate(0, 0, 28)} {
		assert.Equal(t, []int{9, 11, 12}, avail.Resolver().BookableHours(d), d.Format(DateFormat))
	}

	_, err = avail.Blocks.RemoveBlock(block.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{9, 10, 11, 12}, avail.Resolver().BookableHours(nextMon))
}

func TestSlotResolver_SpecificAndRecurringBothBlock(t *testing.T) {
	avail := newMondayVenue(t)
	_, _, err := avail.Blocks.AddRecurringBlock(time.Monday, 9)
	require.NoError(t, err)
	_, _, err = avail.Blocks.AddSpecificBlock(monday, 12)
	require.NoError(t, err)
	// Same hour blocked both ways still counts once
	_, _, err = avail.Blocks.AddSpecificBlock(monday, 9)
	require.NoError(t, err)

	assert.Equal(t, []int{10, 11}, avail.Resolver().BookableHours(monday))
	assert.Equal(t, []int{10, 11, 12}, avail.Resolver().BookableHours(nextMon))
}

func TestSlotResolver_BlocksOutsideOpenHoursAreIgnored(t *testing.T) {
	avail := newMondayVenue(t)
	_, _, err := avail.Blocks.AddSpecificBlock(monday, 20)
	require.NoError(t, err)

	assert.Equal(t, []int{9, 10, 11, 12}, avail.Resolver().BookableHours(monday))
}

func TestSlotResolver_ValidateContiguousRange(t *testing.T) {
	avail := NewVenueAvailability(venueOne)
	require.NoError(t, avail.Template.SetWeekdayHours(time.Monday, 9, 10, 11, 13, 14))

	tests := []struct {
		name      string
		start     int
		end       int
		expectErr error
	}{
		{name: "single hour", start: 9, end: 10},
		{name: "three hours", start: 9, end: 12},
		{name: "empty range", start: 10, end: 10, expectErr: ErrEmptyRange},
		{name: "reversed range", start: 12, end: 9, expectErr: ErrEmptyRange},
		{name: "crosses closed hour", start: 11, end: 14, expectErr: ErrHourNotBookable},
		{name: "closed hour", start: 12, end: 13, expectErr: ErrHourNotBookable},
		{name: "out of grid", start: 23, end: 25, expectErr: ErrInvalidHour},
		{name: "afternoon block", start: 13, end: 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := avail.Resolver().ValidateContiguousRange(monday, tt.start, tt.end)
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSlotResolver_ValidateSelection(t *testing.T) {
	avail := NewVenueAvailability(venueOne)
	require.NoError(t, avail.Template.SetWeekdayHours(time.Monday, 9, 10, 11, 13, 14))

	start, end, err := avail.Resolver().ValidateSelection(monday, []int{11, 9, 10})
	require.NoError(t, err)
	assert.Equal(t, 9, start)
	assert.Equal(t, 12, end)

	_, _, err = avail.Resolver().ValidateSelection(monday, []int{9, 13})
	assert.ErrorIs(t, err, ErrNotConsecutive)

	_, _, err = avail.Resolver().ValidateSelection(monday, nil)
	assert.ErrorIs(t, err, ErrEmptyRange)
}

func TestAvailabilityTemplate_InvalidHourLeavesStateUntouched(t *testing.T) {
	tmpl := NewAvailabilityTemplate()
	require.NoError(t, tmpl.SetWeekdayHours(time.Friday, 18, 19))

	err := tmpl.SetWeekdayHours(time.Friday, 20, 24)
	assert.ErrorIs(t, err, ErrInvalidHour)
	assert.Equal(t, []int{18, 19}, tmpl.HoursFor(time.Friday).Sorted())

	err = tmpl.SetWeekdayHours(time.Weekday(7), 10)
	assert.ErrorIs(t, err, ErrInvalidWeekday)

	assert.ErrorIs(t, tmpl.SetWeekdayHours(time.Friday, -1), ErrInvalidHour)
}

func TestAvailabilityOverrideStore_InvalidHour(t *testing.T) {
	store := NewAvailabilityOverrideStore()
	assert.ErrorIs(t, store.SetOverride(monday, 9, 30), ErrInvalidHour)

	_, ok := store.OverrideFor(monday)
	assert.False(t, ok)
}
