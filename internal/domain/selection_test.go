package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHourSelection_ExtendByAdjacentHours(t *testing.T) {
	var sel HourSelection
	require.NoError(t, sel.Toggle(9))
	require.NoError(t, sel.Toggle(10))
	require.NoError(t, sel.Toggle(11))

	start, end, ok := sel.Range()
	require.True(t, ok)
	assert.Equal(t, 9, start)
	assert.Equal(t, 12, end)
	assert.Equal(t, []int{9, 10, 11}, sel.Hours())

	// Extending downwards works too
	require.NoError(t, sel.Toggle(8))
	assert.Equal(t, 4, sel.Len())
}

func TestHourSelection_RejectsGap(t *testing.T) {
	var sel HourSelection
	require.NoError(t, sel.Toggle(9))

	err := sel.Toggle(13)
	assert.ErrorIs(t, err, ErrNotConsecutive)
	assert.Equal(t, []int{9}, sel.Hours(), "selection unchanged after a rejected toggle")
}

func TestHourSelection_RemoveEndsOnly(t *testing.T) {
	var sel HourSelection
	for _, h := range []int{9, 10, 11, 12} {
		require.NoError(t, sel.Toggle(h))
	}

	assert.ErrorIs(t, sel.Toggle(10), ErrNotConsecutive)
	assert.ErrorIs(t, sel.Toggle(11), ErrNotConsecutive)

	require.NoError(t, sel.Toggle(12))
	require.NoError(t, sel.Toggle(9))
	assert.Equal(t, []int{10, 11}, sel.Hours())

	require.NoError(t, sel.Toggle(10))
	require.NoError(t, sel.Toggle(11))
	assert.True(t, sel.IsEmpty())

	_, _, ok := sel.Range()
	assert.False(t, ok)

	// An emptied selection starts over anywhere
	require.NoError(t, sel.Toggle(20))
	assert.Equal(t, []int{20}, sel.Hours())
}

func TestHourSelection_InvalidHour(t *testing.T) {
	var sel HourSelection
	assert.ErrorIs(t, sel.Toggle(24), ErrInvalidHour)
	assert.True(t, sel.IsEmpty())
}

func TestContiguousRange(t *testing.T) {
	tests := []struct {
		name          string
		hours         []int
		expectedStart int
		expectedEnd   int
		expectErr     error
	}{
		{name: "ordered", hours: []int{9, 10, 11}, expectedStart: 9, expectedEnd: 12},
		{name: "unordered with duplicates", hours: []int{11, 9, 10, 10}, expectedStart: 9, expectedEnd: 12},
		{name: "single", hours: []int{23}, expectedStart: 23, expectedEnd: 24},
		{name: "gap", hours: []int{9, 13}, expectErr: ErrNotConsecutive},
		{name: "empty", hours: []int{}, expectErr: ErrEmptyRange},
		{name: "invalid", hours: []int{9, 24}, expectErr: ErrInvalidHour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := ContiguousRange(tt.hours)
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStart, start)
			assert.Equal(t, tt.expectedEnd, end)
		})
	}
}
