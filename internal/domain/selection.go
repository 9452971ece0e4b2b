package domain

import "fmt"

// HourSelection is a multi-hour pick built one hour at a time. It only grows
// or shrinks at its ends, so it is always a contiguous range [start, end).
// The zero value is an empty selection.
type HourSelection struct {
	start int
	end   int
}

// Toggle adds or removes hour. Allowed moves: extend either end by exactly one
// hour, or drop an end hour. Anything else fails with ErrNotConsecutive and
// leaves the selection unchanged.
func (s *HourSelection) Toggle(hour int) error {
	if err := ValidateHour(hour); err != nil {
		return err
	}

	switch {
	case s.IsEmpty():
		s.start, s.end = hour, hour+1
	case hour == s.start-1:
		s.start--
	case hour == s.end:
		s.end++
	case hour == s.start:
		s.start++
	case hour == s.end-1:
		s.end--
	case hour > s.start && hour < s.end-1:
		return fmt.Errorf("%w: cannot drop %02d:00 from the middle of %02d:00-%02d:00",
			ErrNotConsecutive, hour, s.start, s.end)
	default:
		return fmt.Errorf("%w: %02d:00 is not adjacent to %02d:00-%02d:00",
			ErrNotConsecutive, hour, s.start, s.end)
	}

	if s.start >= s.end {
		s.Clear()
	}
	return nil
}

func (s *HourSelection) Clear() {
	s.start, s.end = 0, 0
}

func (s HourSelection) IsEmpty() bool {
	return s.end <= s.start
}

func (s HourSelection) Len() int {
	if s.IsEmpty() {
		return 0
	}
	return s.end - s.start
}

// Range returns [start, end); ok is false for an empty selection.
func (s HourSelection) Range() (start, end int, ok bool) {
	if s.IsEmpty() {
		return 0, 0, false
	}
	return s.start, s.end, true
}

// Hours returns the selected hours in order.
func (s HourSelection) Hours() []int {
	out := make([]int, 0, s.Len())
	for h := s.start; h < s.end; h++ {
		out = append(out, h)
	}
	return out
}

// ContiguousRange normalizes picked hours into [start, end). Duplicates are
// ignored; a gap fails with ErrNotConsecutive.
func ContiguousRange(hours []int) (int, int, error) {
	if len(hours) == 0 {
		return 0, 0, ErrEmptyRange
	}

	set, err := NewHourSet(hours...)
	if err != nil {
		return 0, 0, err
	}
	sorted := set.Sorted()

	for i := 1; i < len(sorted); i++ {
		if sorted[i] != sorted[i-1]+1 {
			return 0, 0, fmt.Errorf("%w: gap between %02d:00 and %02d:00",
				ErrNotConsecutive, sorted[i-1], sorted[i])
		}
	}
	return sorted[0], sorted[len(sorted)-1] + 1, nil
}
