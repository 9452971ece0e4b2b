package domain

import (
	"fmt"
	"time"
)

// WeekdayOf returns the weekday of the venue-local calendar day of date (0=Sunday).
func WeekdayOf(date time.Time) time.Weekday {
	return DateOnly(date).Weekday()
}

// HoursInDay returns the hour-indexed slot space of a calendar day: 0..23.
func HoursInDay() []int {
	hours := make([]int, HoursPerDay)
	for h := range hours {
		hours[h] = h
	}
	return hours
}

// ValidateHour checks that h is a slot index of the day.
func ValidateHour(h int) error {
	if h < MinHour || h > MaxHour {
		return fmt.Errorf("%w: got %d", ErrInvalidHour, h)
	}
	return nil
}

// ValidateWeekday checks that w is one of the seven weekdays.
func ValidateWeekday(w time.Weekday) error {
	if w < time.Sunday || w > time.Saturday {
		return fmt.Errorf("%w: got %d", ErrInvalidWeekday, int(w))
	}
	return nil
}

// DateOnly strips the clock part and location, keeping the calendar day as seen in t's location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateKey renders the calendar day of t as YYYY-MM-DD.
func DateKey(t time.Time) string {
	return DateOnly(t).Format(DateFormat)
}

// ParseDate parses a YYYY-MM-DD calendar day.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}

// HourSet is a normalized set of day hours. The zero value is the empty set.
type HourSet struct {
	hours [HoursPerDay]bool
}

// NewHourSet builds a set from hours, failing on the first hour outside [0,23].
// Duplicates collapse.
func NewHourSet(hours ...int) (HourSet, error) {
	var s HourSet
	for _, h := range hours {
		if err := ValidateHour(h); err != nil {
			return HourSet{}, err
		}
		s.hours[h] = true
	}
	return s, nil
}

// MustHourSet is NewHourSet for literals known to be valid.
func MustHourSet(hours ...int) HourSet {
	s, err := NewHourSet(hours...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s HourSet) Contains(h int) bool {
	if h < MinHour || h > MaxHour {
		return false
	}
	return s.hours[h]
}

func (s *HourSet) Add(h int) error {
	if err := ValidateHour(h); err != nil {
		return err
	}
	s.hours[h] = true
	return nil
}

func (s *HourSet) Remove(h int) {
	if h < MinHour || h > MaxHour {
		return
	}
	s.hours[h] = false
}

func (s HourSet) Len() int {
	n := 0
	for _, ok := range s.hours {
		if ok {
			n++
		}
	}
	return n
}

func (s HourSet) IsEmpty() bool {
	return s.Len() == 0
}

// Sorted returns the hours in ascending order; never nil.
func (s HourSet) Sorted() []int {
	out := make([]int, 0, HoursPerDay)
	for h, ok := range s.hours {
		if ok {
			out = append(out, h)
		}
	}
	return out
}

// Minus returns the hours of s that are not in other.
func (s HourSet) Minus(other HourSet) HourSet {
	var out HourSet
	for h := range s.hours {
		out.hours[h] = s.hours[h] && !other.hours[h]
	}
	return out
}
