package domain

import (
	"sort"
	"time"
)

// AvailabilityTemplate is a venue's weekly recurring open hours.
// A weekday that was never configured is closed.
type AvailabilityTemplate struct {
	days [DaysPerWeek]HourSet
}

func NewAvailabilityTemplate() *AvailabilityTemplate {
	return &AvailabilityTemplate{}
}

// SetWeekdayHours replaces the open hours of weekday. Nothing changes on error.
func (t *AvailabilityTemplate) SetWeekdayHours(weekday time.Weekday, hours ...int) error {
	if err := ValidateWeekday(weekday); err != nil {
		return err
	}
	set, err := NewHourSet(hours...)
	if err != nil {
		return err
	}
	t.days[weekday] = set
	return nil
}

// SetWeekdaySet is SetWeekdayHours for an already normalized set.
func (t *AvailabilityTemplate) SetWeekdaySet(weekday time.Weekday, set HourSet) error {
	if err := ValidateWeekday(weekday); err != nil {
		return err
	}
	t.days[weekday] = set
	return nil
}

// HoursFor returns the configured hours of weekday, or the empty set.
func (t *AvailabilityTemplate) HoursFor(weekday time.Weekday) HourSet {
	if ValidateWeekday(weekday) != nil {
		return HourSet{}
	}
	return t.days[weekday]
}

// WeeklyHours returns all seven days, Sunday first.
func (t *AvailabilityTemplate) WeeklyHours() []WeeklyHours {
	out := make([]WeeklyHours, DaysPerWeek)
	for d := range t.days {
		out[d] = WeeklyHours{Weekday: time.Weekday(d), Hours: t.days[d]}
	}
	return out
}

// WeeklyHours is one row of the template.
type WeeklyHours struct {
	Weekday time.Weekday
	Hours   HourSet
}

// DateOverride replaces the template on one calendar day.
type DateOverride struct {
	Date  time.Time
	Hours HourSet
}

// AvailabilityOverrideStore maps calendar days to hour sets that replace the template.
type AvailabilityOverrideStore struct {
	overrides map[string]DateOverride
}

func NewAvailabilityOverrideStore() *AvailabilityOverrideStore {
	return &AvailabilityOverrideStore{overrides: make(map[string]DateOverride)}
}

// SetOverride stores or replaces the override for date. An empty hours list closes the day.
func (s *AvailabilityOverrideStore) SetOverride(date time.Time, hours ...int) error {
	set, err := NewHourSet(hours...)
	if err != nil {
		return err
	}
	s.SetOverrideSet(date, set)
	return nil
}

func (s *AvailabilityOverrideStore) SetOverrideSet(date time.Time, set HourSet) {
	day := DateOnly(date)
	s.overrides[DateKey(day)] = DateOverride{Date: day, Hours: set}
}

// ClearOverride removes the override for date and reports whether one existed.
func (s *AvailabilityOverrideStore) ClearOverride(date time.Time) bool {
	key := DateKey(date)
	if _, ok := s.overrides[key]; !ok {
		return false
	}
	delete(s.overrides, key)
	return true
}

// OverrideFor returns the override of date; ok=false means "use the template".
func (s *AvailabilityOverrideStore) OverrideFor(date time.Time) (HourSet, bool) {
	o, ok := s.overrides[DateKey(date)]
	return o.Hours, ok
}

// All returns the stored overrides ordered by date.
func (s *AvailabilityOverrideStore) All() []DateOverride {
	out := make([]DateOverride, 0, len(s.overrides))
	for _, o := range s.overrides {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func (s *AvailabilityOverrideStore) Len() int {
	return len(s.overrides)
}
