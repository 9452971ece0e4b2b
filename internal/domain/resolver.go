package domain

import (
	"fmt"
	"time"
)

// AvailabilitySource tells which rule produced the open hours of a date
type AvailabilitySource string

const (
	SourceTemplate AvailabilitySource = "template"
	SourceOverride AvailabilitySource = "override"
)

// VenueAvailability is the availability state owned by one venue: its weekly
// template, date overrides and blocked slots.
type VenueAvailability struct {
	VenueID   int64
	Template  *AvailabilityTemplate
	Overrides *AvailabilityOverrideStore
	Blocks    *BlockedSlotRegistry
}

func NewVenueAvailability(venueID int64) *VenueAvailability {
	return &VenueAvailability{
		VenueID:   venueID,
		Template:  NewAvailabilityTemplate(),
		Overrides: NewAvailabilityOverrideStore(),
		Blocks:    NewBlockedSlotRegistry(venueID),
	}
}

// Resolver returns a SlotResolver over the current state.
func (a *VenueAvailability) Resolver() *SlotResolver {
	return NewSlotResolver(a.Template, a.Overrides, a.Blocks)
}

// SlotResolver turns template, overrides and blocks into bookable hours.
type SlotResolver struct {
	template  *AvailabilityTemplate
	overrides *AvailabilityOverrideStore
	blocks    *BlockedSlotRegistry
}

func NewSlotResolver(
	template *AvailabilityTemplate,
	overrides *AvailabilityOverrideStore,
	blocks *BlockedSlotRegistry,
) *SlotResolver {
	return &SlotResolver{template: template, overrides: overrides, blocks: blocks}
}

// OpenHours returns the nominal open hours of date: the override when one
// exists (even if empty), otherwise the template for the date's weekday.
func (r *SlotResolver) OpenHours(date time.Time) (HourSet, AvailabilitySource) {
	if hours, ok := r.overrides.OverrideFor(date); ok {
		return hours, SourceOverride
	}
	return r.template.HoursFor(WeekdayOf(date)), SourceTemplate
}

// BookableSet returns open hours minus blocked hours.
func (r *SlotResolver) BookableSet(date time.Time) HourSet {
	open, _ := r.OpenHours(date)
	return open.Minus(r.blocks.BlockedHours(date))
}

// BookableHours returns the sorted bookable hours of date. An empty result is valid.
func (r *SlotResolver) BookableHours(date time.Time) []int {
	return r.BookableSet(date).Sorted()
}

// ValidateContiguousRange checks that every hour in [startHour, endHour) is bookable.
func (r *SlotResolver) ValidateContiguousRange(date time.Time, startHour, endHour int) error {
	if endHour <= startHour {
		return fmt.Errorf("%w: start=%d end=%d", ErrEmptyRange, startHour, endHour)
	}
	if startHour < MinHour || endHour > HoursPerDay {
		return fmt.Errorf("%w: range [%d,%d)", ErrInvalidHour, startHour, endHour)
	}

	bookable := r.BookableSet(date)
	for h := startHour; h < endHour; h++ {
		if !bookable.Contains(h) {
			return fmt.Errorf("%w: %02d:00 on %s", ErrHourNotBookable, h, DateKey(date))
		}
	}
	return nil
}

// ValidateSelection normalizes a list of picked hours into [start, end) and
// checks it against the bookable hours of date.
func (r *SlotResolver) ValidateSelection(date time.Time, hours []int) (int, int, error) {
	start, end, err := ContiguousRange(hours)
	if err != nil {
		return 0, 0, err
	}
	if err := r.ValidateContiguousRange(date, start, end); err != nil {
		return 0, 0, err
	}
	return start, end, nil
}
