package domain

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// BlockScope tells whether a block repeats weekly or applies to one date
type BlockScope string

const (
	BlockScopeRecurring BlockScope = "recurring"
	BlockScopeSpecific  BlockScope = "specific"
)

// IsValid returns true for a known scope
func (s BlockScope) IsValid() bool {
	return s == BlockScopeRecurring || s == BlockScopeSpecific
}

// BlockedSlot prevents one hour from being bookable, either every week on a
// weekday or on one calendar date. The weekday of a specific block is derived
// from its date and cannot be set on its own.
type BlockedSlot struct {
	ID        uuid.UUID
	VenueID   int64
	Scope     BlockScope
	Hour      int
	CreatedAt time.Time

	weekday time.Weekday
	date    time.Time
}

// NewRecurringBlock builds a block for hour on every weekday.
func NewRecurringBlock(venueID int64, weekday time.Weekday, hour int) (BlockedSlot, error) {
	if err := ValidateWeekday(weekday); err != nil {
		return BlockedSlot{}, err
	}
	if err := ValidateHour(hour); err != nil {
		return BlockedSlot{}, err
	}
	return BlockedSlot{
		ID:      uuid.New(),
		VenueID: venueID,
		Scope:   BlockScopeRecurring,
		Hour:    hour,
		weekday: weekday,
	}, nil
}

// NewSpecificBlock builds a block for hour on date only.
func NewSpecificBlock(venueID int64, date time.Time, hour int) (BlockedSlot, error) {
	if err := ValidateHour(hour); err != nil {
		return BlockedSlot{}, err
	}
	day := DateOnly(date)
	return BlockedSlot{
		ID:      uuid.New(),
		VenueID: venueID,
		Scope:   BlockScopeSpecific,
		Hour:    hour,
		weekday: day.Weekday(),
		date:    day,
	}, nil
}

// RestoreBlock rebuilds a persisted block. For specific blocks the stored
// weekday is ignored and recomputed from date.
func RestoreBlock(
	id uuid.UUID,
	venueID int64,
	scope BlockScope,
	weekday time.Weekday,
	date *time.Time,
	hour int,
	createdAt time.Time,
) (BlockedSlot, error) {
	var (
		b   BlockedSlot
		err error
	)

	switch scope {
	case BlockScopeRecurring:
		b, err = NewRecurringBlock(venueID, weekday, hour)
	case BlockScopeSpecific:
		if date == nil {
			return BlockedSlot{}, fmt.Errorf("domain: specific block %s has no date", id)
		}
		b, err = NewSpecificBlock(venueID, *date, hour)
	default:
		return BlockedSlot{}, fmt.Errorf("domain: unknown block scope %q", scope)
	}
	if err != nil {
		return BlockedSlot{}, err
	}

	b.ID = id
	b.CreatedAt = createdAt
	return b, nil
}

// Weekday returns the blocked weekday (derived from the date for specific blocks).
func (b BlockedSlot) Weekday() time.Weekday {
	return b.weekday
}

// Date returns the blocked date; zero for recurring blocks.
func (b BlockedSlot) Date() time.Time {
	return b.date
}

func (b BlockedSlot) IsRecurring() bool {
	return b.Scope == BlockScopeRecurring
}

// AppliesTo reports whether the block covers hour on date.
func (b BlockedSlot) AppliesTo(date time.Time, hour int) bool {
	if b.Hour != hour {
		return false
	}
	if b.IsRecurring() {
		return b.weekday == WeekdayOf(date)
	}
	return b.date.Equal(DateOnly(date))
}

// blockKey is the uniqueness key of a block: (scope, weekday-or-date, hour).
type blockKey struct {
	scope  BlockScope
	anchor string
	hour   int
}

func (b BlockedSlot) key() blockKey {
	if b.IsRecurring() {
		return recurringKey(b.weekday, b.Hour)
	}
	return specificKey(b.date, b.Hour)
}

func recurringKey(weekday time.Weekday, hour int) blockKey {
	return blockKey{scope: BlockScopeRecurring, anchor: strconv.Itoa(int(weekday)), hour: hour}
}

func specificKey(date time.Time, hour int) blockKey {
	return blockKey{scope: BlockScopeSpecific, anchor: DateKey(date), hour: hour}
}

// BlockedSlotRegistry is the set of blocked slots of one venue.
// Inserts are idempotent on the block key.
type BlockedSlotRegistry struct {
	venueID int64
	byID    map[uuid.UUID]BlockedSlot
	byKey   map[blockKey]uuid.UUID
}

func NewBlockedSlotRegistry(venueID int64) *BlockedSlotRegistry {
	return &BlockedSlotRegistry{
		venueID: venueID,
		byID:    make(map[uuid.UUID]BlockedSlot),
		byKey:   make(map[blockKey]uuid.UUID),
	}
}

// Load adds persisted blocks. When two blocks share a key the first one wins,
// so duplicates coming from storage collapse into a single entry.
func (r *BlockedSlotRegistry) Load(blocks ...BlockedSlot) {
	for _, b := range blocks {
		r.insert(b)
	}
}

func (r *BlockedSlotRegistry) insert(b BlockedSlot) (BlockedSlot, bool) {
	k := b.key()
	if id, ok := r.byKey[k]; ok {
		return r.byID[id], false
	}
	b.VenueID = r.venueID
	r.byID[b.ID] = b
	r.byKey[k] = b.ID
	return b, true
}

// AddRecurringBlock blocks hour on every weekday. Returns the stored block and
// whether it was newly created.
func (r *BlockedSlotRegistry) AddRecurringBlock(weekday time.Weekday, hour int) (BlockedSlot, bool, error) {
	b, err := NewRecurringBlock(r.venueID, weekday, hour)
	if err != nil {
		return BlockedSlot{}, false, err
	}
	stored, created := r.insert(b)
	return stored, created, nil
}

// AddSpecificBlock blocks hour on date. Returns the stored block and whether
// it was newly created.
func (r *BlockedSlotRegistry) AddSpecificBlock(date time.Time, hour int) (BlockedSlot, bool, error) {
	b, err := NewSpecificBlock(r.venueID, date, hour)
	if err != nil {
		return BlockedSlot{}, false, err
	}
	stored, created := r.insert(b)
	return stored, created, nil
}

// RemoveBlock deletes the block with id.
func (r *BlockedSlotRegistry) RemoveBlock(id uuid.UUID) (BlockedSlot, error) {
	b, ok := r.byID[id]
	if !ok {
		return BlockedSlot{}, fmt.Errorf("%w: id=%s", ErrBlockNotFound, id)
	}
	delete(r.byID, id)
	delete(r.byKey, b.key())
	return b, nil
}

// IsBlocked reports whether hour on date is blocked by a specific block for
// that date or by a recurring block for its weekday.
func (r *BlockedSlotRegistry) IsBlocked(date time.Time, hour int) bool {
	if _, ok := r.byKey[specificKey(date, hour)]; ok {
		return true
	}
	_, ok := r.byKey[recurringKey(WeekdayOf(date), hour)]
	return ok
}

// BlockedHours returns every hour of date that is blocked.
func (r *BlockedSlotRegistry) BlockedHours(date time.Time) HourSet {
	var set HourSet
	for h := MinHour; h <= MaxHour; h++ {
		if r.IsBlocked(date, h) {
			set.hours[h] = true
		}
	}
	return set
}

func (r *BlockedSlotRegistry) Get(id uuid.UUID) (BlockedSlot, bool) {
	b, ok := r.byID[id]
	return b, ok
}

// Find returns the block stored under the same key as probe.
func (r *BlockedSlotRegistry) Find(probe BlockedSlot) (BlockedSlot, bool) {
	id, ok := r.byKey[probe.key()]
	if !ok {
		return BlockedSlot{}, false
	}
	return r.byID[id], true
}

// BlocksFor returns the blocks that apply to date, ordered by hour.
func (r *BlockedSlotRegistry) BlocksFor(date time.Time) []BlockedSlot {
	out := make([]BlockedSlot, 0)
	for _, b := range r.byID {
		if b.AppliesTo(date, b.Hour) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Hour != out[j].Hour {
			return out[i].Hour < out[j].Hour
		}
		return out[i].IsRecurring() && !out[j].IsRecurring()
	})
	return out
}

// All returns every block: recurring first (by weekday, hour), then specific (by date, hour).
func (r *BlockedSlotRegistry) All() []BlockedSlot {
	out := make([]BlockedSlot, 0, len(r.byID))
	for _, b := range r.byID {
		out = append(out, b)
	}
	sortBlocks(out)
	return out
}

func (r *BlockedSlotRegistry) Len() int {
	return len(r.byID)
}

// Clone returns an independent copy, used to stage all-or-nothing commits.
func (r *BlockedSlotRegistry) Clone() *BlockedSlotRegistry {
	c := NewBlockedSlotRegistry(r.venueID)
	for id, b := range r.byID {
		c.byID[id] = b
	}
	for k, id := range r.byKey {
		c.byKey[k] = id
	}
	return c
}

func sortBlocks(blocks []BlockedSlot) {
	sort.Slice(blocks, func(i, j int) bool {
		a, b := blocks[i], blocks[j]
		if a.Scope != b.Scope {
			return a.IsRecurring()
		}
		if a.IsRecurring() {
			if a.weekday != b.weekday {
				return a.weekday < b.weekday
			}
			return a.Hour < b.Hour
		}
		if !a.date.Equal(b.date) {
			return a.date.Before(b.date)
		}
		return a.Hour < b.Hour
	})
}
