package domain

// Time grid bounds
const (
	MinHour     = 0
	MaxHour     = 23
	HoursPerDay = 24
	DaysPerWeek = 7
)

// Business validation constants
const (
	MaxRejectionReasonLength = 500
	MaxRequestTitleLength    = 200
	MaxRequestNotesLength    = 1000
	MaxOverrideRangeDays     = 366
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
