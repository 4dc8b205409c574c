package model

import "github.com/theirongolddev/swipeplan/internal/caldate"

// PlanStatistics holds the derived usage figures for a semester.
// A nil rate means the value is undefined (nothing to divide by).
type PlanStatistics struct {
	UsedDays      int
	RemainingDays int
	ExcludedDays  int // excluded days inside the range
	TotalDays     int // calendar days in the range, inclusive

	UsedSwipes      float64
	RemainingSwipes float64

	AvgUsedPerDay      *float64
	AvgRemainingPerDay *float64
	ProjectedBalance   *float64
}

// DayStatus classifies a single day of the semester.
type DayStatus int

const (
	DayUsed DayStatus = iota
	DayRemaining
	DayExcluded
)

func (s DayStatus) String() string {
	switch s {
	case DayUsed:
		return "used"
	case DayRemaining:
		return "remaining"
	case DayExcluded:
		return "excluded"
	}
	return "unknown"
}

// DayEntry is one day of the per-day breakdown.
type DayEntry struct {
	Date    caldate.CalendarDate
	Status  DayStatus
	Reasons []string // holiday labels or "custom" for excluded days
}
