package planner

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/swipeplan/internal/caldate"
	"github.com/theirongolddev/swipeplan/internal/model"
)

// Input is everything a statistics computation depends on.
type Input struct {
	StartDate        caldate.Key
	EndDate          caldate.Key
	TotalSwipes      float64
	RemainingSwipes  float64
	SelectedHolidays model.StringSet
	CustomDates      model.KeySet
	Catalog          []model.HolidayDefinition
	Today            caldate.CalendarDate
}

// InputFromState builds an Input from the saved planner state.
func InputFromState(s model.PlannerState, catalog []model.HolidayDefinition, today caldate.CalendarDate) Input {
	return Input{
		StartDate:        s.StartDate,
		EndDate:          s.EndDate,
		TotalSwipes:      ParseSwipes(s.TotalSwipes),
		RemainingSwipes:  ParseSwipes(s.RemainingSwipes),
		SelectedHolidays: s.SelectedHolidays,
		CustomDates:      s.CustomDates,
		Catalog:          catalog,
		Today:            today,
	}
}

func (in Input) bounds() (caldate.CalendarDate, caldate.CalendarDate, error) {
	start, err := caldate.Parse(in.StartDate)
	if err != nil {
		return caldate.CalendarDate{}, caldate.CalendarDate{}, fmt.Errorf("start date: %w", err)
	}
	end, err := caldate.Parse(in.EndDate)
	if err != nil {
		return caldate.CalendarDate{}, caldate.CalendarDate{}, fmt.Errorf("end date: %w", err)
	}
	return start, end, nil
}

// ComputeStatistics walks every day in [StartDate, EndDate], drops excluded
// days, splits the rest into used (before Today) and remaining (Today on),
// and derives the usage rates. It fails only when a bound does not parse;
// the error wraps caldate.ErrInvalidDate. A start after the end yields zero
// days, not an error.
func ComputeStatistics(in Input) (model.PlanStatistics, error) {
	start, end, err := in.bounds()
	if err != nil {
		return model.PlanStatistics{}, err
	}

	excluded := BuildExclusionSet(in.Catalog, in.SelectedHolidays, in.CustomDates)

	var stats model.PlanStatistics
	for d := start; !d.After(end); d = d.AddDays(1) {
		stats.TotalDays++
		if excluded.Has(d.Key()) {
			stats.ExcludedDays++
			continue
		}
		if d.Before(in.Today) {
			stats.UsedDays++
		} else {
			stats.RemainingDays++
		}
	}

	derive(&stats, in.TotalSwipes, in.RemainingSwipes)
	return stats, nil
}

// derive fills the swipe figures. With no used days the projection still
// runs, using a pace of zero, while AvgUsedPerDay stays undefined.
func derive(stats *model.PlanStatistics, total, remaining float64) {
	stats.UsedSwipes = total - remaining
	stats.RemainingSwipes = remaining

	if stats.UsedDays > 0 {
		avg := stats.UsedSwipes / float64(stats.UsedDays)
		stats.AvgUsedPerDay = &avg
	}

	if stats.RemainingDays > 0 {
		days := float64(stats.RemainingDays)
		avg := remaining / days
		stats.AvgRemainingPerDay = &avg

		pace := 0.0
		if stats.AvgUsedPerDay != nil {
			pace = *stats.AvgUsedPerDay
		}
		balance := remaining - pace*days
		stats.ProjectedBalance = &balance
	}
}

// Compute returns statistics for a planner state, or nil when the state's
// date range does not parse.
func Compute(s model.PlannerState, catalog []model.HolidayDefinition, today caldate.CalendarDate) *model.PlanStatistics {
	stats, err := ComputeStatistics(InputFromState(s, catalog, today))
	if err != nil {
		return nil
	}
	return &stats
}

// Result is one evaluation of an Input: the statistics and the per-day
// breakdown they were counted from.
type Result struct {
	Stats model.PlanStatistics
	Days  []model.DayEntry
}

// Evaluate partitions the range once and counts the statistics from the
// partition. The statistics equal ComputeStatistics(in).
func Evaluate(in Input) (Result, error) {
	days, err := PartitionDays(in)
	if err != nil {
		return Result{}, err
	}

	var stats model.PlanStatistics
	stats.TotalDays = len(days)
	for _, d := range days {
		switch d.Status {
		case model.DayUsed:
			stats.UsedDays++
		case model.DayRemaining:
			stats.RemainingDays++
		default:
			stats.ExcludedDays++
		}
	}
	derive(&stats, in.TotalSwipes, in.RemainingSwipes)
	return Result{Stats: stats, Days: days}, nil
}

// PartitionDays returns the classification of every day in the range, oldest
// first, using the same rules as ComputeStatistics.
func PartitionDays(in Input) ([]model.DayEntry, error) {
	start, end, err := in.bounds()
	if err != nil {
		return nil, err
	}

	reasons := ExclusionReasons(in.Catalog, in.SelectedHolidays, in.CustomDates)

	days := make([]model.DayEntry, 0, caldate.DaysBetweenInclusive(start, end))
	for d := start; !d.After(end); d = d.AddDays(1) {
		entry := model.DayEntry{Date: d}
		switch r, ok := reasons[d.Key()]; {
		case ok:
			entry.Status = model.DayExcluded
			entry.Reasons = r
		case d.Before(in.Today):
			entry.Status = model.DayUsed
		default:
			entry.Status = model.DayRemaining
		}
		days = append(days, entry)
	}
	return days, nil
}

// ParseSwipes reads a swipe count the way the web form did: optional
// leading whitespace and sign, then the leading run of digits. Anything
// without digits is NaN, which flows through the arithmetic and renders
// as the "--" sentinel.
func ParseSwipes(s string) float64 {
	s = strings.TrimLeft(s, " \t\r\n")
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	n, digits := 0.0, 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		n = n*10 + float64(s[digits]-'0')
		digits++
	}
	if digits == 0 {
		return math.NaN()
	}
	if neg {
		n = -n
	}
	return n
}
