package planner

import (
	"errors"
	"math"
	"testing"

	"github.com/theirongolddev/swipeplan/internal/caldate"
	"github.com/theirongolddev/swipeplan/internal/model"
)

func day(t *testing.T, k string) caldate.CalendarDate {
	t.Helper()
	d, err := caldate.Parse(caldate.Key(k))
	if err != nil {
		t.Fatalf("parse %q: %v", k, err)
	}
	return d
}

func mustCompute(t *testing.T, in Input) model.PlanStatistics {
	t.Helper()
	stats, err := ComputeStatistics(in)
	if err != nil {
		t.Fatalf("ComputeStatistics: %v", err)
	}
	return stats
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeStatistics_SplitsAroundToday(t *testing.T) {
	stats := mustCompute(t, Input{
		StartDate:       "20250824",
		EndDate:         "20250826",
		TotalSwipes:     283,
		RemainingSwipes: 50,
		Today:           day(t, "20250825"),
	})
	if stats.UsedDays != 1 {
		t.Errorf("UsedDays = %d, want 1", stats.UsedDays)
	}
	if stats.RemainingDays != 2 {
		t.Errorf("RemainingDays = %d, want 2", stats.RemainingDays)
	}
	if stats.TotalDays != 3 || stats.ExcludedDays != 0 {
		t.Errorf("TotalDays/ExcludedDays = %d/%d, want 3/0", stats.TotalDays, stats.ExcludedDays)
	}
}

func TestComputeStatistics_AverageUsed(t *testing.T) {
	// Aug 1-10 used, Aug 11 remaining.
	stats := mustCompute(t, Input{
		StartDate:       "20250801",
		EndDate:         "20250811",
		TotalSwipes:     283,
		RemainingSwipes: 50,
		Today:           day(t, "20250811"),
	})
	if stats.UsedSwipes != 233 {
		t.Errorf("UsedSwipes = %v, want 233", stats.UsedSwipes)
	}
	if stats.UsedDays != 10 {
		t.Fatalf("UsedDays = %d, want 10", stats.UsedDays)
	}
	if stats.AvgUsedPerDay == nil || !approx(*stats.AvgUsedPerDay, 23.3) {
		t.Errorf("AvgUsedPerDay = %v, want 23.3", stats.AvgUsedPerDay)
	}
}

func TestComputeStatistics_ProjectedBalance(t *testing.T) {
	// 10 used days at 2.5/day, 20 remaining days, 50 swipes left.
	stats := mustCompute(t, Input{
		StartDate:       "20250801",
		EndDate:         "20250830",
		TotalSwipes:     75,
		RemainingSwipes: 50,
		Today:           day(t, "20250811"),
	})
	if stats.UsedDays != 10 || stats.RemainingDays != 20 {
		t.Fatalf("days = %d/%d, want 10/20", stats.UsedDays, stats.RemainingDays)
	}
	if stats.AvgUsedPerDay == nil || !approx(*stats.AvgUsedPerDay, 2.5) {
		t.Fatalf("AvgUsedPerDay = %v, want 2.5", stats.AvgUsedPerDay)
	}
	if stats.ProjectedBalance == nil || !approx(*stats.ProjectedBalance, 0) {
		t.Errorf("ProjectedBalance = %v, want 0", stats.ProjectedBalance)
	}
	if stats.AvgRemainingPerDay == nil || !approx(*stats.AvgRemainingPerDay, 2.5) {
		t.Errorf("AvgRemainingPerDay = %v, want 2.5", stats.AvgRemainingPerDay)
	}
}

func TestComputeStatistics_SelectedHolidayExcluded(t *testing.T) {
	catalog := []model.HolidayDefinition{{Label: "H1", Dates: []caldate.Key{"20250825"}}}
	stats := mustCompute(t, Input{
		StartDate:        "20250824",
		EndDate:          "20250826",
		TotalSwipes:      10,
		RemainingSwipes:  10,
		SelectedHolidays: model.NewStringSet("H1"),
		Catalog:          catalog,
		Today:            day(t, "20250824"),
	})
	if stats.UsedDays != 0 || stats.RemainingDays != 2 {
		t.Errorf("days = %d/%d, want 0/2 (8/25 excluded)", stats.UsedDays, stats.RemainingDays)
	}
	if stats.ExcludedDays != 1 {
		t.Errorf("ExcludedDays = %d, want 1", stats.ExcludedDays)
	}

	// Deselected: the day counts again.
	stats = mustCompute(t, Input{
		StartDate: "20250824",
		EndDate:   "20250826",
		Catalog:   catalog,
		Today:     day(t, "20250824"),
	})
	if stats.RemainingDays != 3 {
		t.Errorf("RemainingDays without selection = %d, want 3", stats.RemainingDays)
	}
}

func TestComputeStatistics_CustomDatesExcluded(t *testing.T) {
	stats := mustCompute(t, Input{
		StartDate:   "20250824",
		EndDate:     "20250830",
		CustomDates: model.NewKeySet("20250824", "20250829", "20251001"),
		Today:       day(t, "20250827"),
	})
	// Used: 25, 26 (24 excluded). Remaining: 27, 28, 30 (29 excluded).
	if stats.UsedDays != 2 || stats.RemainingDays != 3 {
		t.Errorf("days = %d/%d, want 2/3", stats.UsedDays, stats.RemainingDays)
	}
	if stats.ExcludedDays != 2 {
		t.Errorf("ExcludedDays = %d, want 2 (out-of-range custom date ignored)", stats.ExcludedDays)
	}
}

func TestComputeStatistics_TotalDayCoverage(t *testing.T) {
	catalog := []model.HolidayDefinition{
		{Label: "A", Dates: []caldate.Key{"20250830", "20250831", "20250901"}},
		{Label: "B", Dates: []caldate.Key{"20251126", "20251127"}},
		{Label: "C", Dates: []caldate.Key{"20260101"}},
	}
	custom := model.NewKeySet("20250901", "20251015", "20240101")
	selected := model.NewStringSet("A", "B", "C")

	for _, today := range []string{"20250101", "20250824", "20251010", "20251222", "20270101"} {
		in := Input{
			StartDate:        "20250824",
			EndDate:          "20251222",
			SelectedHolidays: selected,
			CustomDates:      custom,
			Catalog:          catalog,
			Today:            day(t, today),
		}
		stats := mustCompute(t, in)

		excl := BuildExclusionSet(catalog, selected, custom)
		inRange := 0
		for k := range excl {
			if day(t, string(k)).InRange(day(t, "20250824"), day(t, "20251222")) {
				inRange++
			}
		}
		total := caldate.DaysBetweenInclusive(day(t, "20250824"), day(t, "20251222"))
		if got := stats.UsedDays + stats.RemainingDays + inRange; got != total {
			t.Errorf("today=%s: used+remaining+excluded = %d, want %d", today, got, total)
		}
		if stats.ExcludedDays != inRange {
			t.Errorf("today=%s: ExcludedDays = %d, want %d", today, stats.ExcludedDays, inRange)
		}
	}
}

func TestComputeStatistics_ReversedRangeIsEmpty(t *testing.T) {
	stats := mustCompute(t, Input{
		StartDate:       "20251222",
		EndDate:         "20250824",
		TotalSwipes:     283,
		RemainingSwipes: 50,
		Today:           day(t, "20251001"),
	})
	if stats.UsedDays != 0 || stats.RemainingDays != 0 || stats.TotalDays != 0 {
		t.Fatalf("reversed range = %+v, want zero days", stats)
	}
	if stats.AvgUsedPerDay != nil || stats.AvgRemainingPerDay != nil || stats.ProjectedBalance != nil {
		t.Fatal("rates should be undefined for an empty range")
	}
	if stats.UsedSwipes != 233 {
		t.Errorf("UsedSwipes = %v, want 233", stats.UsedSwipes)
	}
}

func TestComputeStatistics_NoHistoryProjectsAtZeroPace(t *testing.T) {
	stats := mustCompute(t, Input{
		StartDate:       "20250824",
		EndDate:         "20250902",
		TotalSwipes:     283,
		RemainingSwipes: 50,
		Today:           day(t, "20250801"),
	})
	if stats.UsedDays != 0 {
		t.Fatalf("UsedDays = %d, want 0", stats.UsedDays)
	}
	if stats.AvgUsedPerDay != nil {
		t.Errorf("AvgUsedPerDay = %v, want undefined", *stats.AvgUsedPerDay)
	}
	if stats.ProjectedBalance == nil || *stats.ProjectedBalance != 50 {
		t.Errorf("ProjectedBalance = %v, want 50 (zero pace)", stats.ProjectedBalance)
	}
}

func TestComputeStatistics_SemesterOver(t *testing.T) {
	stats := mustCompute(t, Input{
		StartDate:       "20250824",
		EndDate:         "20250826",
		TotalSwipes:     30,
		RemainingSwipes: 3,
		Today:           day(t, "20250901"),
	})
	if stats.UsedDays != 3 || stats.RemainingDays != 0 {
		t.Fatalf("days = %d/%d, want 3/0", stats.UsedDays, stats.RemainingDays)
	}
	if stats.AvgRemainingPerDay != nil || stats.ProjectedBalance != nil {
		t.Error("remaining-side figures should be undefined after the semester")
	}
	if stats.AvgUsedPerDay == nil || *stats.AvgUsedPerDay != 9 {
		t.Errorf("AvgUsedPerDay = %v, want 9", stats.AvgUsedPerDay)
	}
}

func TestComputeStatistics_RemainingMonotonic(t *testing.T) {
	base := Input{
		StartDate:   "20250824",
		EndDate:     "20251222",
		TotalSwipes: 283,
		Today:       day(t, "20251001"),
	}
	prev := math.Inf(-1)
	for _, r := range []float64{0, 1, 10, 50, 51, 283} {
		in := base
		in.RemainingSwipes = r
		stats := mustCompute(t, in)
		if stats.AvgRemainingPerDay == nil {
			t.Fatal("AvgRemainingPerDay undefined")
		}
		if *stats.AvgRemainingPerDay <= prev {
			t.Fatalf("AvgRemainingPerDay(%v) = %v, not greater than %v", r, *stats.AvgRemainingPerDay, prev)
		}
		prev = *stats.AvgRemainingPerDay
	}
}

func TestComputeStatistics_InvalidDates(t *testing.T) {
	for _, in := range []Input{
		{StartDate: "2025082", EndDate: "20251222"},
		{StartDate: "20250824", EndDate: "20251232"},
		{StartDate: "", EndDate: ""},
	} {
		if _, err := ComputeStatistics(in); !errors.Is(err, caldate.ErrInvalidDate) {
			t.Errorf("ComputeStatistics(%s..%s) err = %v, want ErrInvalidDate", in.StartDate, in.EndDate, err)
		}
	}
}

func TestComputeStatistics_NaNPropagates(t *testing.T) {
	stats := mustCompute(t, Input{
		StartDate:       "20250824",
		EndDate:         "20250830",
		TotalSwipes:     ParseSwipes("lots"),
		RemainingSwipes: 50,
		Today:           day(t, "20250827"),
	})
	if !math.IsNaN(stats.UsedSwipes) {
		t.Errorf("UsedSwipes = %v, want NaN", stats.UsedSwipes)
	}
	if stats.AvgUsedPerDay == nil || !math.IsNaN(*stats.AvgUsedPerDay) {
		t.Errorf("AvgUsedPerDay = %v, want NaN", stats.AvgUsedPerDay)
	}
	if stats.ProjectedBalance == nil || !math.IsNaN(*stats.ProjectedBalance) {
		t.Errorf("ProjectedBalance = %v, want NaN", stats.ProjectedBalance)
	}
	if stats.AvgRemainingPerDay == nil || math.IsNaN(*stats.AvgRemainingPerDay) {
		t.Errorf("AvgRemainingPerDay should not depend on the total")
	}
}

func TestCompute_NilOnInvalidState(t *testing.T) {
	s := DefaultState(BuiltinDefaults, nil)
	s.EndDate = "2025122"
	if got := Compute(s, nil, day(t, "20251001")); got != nil {
		t.Fatalf("Compute = %+v, want nil", got)
	}
	s.EndDate = "20251222"
	if got := Compute(s, nil, day(t, "20251001")); got == nil {
		t.Fatal("Compute = nil for valid state")
	}
}

func TestPartitionDays_MatchesStatistics(t *testing.T) {
	catalog := []model.HolidayDefinition{
		{Label: "Labor Day", Dates: []caldate.Key{"20250830", "20250831", "20250901"}},
	}
	in := Input{
		StartDate:        "20250824",
		EndDate:          "20250905",
		SelectedHolidays: model.NewStringSet("Labor Day"),
		CustomDates:      model.NewKeySet("20250901", "20250903"),
		Catalog:          catalog,
		Today:            day(t, "20250902"),
	}
	days, err := PartitionDays(in)
	if err != nil {
		t.Fatal(err)
	}
	stats := mustCompute(t, in)

	counts := map[model.DayStatus]int{}
	for _, d := range days {
		counts[d.Status]++
	}
	if counts[model.DayUsed] != stats.UsedDays || counts[model.DayRemaining] != stats.RemainingDays {
		t.Errorf("partition counts %v disagree with stats %d/%d", counts, stats.UsedDays, stats.RemainingDays)
	}
	if len(days) != 13 || days[0].Date.Key() != "20250824" || days[12].Date.Key() != "20250905" {
		t.Fatalf("partition covers %d days from %v", len(days), days[0].Date)
	}

	// 20250901 is both Labor Day and a custom date.
	sep1 := days[8]
	if sep1.Date.Key() != "20250901" || sep1.Status != model.DayExcluded {
		t.Fatalf("days[8] = %+v, want excluded 20250901", sep1)
	}
	if len(sep1.Reasons) != 2 || sep1.Reasons[0] != "Labor Day" || sep1.Reasons[1] != CustomReason {
		t.Errorf("Reasons = %v, want [Labor Day custom]", sep1.Reasons)
	}
}

func TestParseSwipes(t *testing.T) {
	tests := map[string]float64{
		"283":       283,
		"  50":      50,
		"50 swipes": 50,
		"-3":        -3,
		"+7":        7,
		"12.9":      12,
		"007":       7,
	}
	for in, want := range tests {
		if got := ParseSwipes(in); got != want {
			t.Errorf("ParseSwipes(%q) = %v, want %v", in, got, want)
		}
	}
	for _, in := range []string{"", "abc", "-", " x1"} {
		if got := ParseSwipes(in); !math.IsNaN(got) {
			t.Errorf("ParseSwipes(%q) = %v, want NaN", in, got)
		}
	}
}
