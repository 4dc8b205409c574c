package components

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/theirongolddev/swipeplan/internal/caldate"
)

func TestGridOffset(t *testing.T) {
	aug := caldate.MustParse("20250801") // a Friday
	if got := GridOffset(aug, time.Sunday); got != 5 {
		t.Errorf("offset(sunday) = %d, want 5", got)
	}
	if got := GridOffset(aug, time.Monday); got != 4 {
		t.Errorf("offset(monday) = %d, want 4", got)
	}
	sep := caldate.MustParse("20250901") // a Monday
	if got := GridOffset(sep, time.Monday); got != 0 {
		t.Errorf("offset(sep, monday) = %d, want 0", got)
	}
}

func TestMonthGrid_Shape(t *testing.T) {
	plain := func(caldate.CalendarDate) DayCell { return DayCell{Kind: DayRemaining} }

	tests := []struct {
		month     caldate.Key
		weekStart time.Weekday
		weeks     int
	}{
		{"20250815", time.Sunday, 6}, // 5 blanks + 31 days
		{"20250815", time.Monday, 5}, // 4 blanks + 31 days
		{"20260201", time.Sunday, 4}, // Feb 2026 starts on Sunday
	}
	for _, tt := range tests {
		grid := MonthGrid(caldate.MustParse(tt.month), tt.weekStart, plain)
		lines := strings.Split(grid, "\n")
		if got := len(lines) - 2; got != tt.weeks {
			t.Errorf("%s/%v weeks = %d, want %d\n%s", tt.month, tt.weekStart, got, tt.weeks, grid)
		}
		for i, l := range lines[1:] {
			if w := lipgloss.Width(l); w != 21 {
				t.Errorf("%s line %d width = %d, want 21", tt.month, i+1, w)
			}
		}
	}
}

func TestMonthGrid_AsksForEveryDay(t *testing.T) {
	seen := 0
	MonthGrid(caldate.MustParse("20240210"), time.Sunday, func(d caldate.CalendarDate) DayCell {
		if d.Month != time.February || d.Year != 2024 {
			t.Errorf("unexpected day %v", d)
		}
		seen++
		return DayCell{}
	})
	if seen != 29 {
		t.Errorf("cells = %d, want 29", seen)
	}
}

func TestMonthBars(t *testing.T) {
	out := MonthBars([]MonthBar{
		{Label: "Aug", Used: 6, Remaining: 0, Excluded: 2},
		{Label: "Sep", Used: 0, Remaining: 29, Excluded: 1},
	}, 60)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3 (two bars and legend)", len(lines))
	}
	if !strings.Contains(lines[0], "6/0/2") || !strings.Contains(lines[1], "0/29/1") {
		t.Errorf("counts missing:\n%s", out)
	}
	if MonthBars(nil, 60) != "" {
		t.Error("no rows should render nothing")
	}
}
