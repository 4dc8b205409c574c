package cli

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/swipeplan/internal/caldate"
)

func ptr(v float64) *float64 { return &v }

func TestFormatRate(t *testing.T) {
	tests := []struct {
		in   *float64
		want string
	}{
		{nil, "--"},
		{ptr(math.NaN()), "--"},
		{ptr(math.Inf(1)), "--"},
		{ptr(70.0 / 3), "23.33"},
		{ptr(25), "25.00"},
		{ptr(1234.5), "1,234.50"},
		{ptr(-0.001), "0.00"},
	}
	for _, tt := range tests {
		if got := FormatRate(tt.in); got != tt.want {
			t.Errorf("FormatRate(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatBalance(t *testing.T) {
	tests := []struct {
		in   *float64
		want string
	}{
		{nil, "--"},
		{ptr(math.NaN()), "--"},
		{ptr(0), "0.0"},
		{ptr(-39.96), "-40.0"},
		{ptr(12.34), "12.3"},
	}
	for _, tt := range tests {
		if got := FormatBalance(tt.in); got != tt.want {
			t.Errorf("FormatBalance(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatSwipes(t *testing.T) {
	if got := FormatSwipes(math.NaN()); got != "--" {
		t.Errorf("FormatSwipes(NaN) = %q, want --", got)
	}
	if got := FormatSwipes(233); got != "233" {
		t.Errorf("FormatSwipes(233) = %q, want 233", got)
	}
	if got := FormatSwipes(-12); got != "-12" {
		t.Errorf("FormatSwipes(-12) = %q, want -12", got)
	}
}

func TestFormatDaysAndHoliday(t *testing.T) {
	if got := FormatDays(1); got != "1 day" {
		t.Errorf("FormatDays(1) = %q", got)
	}
	if got := FormatDays(1200); got != "1,200 days" {
		t.Errorf("FormatDays(1200) = %q", got)
	}
	if got := FormatHoliday("Labor Day", 3); got != "Labor Day (3 days)" {
		t.Errorf("FormatHoliday = %q", got)
	}
}

func TestFormatProjection(t *testing.T) {
	if _, ok := FormatProjection(nil); ok {
		t.Error("nil projection should not produce a sentence")
	}
	s, ok := FormatProjection(ptr(12.34))
	if !ok || !strings.Contains(s, "leave 12.3 swipes unused") {
		t.Errorf("positive projection = %q", s)
	}
	s, _ = FormatProjection(ptr(-40))
	if !strings.Contains(s, "40.0 swipes short") {
		t.Errorf("negative projection = %q", s)
	}
	s, _ = FormatProjection(ptr(0.01))
	if !strings.Contains(s, "last swipe") {
		t.Errorf("zero projection = %q", s)
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate(caldate.MustParse("20250824")); got != "Sun Aug 24, 2025" {
		t.Errorf("FormatDate = %q", got)
	}
}

func TestFormatSaved(t *testing.T) {
	if got := FormatSaved(time.Time{}, false); got != "never saved" {
		t.Errorf("FormatSaved(false) = %q", got)
	}
	if got := FormatSaved(time.Now().Add(-3*time.Minute), true); !strings.HasPrefix(got, "saved 3 minutes ago") {
		t.Errorf("FormatSaved = %q", got)
	}
}

func TestWeekdayHeaders(t *testing.T) {
	if got := strings.Join(WeekdayHeaders(time.Sunday), " "); got != "Su Mo Tu We Th Fr Sa" {
		t.Errorf("sunday headers = %q", got)
	}
	if got := strings.Join(WeekdayHeaders(time.Monday), " "); got != "Mo Tu We Th Fr Sa Su" {
		t.Errorf("monday headers = %q", got)
	}
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Date", "Status"},
		Rows:    [][]string{{"20250824", "used"}, {"---"}, {"20250825", "remaining"}},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("lines = %d, want 7:\n%s", len(lines), out)
	}
	width := len([]rune(lines[0]))
	for i, l := range lines {
		if w := len([]rune(l)); w != width {
			t.Errorf("line %d width = %d, want %d", i, w, width)
		}
	}
}
