package caldate

import (
	"errors"
	"testing"
	"time"
)

func TestParse_RoundTrip(t *testing.T) {
	keys := []Key{"20250824", "20251222", "20240229", "20000101", "19991231", "00010101"}
	for _, k := range keys {
		d, err := Parse(k)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", k, err)
		}
		if got := d.Key(); got != k {
			t.Errorf("Parse(%q).Key() = %q, want %q", k, got, k)
		}
	}
}

func TestParse_Components(t *testing.T) {
	d, err := Parse("20250901")
	if err != nil {
		t.Fatal(err)
	}
	want := CalendarDate{Year: 2025, Month: time.September, Day: 1}
	if d != want {
		t.Fatalf("Parse = %+v, want %+v", d, want)
	}
}

func TestParse_Invalid(t *testing.T) {
	bad := []Key{
		"",
		"2025082",
		"202508245",
		"2025-8-24",
		"2025a824",
		"20250231", // Feb 31
		"20250229", // not a leap year
		"20251301",
		"20250001",
		"20250100",
		" 2025082",
	}
	for _, k := range bad {
		if _, err := Parse(k); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("Parse(%q) err = %v, want ErrInvalidDate", k, err)
		}
	}
}

func TestAddDays_Rollover(t *testing.T) {
	tests := []struct {
		from Key
		n    int
		want Key
	}{
		{"20250131", 1, "20250201"},
		{"20251231", 1, "20260101"},
		{"20240228", 1, "20240229"},
		{"20250228", 1, "20250301"},
		{"20250301", -1, "20250228"},
		{"20250824", 0, "20250824"},
		{"20250824", 120, "20251222"},
	}
	for _, tt := range tests {
		got := MustParse(tt.from).AddDays(tt.n).Key()
		if got != tt.want {
			t.Errorf("%s + %d = %s, want %s", tt.from, tt.n, got, tt.want)
		}
	}
}

func TestCompare(t *testing.T) {
	a := MustParse("20250824")
	b := MustParse("20250825")
	c := MustParse("20260101")

	if !a.Before(b) || a.After(b) {
		t.Error("20250824 should be before 20250825")
	}
	if !c.After(b) {
		t.Error("20260101 should be after 20250825")
	}
	if a.Compare(a) != 0 {
		t.Error("date should compare equal to itself")
	}
	if !b.InRange(a, c) || a.InRange(b, c) {
		t.Error("InRange mismatch")
	}
	if !a.InRange(a, a) {
		t.Error("single-day range should contain its day")
	}
}

func TestKeyOrderMatchesDateOrder(t *testing.T) {
	d := MustParse("20241220")
	for i := 0; i < 400; i++ {
		next := d.AddDays(1)
		if !d.Key().Less(next.Key()) {
			t.Fatalf("key order broken: %s !< %s", d.Key(), next.Key())
		}
		d = next
	}
}

func TestFromTime_TruncatesTimeOfDay(t *testing.T) {
	late := time.Date(2025, 8, 24, 23, 59, 59, 0, time.Local)
	early := time.Date(2025, 8, 24, 0, 0, 1, 0, time.Local)
	if FromTime(late) != FromTime(early) {
		t.Fatalf("FromTime(%v) != FromTime(%v)", late, early)
	}
	if got := FromTime(late).Time(); got.Hour() != 0 || got.Minute() != 0 {
		t.Fatalf("Time() = %v, want midnight", got)
	}
}

func TestDaysBetweenInclusive(t *testing.T) {
	if got := DaysBetweenInclusive(MustParse("20250824"), MustParse("20250826")); got != 3 {
		t.Errorf("days = %d, want 3", got)
	}
	if got := DaysBetweenInclusive(MustParse("20250824"), MustParse("20250824")); got != 1 {
		t.Errorf("days = %d, want 1", got)
	}
	if got := DaysBetweenInclusive(MustParse("20250826"), MustParse("20250824")); got != 0 {
		t.Errorf("reversed range days = %d, want 0", got)
	}
	if got := DaysBetweenInclusive(MustParse("20250824"), MustParse("20251222")); got != 121 {
		t.Errorf("semester days = %d, want 121", got)
	}
}

func TestMonthHelpers(t *testing.T) {
	d := MustParse("20240215")
	if got := d.DaysInMonth(); got != 29 {
		t.Errorf("DaysInMonth(Feb 2024) = %d, want 29", got)
	}
	if got := d.AddMonths(11).Key(); got != "20250101" {
		t.Errorf("AddMonths(11) = %s, want 20250101", got)
	}
	if got := d.FirstOfMonth().Key(); got != "20240201" {
		t.Errorf("FirstOfMonth = %s, want 20240201", got)
	}
	if got := MustParse("20250824").Weekday(); got != time.Sunday {
		t.Errorf("Weekday(20250824) = %v, want Sunday", got)
	}
}
