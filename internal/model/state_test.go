package model

import (
	"errors"
	"testing"

	"github.com/theirongolddev/swipeplan/internal/caldate"
)

func TestToggleHoliday(t *testing.T) {
	var s PlannerState
	if !s.ToggleHoliday("Labor Day") {
		t.Fatal("first toggle should select")
	}
	if !s.SelectedHolidays.Has("Labor Day") {
		t.Fatal("label not in set after select")
	}
	if s.ToggleHoliday("Labor Day") {
		t.Fatal("second toggle should deselect")
	}
	if len(s.SelectedHolidays) != 0 {
		t.Fatalf("SelectedHolidays = %v, want empty", s.SelectedHolidays)
	}
}

func TestToggleCustomDate(t *testing.T) {
	var s PlannerState
	on, err := s.ToggleCustomDate("20251003")
	if err != nil || !on {
		t.Fatalf("ToggleCustomDate = %v, %v; want true, nil", on, err)
	}
	on, err = s.ToggleCustomDate("20251003")
	if err != nil || on {
		t.Fatalf("second ToggleCustomDate = %v, %v; want false, nil", on, err)
	}
	if _, err := s.ToggleCustomDate("20251032"); !errors.Is(err, caldate.ErrInvalidDate) {
		t.Fatalf("bad key err = %v, want ErrInvalidDate", err)
	}
	if len(s.CustomDates) != 0 {
		t.Fatalf("CustomDates = %v, want empty", s.CustomDates)
	}
}

func TestAddCustomDates_ReportsRejected(t *testing.T) {
	var s PlannerState
	rejected := s.AddCustomDates("20251003", "nope", "20251004", "20250230")
	if len(rejected) != 2 {
		t.Fatalf("rejected = %v, want 2 entries", rejected)
	}
	if got := s.CustomDates.Sorted(); len(got) != 2 || got[0] != "20251003" || got[1] != "20251004" {
		t.Fatalf("CustomDates = %v", got)
	}
	if !s.RemoveCustomDate("20251003") || s.RemoveCustomDate("20251003") {
		t.Fatal("RemoveCustomDate reported wrong presence")
	}
	s.ClearCustomDates()
	if len(s.CustomDates) != 0 {
		t.Fatal("ClearCustomDates left dates behind")
	}
}

func TestClone_IsDeep(t *testing.T) {
	s := PlannerState{
		StartDate:        "20250824",
		SelectedHolidays: NewStringSet("A"),
		CustomDates:      NewKeySet("20250901"),
	}
	c := s.Clone()
	c.ToggleHoliday("B")
	_, _ = c.ToggleCustomDate("20250902")
	if s.SelectedHolidays.Has("B") || s.CustomDates.Has("20250902") {
		t.Fatal("Clone shares sets with its source")
	}
	if c.StartDate != "20250824" {
		t.Fatalf("Clone StartDate = %q", c.StartDate)
	}
}
