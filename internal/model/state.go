// Package model defines domain types for swipeplan planner state and statistics.
package model

import (
	"sort"

	"github.com/theirongolddev/swipeplan/internal/caldate"
)

// HolidayDefinition is a named set of days the student is off campus.
type HolidayDefinition struct {
	Label string
	Dates []caldate.Key
}

// Days returns the number of dates in the holiday.
func (h HolidayDefinition) Days() int {
	return len(h.Dates)
}

// StringSet is an unordered set of strings.
type StringSet map[string]struct{}

// NewStringSet returns a set holding items.
func NewStringSet(items ...string) StringSet {
	s := make(StringSet, len(items))
	for _, it := range items {
		s[it] = struct{}{}
	}
	return s
}

// Has reports whether v is in the set.
func (s StringSet) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Sorted returns the members in ascending order.
func (s StringSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// KeySet is an unordered set of date keys.
type KeySet map[caldate.Key]struct{}

// NewKeySet returns a set holding keys.
func NewKeySet(keys ...caldate.Key) KeySet {
	s := make(KeySet, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

// Has reports whether k is in the set.
func (s KeySet) Has(k caldate.Key) bool {
	_, ok := s[k]
	return ok
}

// Sorted returns the members in ascending key order.
func (s KeySet) Sorted() []caldate.Key {
	out := make([]caldate.Key, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// PlannerState is the user-editable input snapshot.
// Swipe counts are kept as typed; they are converted when statistics are computed.
type PlannerState struct {
	StartDate        caldate.Key
	EndDate          caldate.Key
	TotalSwipes      string
	RemainingSwipes  string
	SelectedHolidays StringSet
	CustomDates      KeySet
}

// Clone returns a deep copy of s.
func (s PlannerState) Clone() PlannerState {
	out := s
	out.SelectedHolidays = make(StringSet, len(s.SelectedHolidays))
	for k := range s.SelectedHolidays {
		out.SelectedHolidays[k] = struct{}{}
	}
	out.CustomDates = make(KeySet, len(s.CustomDates))
	for k := range s.CustomDates {
		out.CustomDates[k] = struct{}{}
	}
	return out
}

// ToggleHoliday selects label if it is unselected and deselects it otherwise.
// It reports whether label is selected afterwards.
func (s *PlannerState) ToggleHoliday(label string) bool {
	if s.SelectedHolidays == nil {
		s.SelectedHolidays = make(StringSet)
	}
	if s.SelectedHolidays.Has(label) {
		delete(s.SelectedHolidays, label)
		return false
	}
	s.SelectedHolidays[label] = struct{}{}
	return true
}

// ToggleCustomDate adds or removes a custom exclusion date. The key is
// canonicalized first; a key that does not parse is rejected.
// It reports whether the date is excluded afterwards.
func (s *PlannerState) ToggleCustomDate(k caldate.Key) (bool, error) {
	d, err := caldate.Parse(k)
	if err != nil {
		return false, err
	}
	if s.CustomDates == nil {
		s.CustomDates = make(KeySet)
	}
	k = d.Key()
	if s.CustomDates.Has(k) {
		delete(s.CustomDates, k)
		return false, nil
	}
	s.CustomDates[k] = struct{}{}
	return true, nil
}

// AddCustomDates adds every key that parses and returns the ones that did not.
func (s *PlannerState) AddCustomDates(keys ...caldate.Key) (rejected []caldate.Key) {
	if s.CustomDates == nil {
		s.CustomDates = make(KeySet)
	}
	for _, k := range keys {
		d, err := caldate.Parse(k)
		if err != nil {
			rejected = append(rejected, k)
			continue
		}
		s.CustomDates[d.Key()] = struct{}{}
	}
	return rejected
}

// RemoveCustomDate removes k and reports whether it was present.
func (s *PlannerState) RemoveCustomDate(k caldate.Key) bool {
	if !s.CustomDates.Has(k) {
		return false
	}
	delete(s.CustomDates, k)
	return true
}

// ClearCustomDates removes every custom exclusion date.
func (s *PlannerState) ClearCustomDates() {
	s.CustomDates = make(KeySet)
}
