// Package planner computes swipe usage statistics over a semester date range.
package planner

import (
	"github.com/theirongolddev/swipeplan/internal/caldate"
	"github.com/theirongolddev/swipeplan/internal/model"
)

// CustomReason labels days excluded through the calendar picker.
const CustomReason = "custom"

// ExclusionSet is the set of days removed from active-day accounting.
type ExclusionSet = model.KeySet

// BuildExclusionSet returns the union of the dates of every selected catalog
// holiday and the custom dates. Selection is by label only; whether a holiday
// overlaps the semester does not matter here.
func BuildExclusionSet(catalog []model.HolidayDefinition, selected model.StringSet, custom model.KeySet) ExclusionSet {
	set := make(ExclusionSet, len(custom))
	for _, h := range catalog {
		if !selected.Has(h.Label) {
			continue
		}
		for _, d := range h.Dates {
			set[d] = struct{}{}
		}
	}
	for d := range custom {
		set[d] = struct{}{}
	}
	return set
}

// ExclusionReasons maps each excluded day to the holiday labels covering it,
// in catalog order, followed by CustomReason for picker dates.
func ExclusionReasons(catalog []model.HolidayDefinition, selected model.StringSet, custom model.KeySet) map[caldate.Key][]string {
	reasons := make(map[caldate.Key][]string)
	for _, h := range catalog {
		if !selected.Has(h.Label) {
			continue
		}
		for _, d := range h.Dates {
			reasons[d] = append(reasons[d], h.Label)
		}
	}
	for d := range custom {
		reasons[d] = append(reasons[d], CustomReason)
	}
	return reasons
}

// VisibleHolidays returns, in catalog order, the holidays with at least one
// date inside [start, end]. Nothing is visible when either bound is invalid.
func VisibleHolidays(catalog []model.HolidayDefinition, start, end caldate.Key) []model.HolidayDefinition {
	lo, err := caldate.Parse(start)
	if err != nil {
		return nil
	}
	hi, err := caldate.Parse(end)
	if err != nil {
		return nil
	}

	var out []model.HolidayDefinition
	for _, h := range catalog {
		for _, k := range h.Dates {
			d, err := caldate.Parse(k)
			if err != nil {
				continue
			}
			if d.InRange(lo, hi) {
				out = append(out, h)
				break
			}
		}
	}
	return out
}

// HiddenSelections returns selected labels whose holidays are not visible for
// [start, end]. They still count toward the exclusion set.
func HiddenSelections(catalog []model.HolidayDefinition, selected model.StringSet, start, end caldate.Key) []string {
	visible := make(map[string]struct{})
	for _, h := range VisibleHolidays(catalog, start, end) {
		visible[h.Label] = struct{}{}
	}
	var hidden []string
	for _, h := range catalog {
		if _, ok := visible[h.Label]; ok {
			continue
		}
		if selected.Has(h.Label) {
			hidden = append(hidden, h.Label)
		}
	}
	return hidden
}
