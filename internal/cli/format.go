// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/theirongolddev/swipeplan/internal/caldate"
)

// Undefined is shown for statistics that have no value.
const Undefined = "--"

// defined reports whether p points at a finite number.
func defined(p *float64) bool {
	return p != nil && !math.IsNaN(*p) && !math.IsInf(*p, 0)
}

// roundTo rounds v to places decimals and folds negative zero into zero.
func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	r := math.Round(v*scale) / scale
	if r == 0 {
		return 0
	}
	return r
}

// FormatRate formats a per-day swipe rate with two decimals.
// e.g., 23.333 -> "23.33", nil -> "--"
func FormatRate(p *float64) string {
	if !defined(p) {
		return Undefined
	}
	return humanize.FormatFloat("#,###.##", roundTo(*p, 2))
}

// FormatBalance formats a projected end-of-range balance with one decimal.
func FormatBalance(p *float64) string {
	if !defined(p) {
		return Undefined
	}
	return humanize.FormatFloat("#,###.#", roundTo(*p, 1))
}

// FormatSwipes formats a swipe count. NaN counts come from unparseable input.
func FormatSwipes(v float64) string {
	if !defined(&v) {
		return Undefined
	}
	return humanize.Commaf(roundTo(v, 2))
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatDays renders a day count with its unit, as in "3 days".
func FormatDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return FormatNumber(int64(n)) + " days"
}

// FormatHoliday renders a holiday label with its length.
// e.g., "Labor Day (3 days)"
func FormatHoliday(label string, days int) string {
	return fmt.Sprintf("%s (%s)", label, FormatDays(days))
}

// FormatProjection phrases the projected balance as a sentence. It returns
// false when there is no projection.
func FormatProjection(p *float64) (string, bool) {
	if !defined(p) {
		return "", false
	}
	v := roundTo(*p, 1)
	switch {
	case v > 0:
		return fmt.Sprintf("At your current pace you will leave %s swipes unused when the semester ends.",
			humanize.FormatFloat("#,###.#", v)), true
	case v < 0:
		return fmt.Sprintf("At your current pace you will be %s swipes short before the semester ends.",
			humanize.FormatFloat("#,###.#", -v)), true
	default:
		return "At your current pace you will use your last swipe as the semester ends.", true
	}
}

// FormatDate renders a date with its weekday, e.g. "Sun Aug 24, 2025".
func FormatDate(d caldate.CalendarDate) string {
	return d.Time().Format("Mon Jan 2, 2006")
}

// FormatSaved describes when the state was last written.
func FormatSaved(t time.Time, ok bool) string {
	if !ok {
		return "never saved"
	}
	return "saved " + humanize.Time(t)
}

// FormatDayOfWeek returns a 3-letter day abbreviation from a weekday number.
func FormatDayOfWeek(weekday int) string {
	days := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if weekday >= 0 && weekday < 7 {
		return days[weekday]
	}
	return "???"
}

// WeekdayHeaders returns two-letter weekday names starting at first.
func WeekdayHeaders(first time.Weekday) []string {
	out := make([]string, 7)
	for i := range out {
		out[i] = FormatDayOfWeek((int(first) + i) % 7)[:2]
	}
	return out
}
