// Package caldate provides a day-granularity calendar date and its
// canonical YYYYMMDD key encoding.
package caldate

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDate is returned when a key is malformed or names a day that
// does not exist on the calendar.
var ErrInvalidDate = errors.New("invalid date")

// KeyLen is the fixed width of a Key.
const KeyLen = 8

// Key is the canonical YYYYMMDD encoding of a CalendarDate, used at the
// storage and input boundary.
//
// Lexicographic order on keys equals chronological order only while every
// key is fixed-width and zero-padded. Keys produced by CalendarDate.Key
// always are; keys typed by a user are not until they pass Parse.
type Key string

// Less reports whether k sorts before other. Both keys must be well formed.
func (k Key) Less(other Key) bool {
	return k < other
}

// Valid reports whether the key parses.
func (k Key) Valid() bool {
	_, err := Parse(k)
	return err == nil
}

// CalendarDate is a calendar day with no time-of-day component.
// The zero value is not a valid date.
type CalendarDate struct {
	Year  int
	Month time.Month
	Day   int
}

// New returns the CalendarDate for year, month and day, normalizing
// out-of-range components the way time.Date does.
func New(year int, month time.Month, day int) CalendarDate {
	return FromTime(time.Date(year, month, day, 12, 0, 0, 0, time.UTC))
}

// FromTime returns the calendar date of t in t's own location.
func FromTime(t time.Time) CalendarDate {
	y, m, d := t.Date()
	return CalendarDate{Year: y, Month: m, Day: d}
}

// Today returns the current local date.
func Today() CalendarDate {
	return FromTime(time.Now())
}

// Parse decodes a YYYYMMDD key.
func Parse(k Key) (CalendarDate, error) {
	s := string(k)
	if len(s) != KeyLen {
		return CalendarDate{}, fmt.Errorf("%w: %q is not %d digits", ErrInvalidDate, s, KeyLen)
	}
	var n [KeyLen]int
	for i := 0; i < KeyLen; i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return CalendarDate{}, fmt.Errorf("%w: %q is not %d digits", ErrInvalidDate, s, KeyLen)
		}
		n[i] = int(c - '0')
	}

	year := n[0]*1000 + n[1]*100 + n[2]*10 + n[3]
	month := n[4]*10 + n[5]
	day := n[6]*10 + n[7]

	d := New(year, time.Month(month), day)
	if d.Year != year || int(d.Month) != month || d.Day != day {
		return CalendarDate{}, fmt.Errorf("%w: %q does not exist", ErrInvalidDate, s)
	}
	return d, nil
}

// MustParse is like Parse but panics on error. Intended for static tables.
func MustParse(k Key) CalendarDate {
	d, err := Parse(k)
	if err != nil {
		panic(err)
	}
	return d
}

// Key returns the zero-padded YYYYMMDD encoding.
func (d CalendarDate) Key() Key {
	return Key(fmt.Sprintf("%04d%02d%02d", d.Year, int(d.Month), d.Day))
}

func (d CalendarDate) String() string {
	return string(d.Key())
}

// Time returns local midnight of d.
func (d CalendarDate) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.Local)
}

// Weekday returns the day of the week of d.
func (d CalendarDate) Weekday() time.Weekday {
	return time.Date(d.Year, d.Month, d.Day, 12, 0, 0, 0, time.UTC).Weekday()
}

// AddDays returns d shifted by n days with month and year rollover.
func (d CalendarDate) AddDays(n int) CalendarDate {
	return New(d.Year, d.Month, d.Day+n)
}

// IsZero reports whether d is the zero value.
func (d CalendarDate) IsZero() bool {
	return d == CalendarDate{}
}

// Compare returns -1, 0 or +1 as d is before, equal to or after other.
func (d CalendarDate) Compare(other CalendarDate) int {
	switch {
	case d.Year != other.Year:
		return sign(d.Year - other.Year)
	case d.Month != other.Month:
		return sign(int(d.Month) - int(other.Month))
	default:
		return sign(d.Day - other.Day)
	}
}

// Before reports whether d is strictly before other.
func (d CalendarDate) Before(other CalendarDate) bool {
	return d.Compare(other) < 0
}

// After reports whether d is strictly after other.
func (d CalendarDate) After(other CalendarDate) bool {
	return d.Compare(other) > 0
}

// InRange reports whether lo <= d <= hi.
func (d CalendarDate) InRange(lo, hi CalendarDate) bool {
	return !d.Before(lo) && !d.After(hi)
}

// FirstOfMonth returns the first day of d's month.
func (d CalendarDate) FirstOfMonth() CalendarDate {
	return CalendarDate{Year: d.Year, Month: d.Month, Day: 1}
}

// AddMonths returns the first day of the month n months away from d.
func (d CalendarDate) AddMonths(n int) CalendarDate {
	return New(d.Year, d.Month+time.Month(n), 1)
}

// DaysInMonth returns the number of days in d's month.
func (d CalendarDate) DaysInMonth() int {
	return d.AddMonths(1).AddDays(-1).Day
}

// DaysBetweenInclusive returns the number of calendar days in [a, b],
// or 0 when a is after b.
func DaysBetweenInclusive(a, b CalendarDate) int {
	if a.After(b) {
		return 0
	}
	ta := time.Date(a.Year, a.Month, a.Day, 12, 0, 0, 0, time.UTC)
	tb := time.Date(b.Year, b.Month, b.Day, 12, 0, 0, 0, time.UTC)
	return int(tb.Sub(ta).Hours()/24) + 1
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}
