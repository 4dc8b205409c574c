package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/swipeplan/internal/caldate"
	"github.com/theirongolddev/swipeplan/internal/cli"
	"github.com/theirongolddev/swipeplan/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// DayKind classifies a calendar cell.
type DayKind int

const (
	DayOutside DayKind = iota // outside the plan range
	DayUsed
	DayRemaining
	DayHoliday
	DayCustom
)

// DayCell describes how one day of the month grid is drawn.
type DayCell struct {
	Kind   DayKind
	Today  bool
	Cursor bool
}

// calendarCellW is the width of one day column.
const calendarCellW = 3

// GridOffset returns how many blank cells precede the first of the month
// when weeks start on weekStart.
func GridOffset(first caldate.CalendarDate, weekStart time.Weekday) int {
	return (int(first.Weekday()) - int(weekStart) + 7) % 7
}

// MonthGrid renders the month containing month as a 7-column grid with a
// title and weekday header. cell decides how each day is drawn.
func MonthGrid(month caldate.CalendarDate, weekStart time.Weekday, cell func(caldate.CalendarDate) DayCell) string {
	t := theme.Active
	first := month.FirstOfMonth()
	gridW := 7 * calendarCellW

	bg := lipgloss.NewStyle().Background(t.Surface)
	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true).
		Width(gridW).
		Align(lipgloss.Center)
	headerStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render(first.Time().Format("January 2006")))
	b.WriteString("\n")

	for _, h := range cli.WeekdayHeaders(weekStart) {
		b.WriteString(headerStyle.Render(fmt.Sprintf("%*s ", calendarCellW-1, h)))
	}

	offset := GridOffset(first, weekStart)
	days := first.DaysInMonth()
	col := 0

	b.WriteString("\n")
	b.WriteString(bg.Render(strings.Repeat(" ", offset*calendarCellW)))
	col = offset

	for day := 1; day <= days; day++ {
		d := caldate.CalendarDate{Year: first.Year, Month: first.Month, Day: day}
		b.WriteString(dayStyle(cell(d)).Render(fmt.Sprintf("%2d", day)))
		b.WriteString(bg.Render(" "))
		col++
		if col == 7 && day < days {
			b.WriteString("\n")
			col = 0
		}
	}
	if col < 7 {
		b.WriteString(bg.Render(strings.Repeat(" ", (7-col)*calendarCellW)))
	}

	return b.String()
}

func dayStyle(c DayCell) lipgloss.Style {
	t := theme.Active
	s := lipgloss.NewStyle().Background(t.Surface)

	switch c.Kind {
	case DayOutside:
		s = s.Foreground(t.TextDim).Faint(true)
	case DayUsed:
		s = s.Foreground(t.DayUsed)
	case DayRemaining:
		s = s.Foreground(t.DayRemaining)
	case DayHoliday:
		s = s.Foreground(t.DayHoliday).Strikethrough(true)
	case DayCustom:
		s = s.Foreground(t.DayCustom).Strikethrough(true)
	}

	if c.Today {
		s = s.Underline(true).Bold(true)
		if c.Kind == DayRemaining {
			s = s.Foreground(t.DayToday)
		}
	}
	if c.Cursor {
		s = s.Background(t.SurfaceBright).Reverse(true)
	}
	return s
}

// CalendarLegend renders the key for MonthGrid colours.
func CalendarLegend() string {
	t := theme.Active
	item := func(color lipgloss.Color, label string) string {
		return lipgloss.NewStyle().Foreground(color).Background(t.Surface).Render("■ " + label)
	}
	sep := lipgloss.NewStyle().Background(t.Surface).Render("  ")
	return item(t.DayUsed, "used") + sep +
		item(t.DayRemaining, "remaining") + sep +
		item(t.DayHoliday, "holiday") + sep +
		item(t.DayCustom, "custom") + sep +
		item(t.DayToday, "today")
}
