package tui

import (
	"strings"
	"time"

	"github.com/theirongolddev/swipeplan/internal/caldate"
	"github.com/theirongolddev/swipeplan/internal/cli"
	"github.com/theirongolddev/swipeplan/internal/model"
	"github.com/theirongolddev/swipeplan/internal/planner"
	"github.com/theirongolddev/swipeplan/internal/tui/components"
	"github.com/theirongolddev/swipeplan/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// calendarState is the calendar picker: a cursor day whose month is shown.
type calendarState struct {
	cursor    caldate.CalendarDate
	weekStart time.Weekday
}

func newCalendarState(today caldate.CalendarDate, weekStart string) calendarState {
	c := calendarState{cursor: today}
	c.setWeekStart(weekStart)
	return c
}

func (c *calendarState) setWeekStart(name string) {
	if strings.EqualFold(name, "monday") {
		c.weekStart = time.Monday
		return
	}
	c.weekStart = time.Sunday
}

func (c *calendarState) jumpTo(d caldate.CalendarDate) {
	c.cursor = d
}

// shiftMonth moves the cursor n months, keeping the day of month where the
// target month is long enough.
func (c *calendarState) shiftMonth(n int) {
	target := c.cursor.AddMonths(n)
	day := c.cursor.Day
	if last := target.DaysInMonth(); day > last {
		day = last
	}
	c.cursor = caldate.CalendarDate{Year: target.Year, Month: target.Month, Day: day}
}

func (a App) updateCalendarKey(key string) (App, tea.Cmd, bool) {
	switch key {
	case "h", "left":
		a.cal.cursor = a.cal.cursor.AddDays(-1)
	case "l", "right":
		a.cal.cursor = a.cal.cursor.AddDays(1)
	case "k", "up":
		a.cal.cursor = a.cal.cursor.AddDays(-7)
	case "j", "down":
		a.cal.cursor = a.cal.cursor.AddDays(7)
	case "[":
		a.cal.shiftMonth(-1)
	case "]":
		a.cal.shiftMonth(1)
	case "t":
		a.cal.jumpTo(a.today)
	case "s":
		if d, err := caldate.Parse(a.state.StartDate); err == nil {
			a.cal.jumpTo(d)
		}
	case " ", "enter":
		day := a.cal.cursor.Key()
		next, cmd := a.mutate(func(s *model.PlannerState) { _, _ = s.ToggleCustomDate(day) })
		return next, cmd, true
	default:
		return a, nil, false
	}
	return a, nil, true
}

// dayCell classifies d for the month grid.
func (a App) dayCell(d caldate.CalendarDate, excluded planner.ExclusionSet, start, end caldate.CalendarDate, rangeOK bool) components.DayCell {
	cell := components.DayCell{
		Today:  d == a.today,
		Cursor: d == a.cal.cursor,
	}
	k := d.Key()
	switch {
	case a.state.CustomDates.Has(k):
		cell.Kind = components.DayCustom
	case excluded.Has(k):
		cell.Kind = components.DayHoliday
	case !rangeOK || !d.InRange(start, end):
		cell.Kind = components.DayOutside
	case d.Before(a.today):
		cell.Kind = components.DayUsed
	default:
		cell.Kind = components.DayRemaining
	}
	return cell
}

func (a App) renderCalendarTab(cw int) string {
	t := theme.Active

	start, errStart := caldate.Parse(a.state.StartDate)
	end, errEnd := caldate.Parse(a.state.EndDate)
	rangeOK := errStart == nil && errEnd == nil
	excluded := planner.BuildExclusionSet(a.catalog, a.state.SelectedHolidays, a.state.CustomDates)

	cell := func(d caldate.CalendarDate) components.DayCell {
		return a.dayCell(d, excluded, start, end, rangeOK)
	}

	grid := components.MonthGrid(a.cal.cursor, a.cal.weekStart, cell)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var info strings.Builder
	info.WriteString(valueStyle.Render(cli.FormatDate(a.cal.cursor)))
	info.WriteString("\n")
	info.WriteString(labelStyle.Render(a.describeDay(a.cal.cursor, rangeOK, start, end)))
	info.WriteString("\n\n")
	info.WriteString(labelStyle.Render("Days off picked: "))
	info.WriteString(valueStyle.Render(cli.FormatNumber(int64(len(a.state.CustomDates)))))
	info.WriteString("\n\n")
	info.WriteString(dimStyle.Render("[hjkl] move  [ [ ] ] month  [t] today"))
	info.WriteString("\n")
	info.WriteString(dimStyle.Render("[s] semester start  [Space] toggle day off"))

	halves := components.LayoutRow(cw, 2)
	if a.isCompactLayout() {
		return components.ContentCard("Calendar", grid+"\n\n"+components.CalendarLegend(), cw) + "\n" +
			components.ContentCard("Selected day", info.String(), cw)
	}
	return components.CardRow([]string{
		components.ContentCard("Calendar", grid+"\n\n"+components.CalendarLegend(), halves[0]),
		components.ContentCard("Selected day", info.String(), halves[1]),
	})
}

// describeDay explains how d is counted.
func (a App) describeDay(d caldate.CalendarDate, rangeOK bool, start, end caldate.CalendarDate) string {
	reasons := planner.ExclusionReasons(a.catalog, a.state.SelectedHolidays, a.state.CustomDates)[d.Key()]
	switch {
	case len(reasons) > 0:
		return "Away: " + strings.Join(reasons, ", ")
	case !rangeOK:
		return "Semester dates are invalid"
	case !d.InRange(start, end):
		return "Outside the semester"
	case d.Before(a.today):
		return "Counted as used"
	default:
		return "Counted as remaining"
	}
}
