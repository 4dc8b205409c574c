package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/swipeplan/internal/cli"
	"github.com/theirongolddev/swipeplan/internal/model"
	"github.com/theirongolddev/swipeplan/internal/tui/components"
	"github.com/theirongolddev/swipeplan/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// dayListState is the cursor in the per-day breakdown.
type dayListState struct {
	cursor int
}

func (d *dayListState) move(delta, n int) {
	d.cursor += delta
	if d.cursor >= n {
		d.cursor = n - 1
	}
	if d.cursor < 0 {
		d.cursor = 0
	}
}

func (a App) updateDaysKey(key string) (App, tea.Cmd, bool) {
	n := len(a.days)
	switch key {
	case "j", "down":
		a.dayList.move(1, n)
	case "k", "up":
		a.dayList.move(-1, n)
	case "ctrl+d":
		a.dayList.move(7, n)
	case "ctrl+u":
		a.dayList.move(-7, n)
	case "g":
		a.dayList.cursor = 0
	case "G":
		a.dayList.move(n, n)
	case "t":
		for i, d := range a.days {
			if d.Date == a.today {
				a.dayList.cursor = i
				break
			}
		}
	default:
		return a, nil, false
	}
	return a, nil, true
}

func (a App) renderDaysTab(cw, h int) string {
	t := theme.Active

	if len(a.days) == 0 {
		msg := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).
			Render("No days to show. Check the semester dates on the Plan tab.")
		return components.ContentCard("Days", msg, cw)
	}

	// Card border, title and footer take 5 lines.
	visible := h - 5
	if visible < 3 {
		visible = 3
	}

	// Keep the cursor row in view.
	offset := 0
	if a.dayList.cursor >= visible {
		offset = a.dayList.cursor - visible + 1
	}

	innerW := components.CardInnerWidth(cw)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	selectedBg := lipgloss.NewStyle().Background(t.SurfaceBright)

	var body strings.Builder
	end := offset + visible
	if end > len(a.days) {
		end = len(a.days)
	}
	for i := offset; i < end; i++ {
		d := a.days[i]
		row := a.renderDayRow(d, innerW)
		if i == a.dayList.cursor {
			row = selectedBg.Render(row)
		}
		body.WriteString(row)
		body.WriteString("\n")
	}

	body.WriteString(dimStyle.Render(fmt.Sprintf("%d-%d of %d  [j/k] scroll  [g/G] ends  [t] today",
		offset+1, end, len(a.days))))

	return components.ContentCard("Days", body.String(), cw)
}

func (a App) renderDayRow(d model.DayEntry, width int) string {
	t := theme.Active

	var color lipgloss.Color
	switch d.Status {
	case model.DayUsed:
		color = t.DayUsed
	case model.DayRemaining:
		color = t.DayRemaining
	default:
		color = t.DayHoliday
	}

	dateStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	statusStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	reasonStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	date := cli.FormatDate(d.Date)
	if d.Date == a.today {
		date += " ◂"
	}

	reason := strings.Join(d.Reasons, ", ")
	reasonW := width - 20 - 12
	return dateStyle.Render(fmt.Sprintf("%-20s", date)) +
		statusStyle.Render(fmt.Sprintf("%-12s", d.Status)) +
		reasonStyle.Render(truncStr(reason, reasonW))
}
