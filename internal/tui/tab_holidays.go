package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/swipeplan/internal/cli"
	"github.com/theirongolddev/swipeplan/internal/model"
	"github.com/theirongolddev/swipeplan/internal/planner"
	"github.com/theirongolddev/swipeplan/internal/tui/components"
	"github.com/theirongolddev/swipeplan/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// holidaysState tracks the cursor over the visible holiday list.
type holidaysState struct {
	cursor int
}

func (h *holidaysState) clamp(n int) {
	if h.cursor >= n {
		h.cursor = n - 1
	}
	if h.cursor < 0 {
		h.cursor = 0
	}
}

func (a App) updateHolidaysKey(key string) (App, tea.Cmd, bool) {
	visible := a.visibleHolidays()

	switch key {
	case "j", "down":
		if a.holidays.cursor < len(visible)-1 {
			a.holidays.cursor++
		}
		return a, nil, true
	case "k", "up":
		if a.holidays.cursor > 0 {
			a.holidays.cursor--
		}
		return a, nil, true
	case " ", "enter":
		if len(visible) == 0 {
			return a, nil, true
		}
		label := visible[a.holidays.cursor].Label
		next, cmd := a.mutate(func(s *model.PlannerState) { s.ToggleHoliday(label) })
		return next, cmd, true
	case "a", "n":
		selectAll := key == "a"
		next, cmd := a.mutate(func(s *model.PlannerState) {
			for _, h := range visible {
				if s.SelectedHolidays.Has(h.Label) != selectAll {
					s.ToggleHoliday(h.Label)
				}
			}
		})
		return next, cmd, true
	}
	return a, nil, false
}

func (a App) renderHolidaysTab(cw int) string {
	t := theme.Active

	checkedStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	uncheckedStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	datesStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	selectedBg := lipgloss.NewStyle().Background(t.SurfaceBright)
	noteStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)

	visible := a.visibleHolidays()
	innerW := components.CardInnerWidth(cw)

	var body strings.Builder
	if len(visible) == 0 {
		body.WriteString(noteStyle.Render("No holidays fall inside the semester."))
		body.WriteString("\n")
	}
	for i, h := range visible {
		box := uncheckedStyle.Render("☐")
		if a.state.SelectedHolidays.Has(h.Label) {
			box = checkedStyle.Render("☑")
		}
		line := box + labelStyle.Render(" "+cli.FormatHoliday(h.Label, h.Days()))
		dates := datesStyle.Render("  " + holidaySpan(h))
		row := line + dates

		if i == a.holidays.cursor {
			pad := innerW - lipgloss.Width(row) - 2
			if pad < 0 {
				pad = 0
			}
			row = selectedBg.Render("▸ ") + row + selectedBg.Render(strings.Repeat(" ", pad))
		} else {
			row = lipgloss.NewStyle().Background(t.Surface).Render("  ") + row
		}
		body.WriteString(row)
		body.WriteString("\n")
	}

	if hidden := planner.HiddenSelections(a.catalog, a.state.SelectedHolidays, a.state.StartDate, a.state.EndDate); len(hidden) > 0 {
		body.WriteString("\n")
		body.WriteString(warnStyle.Render(wrapText(
			fmt.Sprintf("Also selected but outside the semester: %s", strings.Join(hidden, ", ")), innerW)))
		body.WriteString("\n")
	}

	body.WriteString("\n")
	body.WriteString(noteStyle.Render("Select the holidays you will be completely off campus."))
	body.WriteString("\n")
	body.WriteString(datesStyle.Render("[j/k] move  [Space] toggle  [a] all  [n] none"))

	return components.ContentCard("Holidays away from campus", body.String(), cw)
}

// holidaySpan renders a holiday's first and last dates.
func holidaySpan(h model.HolidayDefinition) string {
	switch len(h.Dates) {
	case 0:
		return ""
	case 1:
		return string(h.Dates[0])
	}
	return fmt.Sprintf("%s–%s", h.Dates[0], h.Dates[len(h.Dates)-1])
}
