package components

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/swipeplan/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// MonthBar is one month's split of days in the plan range.
type MonthBar struct {
	Label     string
	Used      int
	Remaining int
	Excluded  int
}

// Total returns the number of days in the bar.
func (m MonthBar) Total() int {
	return m.Used + m.Remaining + m.Excluded
}

// MonthBars renders one stacked horizontal bar per month: used days, then
// remaining days, then excluded days, scaled to the longest month.
func MonthBars(rows []MonthBar, width int) string {
	if len(rows) == 0 {
		return ""
	}
	t := theme.Active

	longest := 0
	labelW := 0
	for _, r := range rows {
		if r.Total() > longest {
			longest = r.Total()
		}
		if w := lipgloss.Width(r.Label); w > labelW {
			labelW = w
		}
	}
	if longest == 0 {
		longest = 1
	}

	countW := len("31/31/31")
	barW := width - labelW - countW - 3
	if barW < 5 {
		barW = 5
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	usedStyle := lipgloss.NewStyle().Foreground(t.DayUsed).Background(t.Surface)
	remainStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)
	exclStyle := lipgloss.NewStyle().Foreground(t.DayHoliday).Background(t.Surface)
	countStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	scale := func(n int) int {
		return n * barW / longest
	}

	var b strings.Builder
	for i, r := range rows {
		used, remain, excl := scale(r.Used), scale(r.Remaining), scale(r.Excluded)
		// A non-empty segment always shows at least one cell.
		if r.Used > 0 && used == 0 {
			used = 1
		}
		if r.Remaining > 0 && remain == 0 {
			remain = 1
		}
		if r.Excluded > 0 && excl == 0 {
			excl = 1
		}
		pad := barW - used - remain - excl
		if pad < 0 {
			pad = 0
		}

		b.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", labelW, r.Label)))
		b.WriteString(spaceStyle.Render(" "))
		b.WriteString(usedStyle.Render(strings.Repeat("▓", used)))
		b.WriteString(remainStyle.Render(strings.Repeat("█", remain)))
		b.WriteString(exclStyle.Render(strings.Repeat("░", excl)))
		b.WriteString(spaceStyle.Render(strings.Repeat(" ", pad+1)))
		b.WriteString(countStyle.Render(fmt.Sprintf("%d/%d/%d", r.Used, r.Remaining, r.Excluded)))
		if i < len(rows)-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(usedStyle.Render("▓ used  "))
	b.WriteString(remainStyle.Render("█ remaining  "))
	b.WriteString(exclStyle.Render("░ away"))
	return b.String()
}
