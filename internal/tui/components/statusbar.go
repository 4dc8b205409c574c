package components

import (
	"github.com/theirongolddev/swipeplan/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar. saved describes the last
// write; warn, when set, replaces it in the warning colour.
func RenderStatusBar(width int, today, saved string, saving bool, warn string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface).
		Width(width)

	warnStyle := lipgloss.NewStyle().
		Foreground(t.Orange).
		Background(t.Surface)

	left := " [?]help  [q]uit"
	if today != "" {
		left += "  Today: " + today
	}

	var right string
	switch {
	case warn != "":
		right = warnStyle.Render(warn + " ")
	case saving:
		right = "saving… "
	case saved != "":
		right = saved + " "
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	bar := left
	for i := 0; i < padding; i++ {
		bar += " "
	}
	bar += right

	return style.Render(bar)
}
