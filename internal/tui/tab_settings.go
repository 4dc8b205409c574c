package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/swipeplan/internal/cli"
	"github.com/theirongolddev/swipeplan/internal/config"
	"github.com/theirongolddev/swipeplan/internal/model"
	"github.com/theirongolddev/swipeplan/internal/planner"
	"github.com/theirongolddev/swipeplan/internal/tui/components"
	"github.com/theirongolddev/swipeplan/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	settingsFieldTheme = iota
	settingsFieldWeekStart
	settingsFieldClearDays
	settingsFieldReset
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	saved   bool  // flash "saved" message after a config write
	saveErr error // non-nil if last save failed
	confirm int   // field awaiting a second enter, or -1
}

func (a App) updateSettingsKey(key string) (App, tea.Cmd, bool) {
	switch key {
	case "j", "down":
		if a.settings.cursor < settingsFieldCount-1 {
			a.settings.cursor++
		}
		a.settings.confirm = -1
		return a, nil, true
	case "k", "up":
		if a.settings.cursor > 0 {
			a.settings.cursor--
		}
		a.settings.confirm = -1
		return a, nil, true
	case "esc":
		a.settings.confirm = -1
		return a, nil, true
	case "enter", " ":
		return a.settingsActivate()
	}
	return a, nil, false
}

func (a App) settingsActivate() (App, tea.Cmd, bool) {
	a.settings.saved = false

	switch a.settings.cursor {
	case settingsFieldTheme:
		a.cfg.Appearance.Theme = theme.Next(theme.ByName(a.cfg.Appearance.Theme).Name)
		theme.SetActive(a.cfg.Appearance.Theme)
		a.saveConfig()
		return a, nil, true

	case settingsFieldWeekStart:
		if strings.EqualFold(a.cfg.Calendar.WeekStart, "monday") {
			a.cfg.Calendar.WeekStart = "sunday"
		} else {
			a.cfg.Calendar.WeekStart = "monday"
		}
		a.cal.setWeekStart(a.cfg.Calendar.WeekStart)
		a.saveConfig()
		return a, nil, true

	case settingsFieldClearDays, settingsFieldReset:
		// Destructive actions need a second press.
		if a.settings.confirm != a.settings.cursor {
			a.settings.confirm = a.settings.cursor
			return a, nil, true
		}
		field := a.settings.confirm
		a.settings.confirm = -1
		next, cmd := a.mutate(func(s *model.PlannerState) {
			if field == settingsFieldClearDays {
				s.ClearCustomDates()
				return
			}
			*s = planner.DefaultState(a.defaults, a.catalog)
		})
		return next, cmd, true
	}
	return a, nil, false
}

func (a *App) saveConfig() {
	a.settings.saveErr = config.SaveTo(a.configPath, a.cfg)
	a.settings.saved = a.settings.saveErr == nil
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	greenStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
	warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	type field struct {
		label string
		value string
	}

	weekStart := "Sunday"
	if strings.EqualFold(a.cfg.Calendar.WeekStart, "monday") {
		weekStart = "Monday"
	}

	clearValue := fmt.Sprintf("%s picked", cli.FormatDays(len(a.state.CustomDates)))
	resetValue := "restore the default semester"
	switch a.settings.confirm {
	case settingsFieldClearDays:
		clearValue = "press Enter again to clear"
	case settingsFieldReset:
		resetValue = "press Enter again to reset"
	}

	fields := []field{
		{"Theme", theme.ByName(a.cfg.Appearance.Theme).Name},
		{"Week starts", weekStart},
		{"Clear days off", clearValue},
		{"Reset planner", resetValue},
	}

	innerW := components.CardInnerWidth(cw)
	var formBody strings.Builder
	for i, f := range fields {
		if i == a.settings.cursor {
			marker := markerStyle.Render("▸ ")
			label := selectedLabelStyle.Render(fmt.Sprintf("%-16s ", f.label+":"))
			value := selectedStyle.Render(f.value)
			formBody.WriteString(marker)
			formBody.WriteString(label)
			formBody.WriteString(value)
			usedWidth := lipgloss.Width(marker) + lipgloss.Width(label) + lipgloss.Width(value)
			if padLen := innerW - usedWidth; padLen > 0 {
				formBody.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", padLen)))
			}
		} else {
			formBody.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			formBody.WriteString(labelStyle.Render(fmt.Sprintf("%-16s ", f.label+":")))
			formBody.WriteString(valueStyle.Render(f.value))
		}
		formBody.WriteString("\n")
	}

	if a.settings.saveErr != nil {
		formBody.WriteString("\n")
		formBody.WriteString(warnStyle.Render(fmt.Sprintf("Save failed: %s", a.settings.saveErr)))
	} else if a.settings.saved {
		formBody.WriteString("\n")
		formBody.WriteString(greenStyle.Render("Saved!"))
	}

	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [Enter] change  [Esc] cancel"))

	saved := cli.FormatSaved(a.lastSave, a.hasSave)

	var infoBody strings.Builder
	infoBody.WriteString(labelStyle.Render("Config file:   ") + valueStyle.Render(truncStr(a.configPath, innerW-15)) + "\n")
	infoBody.WriteString(labelStyle.Render("State file:    ") + valueStyle.Render(truncStr(a.dbPath, innerW-15)) + "\n")
	infoBody.WriteString(labelStyle.Render("Holidays:      ") + valueStyle.Render(cli.FormatNumber(int64(len(a.catalog)))+" in catalog") + "\n")
	infoBody.WriteString(labelStyle.Render("Last save:     ") + valueStyle.Render(saved))

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", formBody.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("General", infoBody.String(), cw))

	return b.String()
}
