package tui

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/swipeplan/internal/caldate"
	"github.com/theirongolddev/swipeplan/internal/cli"
	"github.com/theirongolddev/swipeplan/internal/model"
	"github.com/theirongolddev/swipeplan/internal/tui/components"
	"github.com/theirongolddev/swipeplan/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	planFieldStart = iota
	planFieldEnd
	planFieldTotal
	planFieldRemaining
	planFieldCount // sentinel
)

// planState tracks the plan tab's input form.
type planState struct {
	cursor  int
	editing bool
	input   textinput.Model
}

var planFieldLabels = [planFieldCount]string{
	"Semester start",
	"Semester end",
	"Total swipes",
	"Swipes left",
}

func (a App) planFieldValue(field int) string {
	switch field {
	case planFieldStart:
		return string(a.state.StartDate)
	case planFieldEnd:
		return string(a.state.EndDate)
	case planFieldTotal:
		return a.state.TotalSwipes
	case planFieldRemaining:
		return a.state.RemainingSwipes
	}
	return ""
}

func (a App) updatePlanKey(key string) (App, tea.Cmd, bool) {
	switch key {
	case "j", "down":
		if a.plan.cursor < planFieldCount-1 {
			a.plan.cursor++
		}
		return a, nil, true
	case "k", "up":
		if a.plan.cursor > 0 {
			a.plan.cursor--
		}
		return a, nil, true
	case "enter", "e":
		ti := textinput.New()
		ti.Width = 20
		switch a.plan.cursor {
		case planFieldStart, planFieldEnd:
			ti.Placeholder = "YYYYMMDD"
			ti.CharLimit = caldate.KeyLen
		default:
			ti.Placeholder = "0"
			ti.CharLimit = 6
		}
		ti.SetValue(a.planFieldValue(a.plan.cursor))
		ti.CursorEnd()
		ti.Focus()
		a.plan.input = ti
		a.plan.editing = true
		return a, ti.Cursor.BlinkCmd(), true
	}
	return a, nil, false
}

// updatePlanInput handles keys while a plan field is being edited. The
// typed text is stored as-is; an unparseable date only hides statistics.
func (a App) updatePlanInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		val := strings.TrimSpace(a.plan.input.Value())
		field := a.plan.cursor
		a.plan.editing = false
		return a.mutate(func(s *model.PlannerState) {
			switch field {
			case planFieldStart:
				s.StartDate = caldate.Key(val)
			case planFieldEnd:
				s.EndDate = caldate.Key(val)
			case planFieldTotal:
				s.TotalSwipes = val
			case planFieldRemaining:
				s.RemainingSwipes = val
			}
		})
	case "esc":
		a.plan.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.plan.input, cmd = a.plan.input.Update(msg)
	return a, cmd
}

func (a App) renderPlanTab(cw int) string {
	t := theme.Active
	var b strings.Builder

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	// Row 1: stat cards
	if s := a.stats; s != nil {
		balanceColor := t.GreenBright
		if s.ProjectedBalance != nil && *s.ProjectedBalance < 0 {
			balanceColor = t.Red
		}
		cards := []components.Stat{
			{Label: "Days used", Value: cli.FormatNumber(int64(s.UsedDays)), Note: "excl. days away"},
			{Label: "Days left", Value: cli.FormatNumber(int64(s.RemainingDays)), Note: "incl. today"},
			{Label: "Avg so far", Value: cli.FormatRate(s.AvgUsedPerDay), Note: "swipes / day"},
			{Label: "Budget", Value: cli.FormatRate(s.AvgRemainingPerDay), Note: "swipes / day left"},
			{Label: "At semester end", Value: cli.FormatBalance(s.ProjectedBalance), Note: "projected swipes", Color: balanceColor},
		}
		if a.isCompactLayout() {
			b.WriteString(components.StatCardRow(cards[:3], cw))
			b.WriteString("\n")
			b.WriteString(components.StatCardRow(cards[3:], cw))
		} else {
			b.WriteString(components.StatCardRow(cards, cw))
		}
		b.WriteString("\n")
	}

	// Row 2: inputs and summary side by side
	halves := components.LayoutRow(cw, 2)
	if a.isCompactLayout() {
		halves = []int{cw, cw}
	}

	var form strings.Builder
	for i := 0; i < planFieldCount; i++ {
		label := fmt.Sprintf("%-15s ", planFieldLabels[i]+":")
		if a.plan.editing && i == a.plan.cursor {
			form.WriteString(markerStyle.Render("▸ "))
			form.WriteString(accentStyle.Render(label))
			form.WriteString(a.plan.input.View())
		} else if i == a.plan.cursor {
			form.WriteString(markerStyle.Render("▸ "))
			form.WriteString(selectedLabelStyle.Render(label))
			form.WriteString(selectedStyle.Render(displayOr(a.planFieldValue(i), "(empty)")))
		} else {
			form.WriteString(labelStyle.Render("  " + label))
			form.WriteString(valueStyle.Render(displayOr(a.planFieldValue(i), "(empty)")))
		}
		form.WriteString("\n")
	}
	form.WriteString("\n")
	form.WriteString(dimStyle.Render("[j/k] select  [Enter] edit  [Esc] cancel"))

	var summary strings.Builder
	if a.stats == nil {
		summary.WriteString(warnStyle.Render(invalidRangeText(a.statsErr)))
		summary.WriteString("\n")
		summary.WriteString(dimStyle.Render("Dates are 8 digits: YYYYMMDD."))
	} else {
		a.writeSummary(&summary, components.CardInnerWidth(halves[1]))
	}

	formCard := components.ContentCard("Semester", form.String(), halves[0])
	summaryCard := components.ContentCard("Summary", summary.String(), halves[1])
	if a.isCompactLayout() {
		b.WriteString(formCard)
		b.WriteString("\n")
		b.WriteString(summaryCard)
	} else {
		b.WriteString(components.CardRow([]string{formCard, summaryCard}))
	}
	b.WriteString("\n")

	// Row 3: month breakdown
	if bars := monthBars(a.days); len(bars) > 0 {
		b.WriteString(components.ContentCard("Days by month",
			components.MonthBars(bars, components.CardInnerWidth(cw)), cw))
	}

	return b.String()
}

func (a App) writeSummary(b *strings.Builder, innerW int) {
	t := theme.Active
	s := a.stats

	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	noteStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Italic(true)

	line := func(label, value string) {
		b.WriteString(labelStyle.Render(fmt.Sprintf("  %-22s", label)))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
	}

	b.WriteString(sectionStyle.Render("Usage so far"))
	b.WriteString("\n")
	line("Swipes used", cli.FormatSwipes(s.UsedSwipes))
	line("Average per day", cli.FormatRate(s.AvgUsedPerDay))

	b.WriteString(sectionStyle.Render("Remaining"))
	b.WriteString("\n")
	line("Swipes left", cli.FormatSwipes(s.RemainingSwipes))
	line("Use at most per day", cli.FormatRate(s.AvgRemainingPerDay))

	total := s.UsedSwipes + s.RemainingSwipes
	if total > 0 && !math.IsNaN(total) {
		barW := innerW - 32
		if barW < 8 {
			barW = 8
		}
		note := fmt.Sprintf("%s of %s", cli.FormatSwipes(s.UsedSwipes), cli.FormatSwipes(total))
		b.WriteString(components.UsageBar("  Used", s.UsedSwipes/total, note, 6, barW))
		b.WriteString("\n")
	}

	b.WriteString(sectionStyle.Render("Projection"))
	b.WriteString("\n")
	if sentence, ok := cli.FormatProjection(s.ProjectedBalance); ok {
		b.WriteString(noteStyle.Render(wrapText(sentence, innerW)))
	} else {
		b.WriteString(labelStyle.Render("  No days left to project."))
	}
}

// monthBars groups the per-day breakdown by calendar month.
func monthBars(days []model.DayEntry) []components.MonthBar {
	var bars []components.MonthBar
	var cur caldate.CalendarDate
	for _, d := range days {
		month := d.Date.FirstOfMonth()
		if len(bars) == 0 || month != cur {
			cur = month
			bars = append(bars, components.MonthBar{Label: month.Time().Format("Jan 06")})
		}
		bar := &bars[len(bars)-1]
		switch d.Status {
		case model.DayUsed:
			bar.Used++
		case model.DayRemaining:
			bar.Remaining++
		case model.DayExcluded:
			bar.Excluded++
		}
	}
	return bars
}

func invalidRangeText(err error) string {
	if err == nil {
		return "No statistics."
	}
	if errors.Is(err, caldate.ErrInvalidDate) {
		return "Statistics unavailable: " + err.Error()
	}
	return err.Error()
}

func displayOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// wrapText wraps s at word boundaries to width columns.
func wrapText(s string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(s)
}
