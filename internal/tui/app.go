// Package tui provides the interactive Bubble Tea dashboard for swipeplan.
package tui

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/theirongolddev/swipeplan/internal/caldate"
	"github.com/theirongolddev/swipeplan/internal/cli"
	"github.com/theirongolddev/swipeplan/internal/config"
	"github.com/theirongolddev/swipeplan/internal/model"
	"github.com/theirongolddev/swipeplan/internal/planner"
	"github.com/theirongolddev/swipeplan/internal/tui/components"
	"github.com/theirongolddev/swipeplan/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// StateLoadedMsg is sent when the saved planner state has been read.
type StateLoadedMsg struct {
	State   model.PlannerState
	Warn    error // what loading recovered from, if anything
	SavedAt time.Time
	HasSave bool
}

// StateSavedMsg is sent when a background save finishes.
type StateSavedMsg struct {
	Err error
	At  time.Time
}

// clockTickMsg asks the app to re-read its clock.
type clockTickMsg struct{}

// SavedAtFunc reports when the state was last written.
type SavedAtFunc func(ctx context.Context) (time.Time, bool, error)

// Options configure a new App.
type Options struct {
	Store      planner.StateStore
	SavedAt    SavedAtFunc // optional
	Config     config.Config
	ConfigPath string
	DBPath     string
	Catalog    []model.HolidayDefinition
	Defaults   planner.Defaults
	Today      caldate.CalendarDate
	NeedSetup  bool

	// Clock, when set, is polled so the used/remaining split follows the
	// date while the dashboard stays open. Leave nil to pin Today.
	Clock func() caldate.CalendarDate
}

// App is the root Bubble Tea model.
type App struct {
	// Planner data
	state    model.PlannerState
	catalog  []model.HolidayDefinition
	defaults planner.Defaults
	today    caldate.CalendarDate
	clock    func() caldate.CalendarDate
	memo     *planner.Memo
	stats    *model.PlanStatistics
	statsErr error
	days     []model.DayEntry
	loaded   bool

	// Persistence
	store    planner.StateStore
	savedAt  SavedAtFunc
	saving   bool
	dirty    bool // state changed while a save was in flight
	lastSave time.Time
	hasSave  bool
	saveErr  error
	loadWarn error

	cfg        config.Config
	configPath string
	dbPath     string

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Per-tab state
	plan     planState
	holidays holidaysState
	cal      calendarState
	dayList  dayListState
	settings settingsState

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals SetupValues
	needSetup bool

	spinner spinner.Model
}

const (
	minTerminalWidth = 60
	compactWidth     = 100
	maxContentWidth  = 140

	minContentHeight = 5 // minimum content area height

	saveTimeout = 5 * time.Second
	clockPeriod = time.Minute
)

const (
	tabPlan = iota
	tabHolidays
	tabCalendar
	tabDays
	tabSettings
)

// NewApp creates a new TUI app model.
func NewApp(opts Options) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	today := opts.Today
	if today.IsZero() && opts.Clock != nil {
		today = opts.Clock()
	}
	if today.IsZero() {
		today = caldate.Today()
	}

	return App{
		catalog:    opts.Catalog,
		defaults:   opts.Defaults,
		today:      today,
		clock:      opts.Clock,
		memo:       &planner.Memo{},
		store:      opts.Store,
		savedAt:    opts.SavedAt,
		cfg:        opts.Config,
		configPath: opts.ConfigPath,
		dbPath:     opts.DBPath,
		needSetup:  opts.NeedSetup,
		spinner:    sp,
		cal:        newCalendarState(today, opts.Config.Calendar.WeekStart),
		settings:   settingsState{confirm: -1},
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadStateCmd(a.store, a.savedAt, a.defaults, a.catalog),
		a.spinner.Tick,
		a.clockTick(),
	)
}

// clockTick schedules the next clock check, or nothing when the date is pinned.
func (a App) clockTick() tea.Cmd {
	if a.clock == nil {
		return nil
	}
	return tea.Tick(clockPeriod, func(time.Time) tea.Msg { return clockTickMsg{} })
}

// recompute refreshes statistics and the per-day breakdown from state.
func (a *App) recompute() {
	in := planner.InputFromState(a.state, a.catalog, a.today)

	res, err := a.memo.Evaluate(in)
	if err != nil {
		a.stats, a.statsErr = nil, err
		a.days = nil
	} else {
		stats := res.Stats
		a.stats, a.statsErr = &stats, nil
		a.days = res.Days
	}

	if a.dayList.cursor >= len(a.days) {
		a.dayList.cursor = len(a.days) - 1
	}
	if a.dayList.cursor < 0 {
		a.dayList.cursor = 0
	}
	a.holidays.clamp(len(a.visibleHolidays()))
}

// mutate applies fn to the planner state, recomputes and schedules a save.
func (a App) mutate(fn func(s *model.PlannerState)) (App, tea.Cmd) {
	fn(&a.state)
	a.recompute()
	return a.persist()
}

// persist schedules a save of the current state. Saves are serialized:
// a change made while one is in flight is written when it completes.
func (a App) persist() (App, tea.Cmd) {
	if a.saving {
		a.dirty = true
		return a, nil
	}
	a.saving = true
	a.dirty = false
	return a, saveStateCmd(a.store, a.state.Clone())
}

func (a App) visibleHolidays() []model.HolidayDefinition {
	return planner.VisibleHolidays(a.catalog, a.state.StartDate, a.state.EndDate)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || (a.needSetup && a.setupForm != nil) {
			return a, nil
		}
		return a.updateMouse(msg)

	case tea.KeyMsg:
		return a.updateKey(msg)

	case StateLoadedMsg:
		a.state = msg.State
		a.loadWarn = msg.Warn
		if msg.Warn != nil {
			log.Printf("loading state: %v", msg.Warn)
		}
		a.lastSave, a.hasSave = msg.SavedAt, msg.HasSave
		a.loaded = true
		a.recompute()
		a.cal.jumpTo(a.today)

		if a.needSetup {
			a.setupVals = NewSetupValues(a.cfg, a.state)
			a.setupForm = NewSetupForm(&a.setupVals, a.catalog)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, nil

	case StateSavedMsg:
		a.saving = false
		a.saveErr = msg.Err
		if msg.Err != nil {
			log.Printf("saving state: %v", msg.Err)
		} else {
			a.lastSave, a.hasSave = msg.At, true
		}
		if a.dirty {
			return a.persist()
		}
		return a, nil

	case clockTickMsg:
		if a.clock == nil {
			return a, nil
		}
		if now := a.clock(); !now.IsZero() && now != a.today {
			a.today = now
			if a.loaded {
				a.recompute()
			}
		}
		return a, a.clockTick()

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages to the active text input or setup form.
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.plan.editing {
		var cmd tea.Cmd
		a.plan.input, cmd = a.plan.input.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}
	if !a.loaded {
		return a, nil
	}

	// First-run setup wizard intercepts all keys
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	// Plan inputs capture typing while editing
	if a.activeTab == tabPlan && a.plan.editing {
		return a.updatePlanInput(msg)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	var (
		handled bool
		cmd     tea.Cmd
	)
	switch a.activeTab {
	case tabPlan:
		a, cmd, handled = a.updatePlanKey(key)
	case tabHolidays:
		a, cmd, handled = a.updateHolidaysKey(key)
	case tabCalendar:
		a, cmd, handled = a.updateCalendarKey(key)
	case tabDays:
		a, cmd, handled = a.updateDaysKey(key)
	case tabSettings:
		a, cmd, handled = a.updateSettingsKey(key)
	}
	if handled {
		return a, cmd
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
	case "shift+tab":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
	case "1", "2", "3", "4", "5":
		a.activeTab = int(key[0] - '1')
	default:
		if len(msg.Runes) == 1 {
			if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
				a.activeTab = idx
			}
		}
	}
	return a, nil
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if a.activeTab == tabDays {
			a.dayList.move(-1, len(a.days))
		}
		return a, nil

	case tea.MouseButtonWheelDown:
		if a.activeTab == tabDays {
			a.dayList.move(1, len(a.days))
		}
		return a, nil

	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return a, nil
		}
		// Tab bar is the first line
		if msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 && tab < len(components.Tabs) {
				a.activeTab = tab
			}
		}
		return a, nil
	}
	return a, nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		a.setupVals.ApplyConfig(&a.cfg)
		theme.SetActive(a.cfg.Appearance.Theme)
		a.cal.setWeekStart(a.cfg.Calendar.WeekStart)
		a.settings.saveErr = config.SaveTo(a.configPath, a.cfg)
		a.needSetup = false
		a.setupForm = nil
		var save tea.Cmd
		a, save = a.mutate(a.setupVals.ApplyState)
		return a, save

	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  swipeplan needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	spinnerStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ swipeplan"))
	b.WriteString(subtitleStyle.Render(" · Meal Swipe Planner"))
	b.WriteString("\n\n")
	b.WriteString(spinnerStyle.Render(a.spinner.View()))
	b.WriteString(subtitleStyle.Render(" Loading saved plan..."))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	sectionStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Cyan).
		Background(t.Surface).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"p y c d x", "Jump to tab"},
			{"Tab S-Tab", "Next / Previous tab"},
			{"j k", "Move in lists"},
		}},
		{"Plan & Holidays", []struct{ key, desc string }{
			{"Enter", "Edit field / toggle holiday"},
			{"Space", "Toggle holiday"},
			{"a n", "Select all / none"},
		}},
		{"Calendar", []struct{ key, desc string }{
			{"h j k l", "Move cursor by day / week"},
			{"[ ]", "Previous / Next month"},
			{"t", "Jump to today"},
			{"Space", "Toggle day off"},
		}},
		{"General", []struct{ key, desc string }{
			{"Esc", "Cancel edit"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}
	for i, sec := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) statusText() (saved, warn string) {
	saved = cli.FormatSaved(a.lastSave, a.hasSave)
	switch {
	case a.saveErr != nil:
		warn = "save failed: " + a.saveErr.Error()
	case a.loadWarn != nil:
		warn = "saved plan unreadable, using defaults"
	}
	return saved, warn
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)

	saved, warn := a.statusText()
	statusBar := components.RenderStatusBar(w, a.today.String(), saved, a.saving, warn)

	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch a.activeTab {
	case tabPlan:
		content = a.renderPlanTab(cw)
	case tabHolidays:
		content = a.renderHolidaysTab(cw)
	case tabCalendar:
		content = a.renderCalendarTab(cw)
	case tabDays:
		content = a.renderDaysTab(cw, contentH)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Persistence commands ───────────────────────────────────────

func loadStateCmd(store planner.StateStore, savedAt SavedAtFunc, def planner.Defaults, catalog []model.HolidayDefinition) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()

		s, warn := planner.LoadState(ctx, store, def, catalog)
		msg := StateLoadedMsg{State: s, Warn: warn}
		if savedAt != nil {
			if at, ok, err := savedAt(ctx); err == nil {
				msg.SavedAt, msg.HasSave = at, ok
			}
		}
		return msg
	}
}

func saveStateCmd(store planner.StateStore, s model.PlannerState) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()

		err := planner.SaveState(ctx, store, s)
		return StateSavedMsg{Err: err, At: time.Now()}
	}
}

// ─── Helpers ────────────────────────────────────────────────────

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)

		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
