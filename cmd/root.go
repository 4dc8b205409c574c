// Package cmd implements the swipeplan CLI commands.
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/theirongolddev/swipeplan/internal/caldate"
	"github.com/theirongolddev/swipeplan/internal/cli"
	"github.com/theirongolddev/swipeplan/internal/config"
	"github.com/theirongolddev/swipeplan/internal/model"
	"github.com/theirongolddev/swipeplan/internal/planner"
	"github.com/theirongolddev/swipeplan/internal/store"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	flagToday  string
	flagDB     string
	flagNoSave bool
	flagQuiet  bool
	flagPlain  bool
)

var rootCmd = &cobra.Command{
	Use:   "swipeplan",
	Short: "Meal swipe budget planner",
	Long:  "Plan your meal swipes over a semester: days left, swipes per day, and where your pace leaves you.",
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagPlain || !term.IsTerminal(int(os.Stdout.Fd())) {
			lipgloss.SetColorProfile(termenv.Ascii)
		}
	},
	RunE:         runSummary,
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagToday, "today", "", "Reference date as YYYYMMDD (default: SWIPEPLAN_TODAY or the local date)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "State database path (default: $XDG_DATA_HOME/swipeplan/state.db)")
	rootCmd.PersistentFlags().BoolVar(&flagNoSave, "no-save", false, "Read saved state but never write it")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().BoolVar(&flagPlain, "plain", false, "Disable colors")
}

// stateStore is what commands need from persistence.
type stateStore interface {
	planner.StateStore
	UpdatedAt(ctx context.Context, key string) (time.Time, bool, error)
}

// session is the shared setup used by all commands.
type session struct {
	cfg      config.Config
	catalog  []model.HolidayDefinition
	defaults planner.Defaults
	today    caldate.CalendarDate
	store    stateStore
	dbPath   string
	quiet    bool
	close    func() error
}

// openSession loads config, the holiday catalog and the state store.
// A state database that cannot be opened is replaced by an in-memory store
// so read-only commands still work.
func openSession() (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	catalog, err := config.Catalog(cfg)
	if err != nil {
		return nil, fmt.Errorf("loading holidays: %w", err)
	}

	today, err := resolveToday(flagToday, config.TodayOverride())
	if err != nil {
		return nil, err
	}

	s := &session{
		cfg:      cfg,
		catalog:  catalog,
		defaults: defaultsFromConfig(cfg.Planner),
		today:    today,
		quiet:    flagQuiet || cfg.General.Quiet,
		close:    func() error { return nil },
	}

	s.dbPath = flagDB
	if s.dbPath == "" {
		s.dbPath = config.StateDBPath(cfg)
	}

	db, err := store.Open(s.dbPath)
	if err != nil {
		s.warnf("State database unavailable, changes will not be kept: %v", err)
		s.store = store.NewMemory()
		return s, nil
	}

	if flagNoSave {
		// Copy the saved blob into memory so writes never reach disk.
		mem, err := snapshot(db)
		_ = db.Close()
		if err != nil {
			s.warnf("Could not read saved state: %v", err)
		}
		s.store = mem
		return s, nil
	}

	s.store = db
	s.close = db.Close
	return s, nil
}

func snapshot(db *store.DB) (*store.Memory, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	mem := store.NewMemory()
	blob, err := db.Load(ctx, planner.StateKey)
	if err != nil || blob == nil {
		return mem, err
	}
	return mem, mem.Save(ctx, planner.StateKey, blob)
}

// resolveToday picks the reference date: the flag, then the environment,
// then the local date.
func resolveToday(flag, env string) (caldate.CalendarDate, error) {
	for _, v := range []string{flag, env} {
		if v == "" {
			continue
		}
		d, err := caldate.Parse(caldate.Key(v))
		if err != nil {
			return caldate.CalendarDate{}, fmt.Errorf("reference date: %w", err)
		}
		return d, nil
	}
	return caldate.Today(), nil
}

// defaultsFromConfig fills unset planner defaults from the built-in ones.
func defaultsFromConfig(pc config.PlannerConfig) planner.Defaults {
	def := planner.BuiltinDefaults
	if pc.DefaultStart != "" {
		def.StartDate = caldate.Key(pc.DefaultStart)
	}
	if pc.DefaultEnd != "" {
		def.EndDate = caldate.Key(pc.DefaultEnd)
	}
	if pc.DefaultTotal != "" {
		def.TotalSwipes = pc.DefaultTotal
	}
	if pc.DefaultRemaining != "" {
		def.RemainingSwipes = pc.DefaultRemaining
	}
	return def
}

// loadState reads the planner state, reporting (not failing on) anything
// that had to be replaced by defaults.
func (s *session) loadState(ctx context.Context) model.PlannerState {
	st, warn := planner.LoadState(ctx, s.store, s.defaults, s.catalog)
	if warn != nil {
		s.warnf("Saved plan unreadable, using defaults: %v", warn)
	}
	return st
}

func (s *session) saveState(ctx context.Context, st model.PlannerState) error {
	if err := planner.SaveState(ctx, s.store, st); err != nil {
		return fmt.Errorf("saving plan: %w", err)
	}
	if flagNoSave {
		s.infof("Not saved (--no-save)")
	}
	return nil
}

// savedAt describes the last save for footers.
func (s *session) savedAt(ctx context.Context) string {
	t, ok, err := s.store.UpdatedAt(ctx, planner.StateKey)
	if err != nil {
		return cli.FormatSaved(time.Time{}, false)
	}
	return cli.FormatSaved(t, ok)
}

func (s *session) infof(format string, args ...any) {
	if s.quiet {
		return
	}
	fmt.Fprintf(os.Stderr, "  "+format+"\n", args...)
}

func (s *session) warnf(format string, args ...any) {
	if s.quiet {
		return
	}
	fmt.Fprint(os.Stderr, cli.RenderWarning(fmt.Sprintf(format, args...)))
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, 10*time.Second)
}
