package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/theirongolddev/swipeplan/internal/caldate"
	"github.com/theirongolddev/swipeplan/internal/config"
	"github.com/theirongolddev/swipeplan/internal/planner"
	"github.com/theirongolddev/swipeplan/internal/tui"
	"github.com/theirongolddev/swipeplan/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive planner with calendar",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	if path := os.Getenv("SWIPEPLAN_DEBUG"); path != "" {
		f, err := tea.LogToFile(path, "swipeplan")
		if err != nil {
			return fmt.Errorf("debug log: %w", err)
		}
		defer f.Close()
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.close() }()

	theme.SetActive(s.cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	if !flagPlain {
		lipgloss.SetColorProfile(termenv.TrueColor)
	}

	opts := tui.Options{
		Store: s.store,
		SavedAt: func(ctx context.Context) (time.Time, bool, error) {
			return s.store.UpdatedAt(ctx, planner.StateKey)
		},
		Config:     s.cfg,
		ConfigPath: config.Path(),
		DBPath:     s.dbPath,
		Catalog:    s.catalog,
		Defaults:   s.defaults,
		Today:      s.today,
		NeedSetup:  !config.Exists(),
	}
	if flagToday == "" && config.TodayOverride() == "" {
		opts.Clock = caldate.Today
	}
	p := tea.NewProgram(tui.NewApp(opts), tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
