package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/swipeplan/internal/config"
	"github.com/theirongolddev/swipeplan/internal/tui"
	"github.com/theirongolddev/swipeplan/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive setup of your semester and preferences",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.close() }()

	ctx, cancel := commandContext(cmd)
	defer cancel()

	st := s.loadState(ctx)
	theme.SetActive(s.cfg.Appearance.Theme)

	vals := tui.NewSetupValues(s.cfg, st)
	if err := tui.NewSetupForm(&vals, s.catalog).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled, nothing changed.")
			return nil
		}
		return fmt.Errorf("setup form: %w", err)
	}

	vals.ApplyConfig(&s.cfg)
	if err := config.Save(s.cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	vals.ApplyState(&st)
	if err := s.saveState(ctx, st); err != nil {
		return err
	}

	fmt.Printf("\n  Saved to %s\n", config.Path())
	fmt.Print(renderSummary(ctx, s, st))
	return nil
}
