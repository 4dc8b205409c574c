package cmd

import (
	"fmt"

	"github.com/theirongolddev/swipeplan/internal/planner"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var flagResetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default semester, swipes and holidays",
	RunE:  runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&flagResetYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, _ []string) error {
	if !flagResetYes {
		confirmed := false
		err := huh.NewConfirm().
			Title("Reset your plan?").
			Description("Dates, swipe counts, holidays and days away go back to the defaults.").
			Affirmative("Reset").
			Negative("Cancel").
			Value(&confirmed).
			Run()
		if err != nil || !confirmed {
			fmt.Println("  Nothing changed.")
			return nil
		}
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.close() }()

	ctx, cancel := commandContext(cmd)
	defer cancel()

	st := planner.DefaultState(s.defaults, s.catalog)
	if err := s.saveState(ctx, st); err != nil {
		return err
	}

	s.infof("Plan reset to defaults")
	fmt.Print(renderSummary(ctx, s, st))
	return nil
}
