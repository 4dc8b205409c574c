package cmd

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/swipeplan/internal/caldate"
	"github.com/theirongolddev/swipeplan/internal/model"
	"github.com/theirongolddev/swipeplan/internal/planner"

	"github.com/spf13/cobra"
)

var (
	flagSetStart     string
	flagSetEnd       string
	flagSetTotal     string
	flagSetRemaining string
)

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Change the semester dates or swipe counts",
	Example: `  swipeplan set --start 20250824 --end 20251222
  swipeplan set --remaining 42`,
	RunE: runSet,
}

func init() {
	setCmd.Flags().StringVar(&flagSetStart, "start", "", "First day of the semester (YYYYMMDD)")
	setCmd.Flags().StringVar(&flagSetEnd, "end", "", "Last day of the semester (YYYYMMDD)")
	setCmd.Flags().StringVar(&flagSetTotal, "total", "", "Swipes in the meal plan")
	setCmd.Flags().StringVar(&flagSetRemaining, "remaining", "", "Swipes left right now")
	rootCmd.AddCommand(setCmd)
}

func runSet(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	if !flags.Changed("start") && !flags.Changed("end") && !flags.Changed("total") && !flags.Changed("remaining") {
		return errors.New("nothing to set: pass --start, --end, --total or --remaining")
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.close() }()

	ctx, cancel := commandContext(cmd)
	defer cancel()

	st := s.loadState(ctx)
	if err := applySet(&st, flags.Changed); err != nil {
		return err
	}
	if err := s.saveState(ctx, st); err != nil {
		return err
	}

	fmt.Print(renderSummary(ctx, s, st))
	return nil
}

// applySet copies the changed flags into st after validating them.
func applySet(st *model.PlannerState, changed func(string) bool) error {
	if changed("start") {
		k, err := parseDateArg(flagSetStart)
		if err != nil {
			return fmt.Errorf("--start: %w", err)
		}
		st.StartDate = k
	}
	if changed("end") {
		k, err := parseDateArg(flagSetEnd)
		if err != nil {
			return fmt.Errorf("--end: %w", err)
		}
		st.EndDate = k
	}
	if changed("total") {
		v, err := swipeArg(flagSetTotal)
		if err != nil {
			return fmt.Errorf("--total: %w", err)
		}
		st.TotalSwipes = v
	}
	if changed("remaining") {
		v, err := swipeArg(flagSetRemaining)
		if err != nil {
			return fmt.Errorf("--remaining: %w", err)
		}
		st.RemainingSwipes = v
	}
	return nil
}

func parseDateArg(v string) (caldate.Key, error) {
	d, err := caldate.Parse(caldate.Key(strings.TrimSpace(v)))
	if err != nil {
		return "", err
	}
	return d.Key(), nil
}

func swipeArg(v string) (string, error) {
	v = strings.TrimSpace(v)
	if math.IsNaN(planner.ParseSwipes(v)) {
		return "", fmt.Errorf("%q is not a number of swipes", v)
	}
	return v, nil
}
