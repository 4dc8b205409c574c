package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/theirongolddev/swipeplan/internal/caldate"
	"github.com/theirongolddev/swipeplan/internal/cli"
	"github.com/theirongolddev/swipeplan/internal/model"
	"github.com/theirongolddev/swipeplan/internal/source"

	"github.com/spf13/cobra"
)

var excludeCmd = &cobra.Command{
	Use:     "exclude",
	Aliases: []string{"away"},
	Short:   "Manage individual days you will be away",
	RunE:    runExcludeList,
}

var excludeAddCmd = &cobra.Command{
	Use:   "add YYYYMMDD...",
	Short: "Mark days as away",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editCustomDates(cmd, func(st *model.PlannerState, s *session) error {
			keys := make([]caldate.Key, len(args))
			for i, a := range args {
				keys[i] = caldate.Key(a)
			}
			rejected := st.AddCustomDates(keys...)
			for _, k := range rejected {
				s.warnf("Skipped %q: not a YYYYMMDD date", string(k))
			}
			if len(rejected) == len(keys) {
				return errors.New("no valid dates given")
			}
			return nil
		})
	},
}

var excludeRemoveCmd = &cobra.Command{
	Use:     "remove YYYYMMDD...",
	Aliases: []string{"rm"},
	Short:   "Unmark days",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editCustomDates(cmd, func(st *model.PlannerState, s *session) error {
			for _, a := range args {
				if !st.RemoveCustomDate(caldate.Key(a)) {
					s.warnf("%s was not marked", a)
				}
			}
			return nil
		})
	},
}

var excludeImportCmd = &cobra.Command{
	Use:   "import PATH...",
	Short: "Mark every date listed in files or directories",
	Long: "Reads date lists (.txt, .dates or .csv) with one YYYYMMDD key per line or\n" +
		"comma separated. Text after # is ignored. Directories are scanned recursively.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editCustomDates(cmd, func(st *model.PlannerState, s *session) error {
			res := source.ParsePaths(args...)
			if res.Err != nil {
				return fmt.Errorf("reading date list: %w", res.Err)
			}
			for _, le := range res.Errors {
				s.warnf("%v", le)
			}
			before := len(st.CustomDates)
			st.AddCustomDates(res.Keys...)
			s.infof("Imported %s (%s new)",
				cli.FormatDays(len(res.Keys)), cli.FormatNumber(int64(len(st.CustomDates)-before)))
			return nil
		})
	},
}

var excludeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Unmark every individually picked day",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return editCustomDates(cmd, func(st *model.PlannerState, _ *session) error {
			st.ClearCustomDates()
			return nil
		})
	},
}

var excludeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List individually picked days",
	Args:  cobra.NoArgs,
	RunE:  runExcludeList,
}

func init() {
	excludeCmd.AddCommand(excludeAddCmd, excludeRemoveCmd, excludeImportCmd, excludeClearCmd, excludeListCmd)
	rootCmd.AddCommand(excludeCmd)
}

// editCustomDates loads the state, applies fn, saves and lists the result.
func editCustomDates(cmd *cobra.Command, fn func(st *model.PlannerState, s *session) error) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.close() }()

	ctx, cancel := commandContext(cmd)
	defer cancel()

	st := s.loadState(ctx)
	if err := fn(&st, s); err != nil {
		return err
	}
	if err := s.saveState(ctx, st); err != nil {
		return err
	}

	fmt.Print(renderCustomDates(s, st))
	return nil
}

func runExcludeList(cmd *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.close() }()

	ctx, cancel := commandContext(cmd)
	defer cancel()

	fmt.Print(renderCustomDates(s, s.loadState(ctx)))
	return nil
}

func renderCustomDates(s *session, st model.PlannerState) string {
	if len(st.CustomDates) == 0 {
		return "\n" + cli.RenderNote("No individual days marked. Add some with `swipeplan exclude add YYYYMMDD`.")
	}

	start, errStart := caldate.Parse(st.StartDate)
	end, errEnd := caldate.Parse(st.EndDate)

	keys := st.CustomDates.Sorted()
	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		d, err := caldate.Parse(k)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  skipping unreadable date %q\n", string(k))
			continue
		}
		where := "outside"
		if errStart == nil && errEnd == nil && d.InRange(start, end) {
			where = "in semester"
		}
		when := "ahead"
		if d.Before(s.today) {
			when = "past"
		}
		rows = append(rows, []string{
			string(k),
			cli.FormatDayOfWeek(int(d.Weekday())),
			where,
			when,
		})
	}

	return "\n" + cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Days away (%s)", cli.FormatNumber(int64(len(rows)))),
		Headers: []string{"Date", "Day", "Semester", "When"},
		Rows:    rows,
	})
}
