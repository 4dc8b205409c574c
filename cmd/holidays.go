package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/swipeplan/internal/cli"
	"github.com/theirongolddev/swipeplan/internal/model"
	"github.com/theirongolddev/swipeplan/internal/planner"

	"github.com/spf13/cobra"
)

var (
	flagHolidaysAll  bool
	flagHolidaysNone bool
)

var holidaysCmd = &cobra.Command{
	Use:   "holidays",
	Short: "List holidays and which ones you will be away for",
	RunE:  runHolidays,
}

var holidaysToggleCmd = &cobra.Command{
	Use:   "toggle LABEL...",
	Short: "Select or deselect holidays by label",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runHolidaysToggle,
}

func init() {
	holidaysCmd.Flags().BoolVar(&flagHolidaysAll, "all", false, "Select every holiday")
	holidaysCmd.Flags().BoolVar(&flagHolidaysNone, "none", false, "Deselect every holiday")
	holidaysCmd.MarkFlagsMutuallyExclusive("all", "none")
	holidaysCmd.AddCommand(holidaysToggleCmd)
	rootCmd.AddCommand(holidaysCmd)
}

func runHolidays(cmd *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.close() }()

	ctx, cancel := commandContext(cmd)
	defer cancel()

	st := s.loadState(ctx)

	if flagHolidaysAll || flagHolidaysNone {
		st.SelectedHolidays = model.NewStringSet()
		if flagHolidaysAll {
			for _, h := range s.catalog {
				st.SelectedHolidays[h.Label] = struct{}{}
			}
		}
		if err := s.saveState(ctx, st); err != nil {
			return err
		}
	}

	fmt.Println()
	fmt.Print(renderHolidays(s.catalog, st))
	return nil
}

func runHolidaysToggle(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.close() }()

	ctx, cancel := commandContext(cmd)
	defer cancel()

	st := s.loadState(ctx)
	for _, arg := range args {
		label, err := matchHoliday(s.catalog, arg)
		if err != nil {
			return err
		}
		if st.ToggleHoliday(label) {
			s.infof("Selected %s", label)
		} else {
			s.infof("Deselected %s", label)
		}
	}
	if err := s.saveState(ctx, st); err != nil {
		return err
	}

	fmt.Println()
	fmt.Print(renderHolidays(s.catalog, st))
	return nil
}

// matchHoliday resolves a user-typed label: exact match first, then a
// unique case-insensitive prefix.
func matchHoliday(catalog []model.HolidayDefinition, arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	var matches []string
	for _, h := range catalog {
		if h.Label == arg {
			return h.Label, nil
		}
		if strings.HasPrefix(strings.ToLower(h.Label), strings.ToLower(arg)) {
			matches = append(matches, h.Label)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no holiday matches %q", arg)
	case 1:
		return matches[0], nil
	}
	return "", fmt.Errorf("ambiguous holiday %q: %s", arg, strings.Join(matches, ", "))
}

func renderHolidays(catalog []model.HolidayDefinition, st model.PlannerState) string {
	visible := model.NewStringSet()
	for _, h := range planner.VisibleHolidays(catalog, st.StartDate, st.EndDate) {
		visible[h.Label] = struct{}{}
	}

	rows := make([][]string, 0, len(catalog))
	for _, h := range catalog {
		mark := "[ ]"
		if st.SelectedHolidays.Has(h.Label) {
			mark = "[x]"
		}
		when := "in semester"
		if !visible.Has(h.Label) {
			when = "outside"
		}
		first, last := "", ""
		if len(h.Dates) > 0 {
			first, last = string(h.Dates[0]), string(h.Dates[len(h.Dates)-1])
		}
		rows = append(rows, []string{
			mark + " " + h.Label,
			first,
			last,
			cli.FormatDays(h.Days()),
			when,
		})
	}

	return cli.RenderTable(cli.Table{
		Title:   "Holidays away from campus",
		Headers: []string{"Holiday", "From", "To", "Length", "Semester"},
		Rows:    rows,
	})
}
