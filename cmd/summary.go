package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/theirongolddev/swipeplan/internal/caldate"
	"github.com/theirongolddev/swipeplan/internal/cli"
	"github.com/theirongolddev/swipeplan/internal/model"
	"github.com/theirongolddev/swipeplan/internal/planner"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Days, swipes and pace for the semester",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.close() }()

	ctx, cancel := commandContext(cmd)
	defer cancel()

	st := s.loadState(ctx)
	fmt.Print(renderSummary(ctx, s, st))
	return nil
}

// renderSummary formats the full plan report for st.
func renderSummary(ctx context.Context, s *session, st model.PlannerState) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(cli.RenderTitle("MEAL SWIPE PLAN"))
	b.WriteString("\n\n")

	stats := planner.Compute(st, s.catalog, s.today)

	semester := [][2]string{
		{"Start", semesterDate(st.StartDate)},
		{"End", semesterDate(st.EndDate)},
		{"Today", s.today.String()},
	}
	if stats != nil {
		semester = append(semester,
			[2]string{"Length", cli.FormatDays(stats.TotalDays)},
			[2]string{"Days away", cli.FormatDays(stats.ExcludedDays)},
		)
	}
	b.WriteString(cli.RenderSection("Semester", semester))
	b.WriteString("\n")

	if stats == nil {
		b.WriteString(cli.RenderWarning("The semester dates are not valid YYYYMMDD dates, so nothing can be computed."))
		b.WriteString(cli.RenderNote("Fix them with `swipeplan set --start YYYYMMDD --end YYYYMMDD`."))
		return b.String()
	}

	b.WriteString(cli.RenderTable(cli.Table{
		Headers: []string{"", "Used", "Remaining"},
		Rows: [][]string{
			{"Days", cli.FormatNumber(int64(stats.UsedDays)), cli.FormatNumber(int64(stats.RemainingDays))},
			{"Swipes", cli.FormatSwipes(stats.UsedSwipes), cli.FormatSwipes(stats.RemainingSwipes)},
			{"---"},
			{"Per day", cli.FormatRate(stats.AvgUsedPerDay), cli.FormatRate(stats.AvgRemainingPerDay)},
		},
	}))
	b.WriteString("\n")

	balance := cli.FormatBalance(stats.ProjectedBalance)
	b.WriteString(cli.RenderSection("Projection", [][2]string{
		{"End balance", cli.RenderBalance(balance, stats.ProjectedBalance)},
		{"Semester", cli.RenderProgressBar(stats.UsedDays, stats.UsedDays+stats.RemainingDays, 24)},
	}))
	if sentence, ok := cli.FormatProjection(stats.ProjectedBalance); ok {
		b.WriteString(cli.RenderNote(sentence))
	}
	b.WriteString("\n")

	visible := planner.VisibleHolidays(s.catalog, st.StartDate, st.EndDate)
	var away []string
	for _, h := range visible {
		if st.SelectedHolidays.Has(h.Label) {
			away = append(away, cli.FormatHoliday(h.Label, h.Days()))
		}
	}
	if len(away) > 0 {
		lines := make([][2]string, 0, len(away))
		for _, h := range away {
			lines = append(lines, [2]string{"•", h})
		}
		b.WriteString(cli.RenderSection("Away for", lines))
	}
	if n := len(st.CustomDates); n > 0 {
		b.WriteString(cli.RenderNote(fmt.Sprintf("Plus %s picked individually.", cli.FormatDays(n))))
	}
	if hidden := planner.HiddenSelections(s.catalog, st.SelectedHolidays, st.StartDate, st.EndDate); len(hidden) > 0 {
		b.WriteString(cli.RenderNote("Selected but outside the semester: " + strings.Join(hidden, ", ")))
	}

	b.WriteString("\n")
	b.WriteString(cli.RenderNote(s.savedAt(ctx)))
	return b.String()
}

// semesterDate shows a stored key with its weekday when it parses.
func semesterDate(k caldate.Key) string {
	d, err := caldate.Parse(k)
	if err != nil {
		return string(k) + " (invalid)"
	}
	return fmt.Sprintf("%s  %s", k, cli.FormatDate(d))
}
