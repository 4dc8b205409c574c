package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/swipeplan/internal/cli"
	"github.com/theirongolddev/swipeplan/internal/model"
	"github.com/theirongolddev/swipeplan/internal/planner"

	"github.com/spf13/cobra"
)

var flagDailyStatus string

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Day-by-day breakdown of the semester",
	RunE:  runDaily,
}

func init() {
	dailyCmd.Flags().StringVar(&flagDailyStatus, "status", "", "Only show days with this status (used, remaining, away)")
	rootCmd.AddCommand(dailyCmd)
}

func runDaily(cmd *cobra.Command, _ []string) error {
	filter, err := parseStatusFilter(flagDailyStatus)
	if err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.close() }()

	ctx, cancel := commandContext(cmd)
	defer cancel()

	st := s.loadState(ctx)
	days, err := planner.PartitionDays(planner.InputFromState(st, s.catalog, s.today))
	if err != nil {
		return fmt.Errorf("semester dates: %w", err)
	}

	rows := make([][]string, 0, len(days))
	for _, d := range days {
		if filter != nil && d.Status != *filter {
			continue
		}
		date := d.Date.String()
		if d.Date == s.today {
			date += " *"
		}
		rows = append(rows, []string{
			date,
			cli.FormatDayOfWeek(int(d.Date.Weekday())),
			d.Status.String(),
			strings.Join(d.Reasons, ", "),
		})
	}

	if len(rows) == 0 {
		fmt.Println("\n  No days match.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("DAILY  %s - %s", st.StartDate, st.EndDate)))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Day", "Status", "Away for"},
		Rows:    rows,
	}))
	return nil
}

func parseStatusFilter(v string) (*model.DayStatus, error) {
	var st model.DayStatus
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "":
		return nil, nil
	case "used":
		st = model.DayUsed
	case "remaining":
		st = model.DayRemaining
	case "away", "excluded":
		st = model.DayExcluded
	default:
		return nil, fmt.Errorf("unknown status %q (want used, remaining or away)", v)
	}
	return &st, nil
}
