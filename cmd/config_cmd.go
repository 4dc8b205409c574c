package cmd

import (
	"fmt"

	"github.com/theirongolddev/swipeplan/internal/cli"
	"github.com/theirongolddev/swipeplan/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Printf("  State file:  %s\n", config.StateDBPath(cfg))
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Quiet: %v\n", cfg.General.Quiet)
	fmt.Println()

	def := defaultsFromConfig(cfg.Planner)
	fmt.Println("  [Planner defaults]")
	fmt.Printf("    Start:     %s\n", def.StartDate)
	fmt.Printf("    End:       %s\n", def.EndDate)
	fmt.Printf("    Total:     %s\n", def.TotalSwipes)
	fmt.Printf("    Remaining: %s\n", def.RemainingSwipes)
	fmt.Println()

	fmt.Println("  [Calendar]")
	fmt.Printf("    Week start: %s\n", cfg.Calendar.WeekStart)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Holidays]")
	catalog, err := config.Catalog(cfg)
	switch {
	case err != nil:
		fmt.Printf("    Invalid: %v\n", err)
	case len(cfg.Holidays) == 0:
		fmt.Printf("    Built-in catalog (%s)\n", cli.FormatNumber(int64(len(catalog))))
	default:
		fmt.Printf("    Custom catalog (%s)\n", cli.FormatNumber(int64(len(catalog))))
	}
	for _, h := range catalog {
		fmt.Printf("      %s\n", cli.FormatHoliday(h.Label, h.Days()))
	}
	fmt.Println()

	if v := config.TodayOverride(); v != "" {
		fmt.Printf("  SWIPEPLAN_TODAY=%s overrides the reference date.\n\n", v)
	}

	fmt.Println("  Run `swipeplan setup` to reconfigure.")
	return nil
}
