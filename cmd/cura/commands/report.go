package commands

import (
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/meridios/cura/display"
	"github.com/meridios/cura/errors"
	"github.com/meridios/cura/logger"
	"github.com/meridios/cura/report"
)

// ReportCmd represents the report command
var ReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Inspect stored run reports",
	Long: `Inspect the run history stored in the local database.

Every apply and plan run writes its full report to the history, keyed
by run ID. Subcommands list recent runs, show a single report and
prune old history.

Examples:
  cura report ls                    # 20 most recent runs
  cura report show <run-id>         # Full report for one run
  cura report prune --keep-days 30  # Drop runs older than 30 days`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var reportLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List recent runs",
	Long: `List recent runs, newest first.

Examples:
  cura report ls               # 20 most recent runs
  cura report ls --limit 50    # Show up to 50 runs
  cura report ls --json        # Machine-readable list`,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		return runReportLs(cmd, limit)
	},
}

var reportShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show the full report for one run",
	Long: `Show the full report for one run, including every per-record outcome.

Example:
  cura report show 2f1c9a34-97e1-4a11-bd40-5f2d54c0a1be`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReportShow(cmd, args[0])
	},
}

var reportPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete runs older than the retention window",
	Long: `Delete runs whose start time is older than the retention window.

Example:
  cura report prune --keep-days 30`,
	RunE: func(cmd *cobra.Command, args []string) error {
		keepDays, _ := cmd.Flags().GetInt("keep-days")
		return runReportPrune(keepDays)
	},
}

func init() {
	reportLsCmd.Flags().Int("limit", 20, "Maximum number of runs to display")
	reportLsCmd.Flags().Bool("json", false, "Output the run list as JSON")
	reportShowCmd.Flags().Bool("json", false, "Output the report as JSON")
	reportPruneCmd.Flags().Int("keep-days", 30, "Keep runs newer than this many days")

	ReportCmd.AddCommand(reportLsCmd)
	ReportCmd.AddCommand(reportShowCmd)
	ReportCmd.AddCommand(reportPruneCmd)
}

func runReportLs(cmd *cobra.Command, limit int) error {
	database, err := openDatabase("")
	if err != nil {
		return err
	}
	defer database.Close()

	store := report.NewStore(database, logger.Logger)
	runs, err := store.ListRuns(limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(runs)
	}

	if len(runs) == 0 {
		pterm.Info.Println("No runs recorded yet")
		return nil
	}

	fmt.Printf("%-36s %-17s %-8s %-8s %-7s %s\n", "RUN ID", "STARTED", "MODE", "RECORDS", "FAILED", "SUCCESS")
	fmt.Printf("%-36s %-17s %-8s %-8s %-7s %s\n", "------", "-------", "----", "-------", "------", "-------")
	for _, run := range runs {
		mode := "live"
		if run.DryRun {
			mode = "dry run"
		}
		fmt.Printf("%-36s %-17s %-8s %-8d %-7d %.1f%%\n",
			run.ID,
			run.StartedAt.Format("2006-01-02 15:04"),
			mode,
			run.Summary.Processed,
			run.Summary.Failed,
			run.Summary.SuccessRate*100)
	}
	fmt.Printf("\nTotal: %d run(s)\n", len(runs))
	return nil
}

func runReportShow(cmd *cobra.Command, runID string) error {
	database, err := openDatabase("")
	if err != nil {
		return err
	}
	defer database.Close()

	store := report.NewStore(database, logger.Logger)
	rep, err := store.GetRun(runID)
	if err != nil {
		return fmt.Errorf("failed to load run %s: %w", runID, err)
	}

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(rep)
	}

	renderSummary(rep)
	renderEntries(rep)
	return nil
}

func runReportPrune(keepDays int) error {
	if keepDays < 1 {
		return errors.Wrapf(errors.ErrInvalidInput, "keep-days must be >= 1, got %d", keepDays)
	}

	database, err := openDatabase("")
	if err != nil {
		return err
	}
	defer database.Close()

	store := report.NewStore(database, logger.Logger)
	cutoff := time.Now().UTC().AddDate(0, 0, -keepDays)
	removed, err := store.PruneOlderThan(cutoff)
	if err != nil {
		return fmt.Errorf("failed to prune runs: %w", err)
	}

	fmt.Printf("Pruned %d run(s) older than %s\n", removed, cutoff.Format("2006-01-02"))
	return nil
}
