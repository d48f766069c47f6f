package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meridios/cura/cmd/cura/commands"
	"github.com/meridios/cura/logger"
	"github.com/meridios/cura/version"
)

var rootCmd = &cobra.Command{
	Use:   "cura",
	Short: "cura - Batch metadata curation for registry records",
	Long: `cura - Batch metadata curation for registry records.

cura reads tabular modification files, transforms column values into
registry metadata properties, merges them into each record's current
state and applies the result through the registry's API, one record at
a time.

Available commands:
  apply   - Execute a modification table against the registry
  plan    - Preview a modification table without writing
  fields  - List the column-to-property mappings
  report  - Inspect stored run reports
  config  - Manage cura configuration
  version - Show version information

Examples:
  cura plan changes.csv              # Preview what would change
  cura apply changes.csv             # Apply the changes
  cura fields title                  # Mappings mentioning "title"
  cura report ls                     # List recent runs
  cura config show                   # Show current configuration`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize global logger before any command runs
		verbosity, _ := cmd.Flags().GetCount("verbose")
		if err := logger.InitializeWithLevel(false, logger.VerbosityToLevel(verbosity)); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger.Debugw("cura starting", "commit", version.Get().Short(), "verbosity", verbosity)
		return nil
	},
}

func init() {
	// Add global flags
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("json", false, "Output results in JSON format")

	// Add commands
	rootCmd.AddCommand(commands.ApplyCmd)
	rootCmd.AddCommand(commands.PlanCmd)
	rootCmd.AddCommand(commands.FieldsCmd)
	rootCmd.AddCommand(commands.ReportCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
