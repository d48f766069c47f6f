package commands

import (
	"github.com/spf13/cobra"
)

// PlanCmd represents the plan command
var PlanCmd = &cobra.Command{
	Use:   "plan <input-file>",
	Short: "Preview a modification table without writing",
	Long: `Preview a modification table without writing to the registry.

plan runs the full pipeline: records are fetched from the registry,
column values are parsed and merged into the current metadata, and the
would-be changes are reported. Nothing is written. It is the same as
'apply --dry-run' and exists so previewing never depends on remembering
a flag.

Examples:
  cura plan changes.csv                   # Preview every record
  cura plan changes.csv --scope 10.5072/  # Preview a subset
  cura plan changes.csv --json            # Machine-readable preview`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCuration(cmd, args[0], true)
	},
}

func init() {
	addRunFlags(PlanCmd)
}
