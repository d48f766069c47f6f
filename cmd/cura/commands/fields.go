package commands

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/meridios/cura/config"
	"github.com/meridios/cura/display"
	"github.com/meridios/cura/schema"
)

// FieldsCmd represents the fields command
var FieldsCmd = &cobra.Command{
	Use:   "fields [search]",
	Short: "List the column-to-property mappings",
	Long: `List the column-to-property mappings cura understands.

Every input column maps to one registry property, with a value format
that decides how the cell is parsed and a merge strategy that decides
how parsed values combine with the record's current metadata. System
fields normally change through the registry itself and are warned about
when a table modifies them.

An optional search term filters by column or property name. Extension
mappings from schema.extensions are included.

Examples:
  cura fields                       # Full mapping table
  cura fields title                 # Mappings mentioning "title"
  cura fields --format multilingual # Only language-tagged fields
  cura fields --merge replace_all   # Only whole-property replacement
  cura fields --json                # Machine-readable table`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		search := ""
		if len(args) > 0 {
			search = args[0]
		}
		formatFilter, _ := cmd.Flags().GetString("format")
		mergeFilter, _ := cmd.Flags().GetString("merge")
		return runFields(cmd, search, formatFilter, mergeFilter)
	},
}

func init() {
	FieldsCmd.Flags().String("format", "", "Only show fields with this value format")
	FieldsCmd.Flags().String("merge", "", "Only show fields with this merge strategy")
	FieldsCmd.Flags().Bool("json", false, "Output the mapping table as JSON")
}

func runFields(cmd *cobra.Command, search, formatFilter, mergeFilter string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	registry, err := schema.Load(cfg.Schema.Extensions)
	if err != nil {
		return fmt.Errorf("failed to load field registry: %w", err)
	}

	needle := strings.ToLower(search)
	fields := registry.Filter(func(fc schema.FieldConfig) bool {
		if formatFilter != "" && !strings.EqualFold(string(fc.Format), formatFilter) {
			return false
		}
		if mergeFilter != "" && !strings.EqualFold(string(fc.Merge), mergeFilter) {
			return false
		}
		if needle == "" {
			return true
		}
		return strings.Contains(strings.ToLower(fc.Column), needle) ||
			strings.Contains(strings.ToLower(fc.Property), needle)
	})

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(fields)
	}

	if len(fields) == 0 {
		pterm.Info.Println("No fields match")
		return nil
	}

	fmt.Printf("%-28s %-44s %-16s %-20s %s\n", "COLUMN", "PROPERTY", "FORMAT", "MERGE", "SYSTEM")
	fmt.Printf("%-28s %-44s %-16s %-20s %s\n", "------", "--------", "------", "-----", "------")
	for _, fc := range fields {
		system := ""
		if fc.System {
			system = "yes"
		}
		fmt.Printf("%-28s %-44s %-16s %-20s %s\n",
			truncate(fc.Column, 28), truncate(fc.Property, 44), fc.Format, fc.Merge, system)
	}
	fmt.Printf("\nTotal: %d field(s)\n", len(fields))
	return nil
}
