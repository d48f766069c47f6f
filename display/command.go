package display

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// ShouldOutputJSON determines if a command should output JSON based on flags
// and the CURA_OUTPUT environment variable
func ShouldOutputJSON(cmd *cobra.Command) bool {
	// Handle nil command gracefully (e.g., when called from result rendering without command context)
	if cmd == nil {
		// If no command context, check the environment only
		return envWantsJSON()
	}

	// Check if --json flag was explicitly set
	if cmd.Flags().Changed("json") {
		if jsonFlag, _ := cmd.Flags().GetBool("json"); jsonFlag {
			return true
		}
		return false
	}

	// Check global --json flag
	if globalFlag, _ := cmd.Root().PersistentFlags().GetBool("json"); globalFlag {
		return true
	}

	// If no explicit flag, fall back to the environment
	return envWantsJSON()
}

// envWantsJSON reports whether CURA_OUTPUT selects JSON output. Scripted
// callers set it so every subcommand emits machine-readable results without
// repeating --json
func envWantsJSON() bool {
	return os.Getenv("CURA_OUTPUT") == "json"
}

// OutputJSON marshals and prints JSON using display.MarshalJSON
func OutputJSON(v interface{}) error {
	data, err := MarshalJSON(v)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
