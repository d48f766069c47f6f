package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/meridios/cura/report"
)

// renderSummary prints the run header and aggregate counts.
func renderSummary(rep *report.Report) {
	sum := rep.Summary()

	mode := "live"
	if rep.DryRun {
		mode = "dry run"
	}

	pterm.Println()
	pterm.Info.Println("Run summary:")
	fmt.Printf("  Run ID:       %s\n", rep.ID)
	fmt.Printf("  Mode:         %s\n", mode)
	if rep.InputFile != "" {
		fmt.Printf("  Input:        %s\n", rep.InputFile)
	}
	if rep.RegistryURL != "" {
		fmt.Printf("  Registry:     %s\n", rep.RegistryURL)
	}
	if d := rep.Duration(); d > 0 {
		fmt.Printf("  Duration:     %s\n", d.Round(time.Millisecond))
	}
	fmt.Printf("  Processed:    %d\n", sum.Processed)
	fmt.Printf("  Succeeded:    %d\n", sum.Succeeded)
	fmt.Printf("  Failed:       %d\n", sum.Failed)
	fmt.Printf("  Skipped:      %d\n", sum.Skipped)
	fmt.Printf("  Success rate: %.1f%%\n", sum.SuccessRate*100)
}

// renderFailures prints one line per failed record so the operator can fix
// the input without digging through logs. No output when nothing failed.
func renderFailures(rep *report.Report) {
	failures := rep.Failures()
	if len(failures) == 0 {
		return
	}

	pterm.Println()
	pterm.Error.Printfln("%d record(s) failed:", len(failures))
	fmt.Printf("%-30s %-6s %s\n", "RESOURCE", "LINE", "ERROR")
	fmt.Printf("%-30s %-6s %s\n", "--------", "----", "-----")
	for _, e := range failures {
		fmt.Printf("%-30s %-6d %s\n", truncate(e.ResourceID, 30), e.Line, truncate(e.Error, 70))
	}
}

// renderEntries prints every per-record outcome of a stored report.
func renderEntries(rep *report.Report) {
	if len(rep.Entries) == 0 {
		return
	}

	pterm.Println()
	fmt.Printf("%-30s %-6s %-8s %s\n", "RESOURCE", "LINE", "STATUS", "DETAIL")
	fmt.Printf("%-30s %-6s %-8s %s\n", "--------", "----", "------", "------")
	for _, e := range rep.Entries {
		detail := e.Error
		if e.Status == report.StatusSuccess {
			detail = strings.Join(e.ModifiedFields, ", ")
		}
		fmt.Printf("%-30s %-6d %-8s %s\n",
			truncate(e.ResourceID, 30), e.Line, e.Status, truncate(detail, 60))
	}
	fmt.Printf("\nTotal: %d record(s)\n", len(rep.Entries))
}

// truncate truncates a string to maxLen characters
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
