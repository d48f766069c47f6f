package batch

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/meridios/cura/logger"
	"github.com/meridios/cura/report"
)

// ProgressEmitter receives run progress as records finish. The executor
// calls it from the record loop between registry calls, so implementations
// should not block.
//
// Implementations include:
// - CLIEmitter: pretty-printed terminal output using pterm
// - NopEmitter: discards everything (machine output modes)
type ProgressEmitter interface {
	// EmitStart announces the run before the first record is processed.
	EmitStart(total int, dryRun bool)

	// EmitRecord reports one finished record. index is 1-based.
	EmitRecord(e report.Entry, index, total int)

	// EmitComplete reports the aggregate outcome after the last record.
	EmitComplete(s report.Summary)
}

// NopEmitter discards all progress events.
type NopEmitter struct{}

func (NopEmitter) EmitStart(int, bool)               {}
func (NopEmitter) EmitRecord(report.Entry, int, int) {}
func (NopEmitter) EmitComplete(report.Summary)       {}

// CLIEmitter outputs pretty-printed progress to terminal using pterm
type CLIEmitter struct {
	verbosity int
	dryRun    bool
}

// NewCLIEmitter creates a CLI progress emitter for terminal output
func NewCLIEmitter(verbosity int) *CLIEmitter {
	return &CLIEmitter{verbosity: verbosity}
}

// EmitStart prints the run announcement
func (e *CLIEmitter) EmitStart(total int, dryRun bool) {
	e.dryRun = dryRun
	if dryRun {
		pterm.Printf("Planning %s records %s\n",
			pterm.LightCyan(strconv.Itoa(total)),
			pterm.Gray("(dry run, nothing is written)"))
		return
	}
	pterm.Printf("Processing %s records\n", pterm.LightCyan(strconv.Itoa(total)))
}

// EmitRecord prints one record's outcome. Failures and skips always print;
// successes print on dry runs and at -v, where the per-record detail is the
// point of the run.
func (e *CLIEmitter) EmitRecord(entry report.Entry, index, total int) {
	switch entry.Status {
	case report.StatusFailed:
		pterm.Printf("  %s %s %s\n", pterm.Red("✗"), displayID(entry), pterm.Gray(entry.Error))
	case report.StatusSkipped:
		pterm.Printf("  %s %s %s\n", pterm.Gray("→"), displayID(entry), pterm.Gray(entry.Error))
	default:
		if !e.dryRun && !logger.ShouldOutput(e.verbosity, logger.OutputRecordStatus) {
			return
		}
		detail := "no changes"
		if len(entry.ModifiedFields) > 0 {
			detail = strings.Join(entry.ModifiedFields, ", ")
		}
		pterm.Printf("  %s %s %s\n", pterm.Green("✓"), displayID(entry), pterm.Gray(detail))
	}
}

// EmitComplete prints the aggregate outcome
func (e *CLIEmitter) EmitComplete(s report.Summary) {
	if s.Failed > 0 {
		pterm.Warning.Printfln("%d of %d records failed", s.Failed, s.Processed)
		return
	}
	pterm.Success.Printfln("All %d records processed", s.Processed)
}

// displayID names a record in terminal output. Rows rejected for a missing
// resource_id still need something to point at, so the input line stands in.
func displayID(entry report.Entry) string {
	if entry.ResourceID != "" {
		return entry.ResourceID
	}
	return fmt.Sprintf("line %d", entry.Line)
}
