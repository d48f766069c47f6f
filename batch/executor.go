// Package batch drives a curation run end to end: validate each input row,
// fetch the record, parse and merge the new values, and write the result
// back. Records are processed strictly sequentially in input order, and one
// record's failure never stops the rest.
package batch

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/meridios/cura/logger"
	"github.com/meridios/cura/merge"
	"github.com/meridios/cura/meta"
	"github.com/meridios/cura/parser"
	"github.com/meridios/cura/remote"
	"github.com/meridios/cura/report"
	"github.com/meridios/cura/schema"
	"github.com/meridios/cura/tabular"
)

// Defaults applied when Options leaves a knob unset.
const (
	DefaultBatchSize   = 20
	DefaultMaxAttempts = 3
)

// Options configures one batch run.
type Options struct {
	// DryRun simulates the run: records are fetched, parsed and merged, but
	// nothing is written to the registry.
	DryRun bool

	// BatchSize is how many records are processed between pacing pauses.
	BatchSize int

	// InterBatchDelay is the pause after each full batch. Zero disables
	// pacing.
	InterBatchDelay time.Duration

	// MaxAttempts bounds retries of rate-limited registry calls.
	MaxAttempts int

	// Scope, when set, restricts the run to resource IDs with this prefix.
	// Out-of-scope rows are skipped, not failed.
	Scope string

	// InputFile and RegistryURL are recorded in the report header.
	InputFile   string
	RegistryURL string

	// Progress receives per-record outcomes as the run advances. Nil means
	// no progress output.
	Progress ProgressEmitter
}

// Executor runs batches against one registry with one field registry.
type Executor struct {
	client   remote.Client
	registry *schema.Registry
	opts     Options
	log      *zap.SugaredLogger

	// Injectable for tests with a stub clock.
	sleep func(ctx context.Context, d time.Duration) error
	now   func() time.Time
}

// NewExecutor creates an executor. A nil logger gets the package component
// logger.
func NewExecutor(client remote.Client, registry *schema.Registry, opts Options, log *zap.SugaredLogger) *Executor {
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	if opts.InterBatchDelay < 0 {
		opts.InterBatchDelay = 0
	}
	if opts.Progress == nil {
		opts.Progress = NopEmitter{}
	}
	if log == nil {
		log = logger.ComponentLogger("batch")
	}
	return &Executor{
		client:   client,
		registry: registry,
		opts:     opts,
		log:      log,
		sleep:    sleepContext,
		now:      time.Now,
	}
}

// Run processes the records in order and returns the report. The report has
// one entry per input record even when the run is cancelled partway: the
// remaining records are recorded as skipped and the context error is
// returned alongside the report.
func (ex *Executor) Run(ctx context.Context, records []tabular.Record) (*report.Report, error) {
	rep := report.New(ex.opts.InputFile, ex.opts.RegistryURL, ex.opts.DryRun)
	ctx = logger.WithRunID(ctx, rep.ID)
	log := logger.ChildLogger(ex.log, logger.FieldRunID, rep.ID)

	log.Infow("Run starting",
		logger.FieldTotalCount, len(records),
		"dry_run", ex.opts.DryRun,
		logger.FieldBatchSize, ex.opts.BatchSize,
	)
	ex.opts.Progress.EmitStart(len(records), ex.opts.DryRun)

	for i, rec := range records {
		// Cancellation is honored between records, never inside one
		if err := ctx.Err(); err != nil {
			ex.fillSkipped(rep, records[i:])
			rep.Finish()
			log.Warnw("Run cancelled", "completed", i, "skipped", len(records)-i)
			return rep, err
		}

		entry := ex.processRecord(ctx, log, rec)
		rep.Append(entry)
		ex.opts.Progress.EmitRecord(entry, i+1, len(records))

		if ex.pauseDue(i, len(records)) {
			log.Debugw("Batch pause",
				"after_record", i+1,
				"delay", ex.opts.InterBatchDelay.String(),
			)
			if err := ex.sleep(ctx, ex.opts.InterBatchDelay); err != nil {
				ex.fillSkipped(rep, records[i+1:])
				rep.Finish()
				log.Warnw("Run cancelled", "completed", i+1, "skipped", len(records)-i-1)
				return rep, err
			}
		}
	}

	rep.Finish()
	sum := rep.Summary()
	ex.opts.Progress.EmitComplete(sum)
	log.Infow("Run finished",
		"processed", sum.Processed,
		"succeeded", sum.Succeeded,
		"failed", sum.Failed,
		"skipped", sum.Skipped,
		logger.FieldDurationMS, rep.Duration().Milliseconds(),
	)
	return rep, nil
}

// pauseDue reports whether the pacing pause falls after record index i.
// No pause follows the final record.
func (ex *Executor) pauseDue(i, total int) bool {
	return ex.opts.InterBatchDelay > 0 && (i+1)%ex.opts.BatchSize == 0 && i+1 < total
}

func (ex *Executor) processRecord(ctx context.Context, log *zap.SugaredLogger, rec tabular.Record) report.Entry {
	entry := report.Entry{
		ResourceID: rec.ResourceID,
		Line:       rec.Line,
		Timestamp:  ex.now().UTC(),
	}

	if reason := ex.skipReason(rec); reason != "" {
		entry.Status = report.StatusSkipped
		entry.Error = reason
		log.Warnw("Record skipped",
			logger.FieldRecordID, rec.ResourceID,
			logger.FieldLine, rec.Line,
			"reason", reason,
		)
		return entry
	}

	changes := ex.buildChanges(log, rec)

	// A modify row whose cells all parsed to nothing has no work to do.
	if rec.Action == tabular.ActionModify && len(changes) == 0 {
		entry.Status = report.StatusSuccess
		log.Debugw("Record unchanged, nothing to write",
			logger.FieldRecordID, rec.ResourceID,
			logger.FieldLine, rec.Line,
		)
		return entry
	}

	ctx = logger.WithRecordID(ctx, rec.ResourceID)

	var snapshot meta.Snapshot
	if rec.Action == tabular.ActionCreate {
		// The record does not exist yet, so there is nothing to fetch
		snapshot = *meta.EmptySnapshot(rec.ResourceID)
	} else {
		fetched, err := ex.client.Fetch(ctx, rec.ResourceID)
		if err != nil {
			return ex.failed(log, entry, "fetch", err)
		}
		snapshot = fetched
	}

	merged, modified := merge.Record(snapshot, changes)
	entry.ModifiedFields = modified

	if ex.opts.DryRun {
		entry.Status = report.StatusSuccess
		log.Infow("Dry run, write suppressed",
			logger.FieldRecordID, rec.ResourceID,
			"modified_fields", modified,
		)
		return entry
	}

	policy := RetryPolicy{
		MaxAttempts: ex.opts.MaxAttempts,
		Sleep:       ex.sleep,
		Logger:      log,
	}

	var err error
	if rec.Action == tabular.ActionCreate {
		err = policy.Do(ctx, "create", func() error {
			return ex.client.Create(ctx, rec.ResourceID, merged)
		})
	} else {
		err = policy.Do(ctx, "apply", func() error {
			return ex.client.Apply(ctx, rec.ResourceID, merged)
		})
	}
	if err != nil {
		return ex.failed(log, entry, "write", err)
	}

	entry.Status = report.StatusSuccess
	log.Debugw("Record written",
		logger.FieldRecordID, rec.ResourceID,
		"modified_fields", modified,
	)
	return entry
}

func (ex *Executor) skipReason(rec tabular.Record) string {
	if rec.ResourceID == "" {
		return "missing resource_id"
	}
	if rec.Action == "" {
		return "missing action"
	}
	if !tabular.SupportedAction(rec.Action) {
		return fmt.Sprintf("unsupported action %q", rec.Action)
	}
	if ex.opts.Scope != "" && !strings.HasPrefix(rec.ResourceID, ex.opts.Scope) {
		return fmt.Sprintf("outside scope %q", ex.opts.Scope)
	}
	return ""
}

// buildChanges parses every recognized field cell into merge-ready changes.
// Columns are visited in sorted order so repeat runs modify fields in a
// stable sequence. Unknown columns and parse warnings are logged but never
// fail the record.
func (ex *Executor) buildChanges(log *zap.SugaredLogger, rec tabular.Record) []parser.Change {
	columns := make([]string, 0, len(rec.Fields))
	for column := range rec.Fields {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	var changes []parser.Change
	for _, column := range columns {
		cfg, ok := ex.registry.Lookup(column)
		if !ok {
			log.Warnw("Unknown column ignored",
				logger.FieldRecordID, rec.ResourceID,
				logger.FieldColumn, column,
			)
			continue
		}

		change, warnings := parser.BuildChange(cfg, rec.Fields[column])
		for _, w := range warnings {
			log.Warnw("Value problem",
				logger.FieldRecordID, rec.ResourceID,
				logger.FieldLine, rec.Line,
				logger.FieldColumn, w.Column,
				"detail", w.Message,
			)
		}
		if change.Empty() {
			continue
		}
		changes = append(changes, change)
	}
	return changes
}

func (ex *Executor) failed(log *zap.SugaredLogger, entry report.Entry, operation string, err error) report.Entry {
	entry.Status = report.StatusFailed
	entry.Error = err.Error()
	log.Errorw("Record failed",
		logger.FieldRecordID, entry.ResourceID,
		logger.FieldLine, entry.Line,
		logger.FieldOperation, operation,
		logger.FieldError, err.Error(),
	)
	return entry
}

// fillSkipped appends a skipped entry for every unprocessed record so the
// report still lines up one-to-one with the input.
func (ex *Executor) fillSkipped(rep *report.Report, remaining []tabular.Record) {
	for _, rec := range remaining {
		rep.Append(report.Entry{
			ResourceID: rec.ResourceID,
			Line:       rec.Line,
			Status:     report.StatusSkipped,
			Error:      "run cancelled",
			Timestamp:  ex.now().UTC(),
		})
	}
}
