// Package report carries the outcome of a batch curation run: one entry per
// input record, in input order, plus aggregate counts. Reports serialize to
// JSON for machine output and persist to the run-history database via Store.
package report

import (
	"time"

	"github.com/google/uuid"
)

// Status is the terminal state of a single record.
type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusFailed  Status = "FAILED"
	StatusSkipped Status = "SKIPPED"
)

// Entry records the outcome for one input record.
type Entry struct {
	ResourceID     string    `json:"resource_id"`
	Line           int       `json:"line,omitempty"`
	Status         Status    `json:"status"`
	ModifiedFields []string  `json:"modified_fields,omitempty"`
	Error          string    `json:"error,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// Report is the full outcome of a run. There is exactly one entry per input
// record, whatever happened to it.
type Report struct {
	ID          string    `json:"id"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at,omitzero"`
	DryRun      bool      `json:"dry_run"`
	InputFile   string    `json:"input_file,omitempty"`
	RegistryURL string    `json:"registry_url,omitempty"`
	Entries     []Entry   `json:"entries"`
}

// New starts a report for a run beginning now.
func New(inputFile, registryURL string, dryRun bool) *Report {
	return &Report{
		ID:          uuid.New().String(),
		StartedAt:   time.Now().UTC(),
		DryRun:      dryRun,
		InputFile:   inputFile,
		RegistryURL: registryURL,
	}
}

// Append adds one record outcome.
func (r *Report) Append(e Entry) {
	r.Entries = append(r.Entries, e)
}

// Finish stamps the end of the run.
func (r *Report) Finish() {
	r.FinishedAt = time.Now().UTC()
}

// Duration is the wall-clock span of the run, zero until Finish is called.
func (r *Report) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Summary holds the aggregate counts for a run.
type Summary struct {
	Processed   int     `json:"processed"`
	Succeeded   int     `json:"succeeded"`
	Failed      int     `json:"failed"`
	Skipped     int     `json:"skipped"`
	SuccessRate float64 `json:"success_rate"`
}

// Summary aggregates entry outcomes. SuccessRate is succeeded over processed;
// an empty run reports 0.
func (r *Report) Summary() Summary {
	s := Summary{Processed: len(r.Entries)}
	for _, e := range r.Entries {
		switch e.Status {
		case StatusSuccess:
			s.Succeeded++
		case StatusFailed:
			s.Failed++
		case StatusSkipped:
			s.Skipped++
		}
	}
	if s.Processed > 0 {
		s.SuccessRate = float64(s.Succeeded) / float64(s.Processed)
	}
	return s
}

// Failures returns the FAILED entries, for compact display after a run.
func (r *Report) Failures() []Entry {
	var out []Entry
	for _, e := range r.Entries {
		if e.Status == StatusFailed {
			out = append(out, e)
		}
	}
	return out
}
