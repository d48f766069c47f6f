package report

import (
	"database/sql"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/meridios/cura/errors"
)

// Query constants
const (
	runInsertQuery = `
		INSERT INTO curation_runs (id, started_at, finished_at, dry_run, input_file, registry_url, processed, succeeded, failed, skipped)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	recordInsertQuery = `
		INSERT INTO curation_run_records (run_id, position, resource_id, input_line, status, modified_fields, error, occurred_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	runSelectQuery = `
		SELECT id, started_at, finished_at, dry_run, input_file, registry_url
		FROM curation_runs WHERE id = ?`

	recordsSelectQuery = `
		SELECT resource_id, input_line, status, modified_fields, error, occurred_at
		FROM curation_run_records WHERE run_id = ?
		ORDER BY position`

	runListQuery = `
		SELECT id, started_at, finished_at, dry_run, input_file, registry_url, processed, succeeded, failed, skipped
		FROM curation_runs
		ORDER BY started_at DESC
		LIMIT ?`

	runPruneQuery = `DELETE FROM curation_runs WHERE started_at < ?`
)

// DefaultListLimit caps `report ls` output when no limit is given.
const DefaultListLimit = 20

// Store persists run reports to the history database and reads them back.
type Store struct {
	db     *sql.DB
	logger *zap.SugaredLogger
}

// NewStore creates a run-history store on an open database.
func NewStore(db *sql.DB, logger *zap.SugaredLogger) *Store {
	return &Store{db: db, logger: logger}
}

// SaveRun writes the report header and all its entries in one transaction.
func (s *Store) SaveRun(r *Report) error {
	sum := r.Summary()

	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(err, "begin save run")
	}

	if _, err := tx.Exec(runInsertQuery,
		r.ID, r.StartedAt, nullableTime(r.FinishedAt), r.DryRun, r.InputFile, r.RegistryURL,
		sum.Processed, sum.Succeeded, sum.Failed, sum.Skipped,
	); err != nil {
		tx.Rollback()
		return errors.Wrapf(err, "insert run %s", r.ID)
	}

	for i, e := range r.Entries {
		if _, err := tx.Exec(recordInsertQuery,
			r.ID, i, e.ResourceID, e.Line, string(e.Status), marshalFields(e.ModifiedFields), e.Error, e.Timestamp,
		); err != nil {
			tx.Rollback()
			return errors.Wrapf(err, "insert record %d of run %s", i, r.ID)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrapf(err, "commit run %s", r.ID)
	}

	if s.logger != nil {
		s.logger.Debugw("Run persisted",
			"run_id", r.ID,
			"records", len(r.Entries),
		)
	}
	return nil
}

// GetRun loads one run with all its record entries in input order.
func (s *Store) GetRun(id string) (*Report, error) {
	r := &Report{}
	var finished sql.NullTime
	err := s.db.QueryRow(runSelectQuery, id).Scan(
		&r.ID, &r.StartedAt, &finished, &r.DryRun, &r.InputFile, &r.RegistryURL,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(errors.ErrNotFound, "run %s", id)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "load run %s", id)
	}
	if finished.Valid {
		r.FinishedAt = finished.Time
	}

	rows, err := s.db.Query(recordsSelectQuery, id)
	if err != nil {
		return nil, errors.Wrapf(err, "load records of run %s", id)
	}
	defer rows.Close()

	for rows.Next() {
		var e Entry
		var fields string
		if err := rows.Scan(&e.ResourceID, &e.Line, &e.Status, &fields, &e.Error, &e.Timestamp); err != nil {
			return nil, errors.Wrapf(err, "scan record of run %s", id)
		}
		e.ModifiedFields = unmarshalFields(fields)
		r.Entries = append(r.Entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "iterate records of run %s", id)
	}

	return r, nil
}

// RunListing is one row of the run history: header plus stored counts,
// without the per-record entries.
type RunListing struct {
	ID          string    `json:"id"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at,omitzero"`
	DryRun      bool      `json:"dry_run"`
	InputFile   string    `json:"input_file,omitempty"`
	RegistryURL string    `json:"registry_url,omitempty"`
	Summary     Summary   `json:"summary"`
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(limit int) ([]RunListing, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := s.db.Query(runListQuery, limit)
	if err != nil {
		return nil, errors.Wrap(err, "list runs")
	}
	defer rows.Close()

	var listings []RunListing
	for rows.Next() {
		var l RunListing
		var finished sql.NullTime
		if err := rows.Scan(
			&l.ID, &l.StartedAt, &finished, &l.DryRun, &l.InputFile, &l.RegistryURL,
			&l.Summary.Processed, &l.Summary.Succeeded, &l.Summary.Failed, &l.Summary.Skipped,
		); err != nil {
			return nil, errors.Wrap(err, "scan run listing")
		}
		if finished.Valid {
			l.FinishedAt = finished.Time
		}
		if l.Summary.Processed > 0 {
			l.Summary.SuccessRate = float64(l.Summary.Succeeded) / float64(l.Summary.Processed)
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate run listings")
	}

	return listings, nil
}

// PruneOlderThan deletes runs started before the cutoff. Their record rows
// follow via ON DELETE CASCADE. Returns the number of runs removed.
func (s *Store) PruneOlderThan(cutoff time.Time) (int64, error) {
	res, err := s.db.Exec(runPruneQuery, cutoff)
	if err != nil {
		return 0, errors.Wrap(err, "prune runs")
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "prune runs")
	}

	if s.logger != nil && removed > 0 {
		s.logger.Infow("Pruned old runs",
			"removed", removed,
			"cutoff", cutoff,
		)
	}
	return removed, nil
}

func nullableTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}

// modified_fields is stored as a JSON array so history rows stay queryable
// with sqlite's json_each.
func marshalFields(fields []string) string {
	if len(fields) == 0 {
		return "[]"
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func unmarshalFields(raw string) []string {
	if raw == "" || raw == "[]" {
		return nil
	}
	var fields []string
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil
	}
	return fields
}
