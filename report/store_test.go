package report

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridios/cura/errors"
	curatest "github.com/meridios/cura/internal/testing"
)

func sampleReport(id string, startedAt time.Time) *Report {
	r := &Report{
		ID:          id,
		StartedAt:   startedAt,
		FinishedAt:  startedAt.Add(42 * time.Second),
		DryRun:      false,
		InputFile:   "curation.csv",
		RegistryURL: "https://registry.example.org",
	}
	r.Append(Entry{
		ResourceID:     "10.5072/demo.1",
		Line:           2,
		Status:         StatusSuccess,
		ModifiedFields: []string{"new_title", "new_keywords"},
		Timestamp:      startedAt.Add(1 * time.Second),
	})
	r.Append(Entry{
		ResourceID: "10.5072/demo.2",
		Line:       3,
		Status:     StatusFailed,
		Error:      "fetch 10.5072/demo.2: status 404: not found",
		Timestamp:  startedAt.Add(2 * time.Second),
	})
	r.Append(Entry{
		ResourceID: "",
		Line:       4,
		Status:     StatusSkipped,
		Error:      "missing resource_id",
		Timestamp:  startedAt.Add(3 * time.Second),
	})
	return r
}

func TestSaveAndGetRun(t *testing.T) {
	store := NewStore(curatest.CreateTestDB(t), nil)

	started := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	saved := sampleReport("run-roundtrip", started)
	require.NoError(t, store.SaveRun(saved))

	got, err := store.GetRun("run-roundtrip")
	require.NoError(t, err)

	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, saved.DryRun, got.DryRun)
	assert.Equal(t, saved.InputFile, got.InputFile)
	assert.Equal(t, saved.RegistryURL, got.RegistryURL)
	assert.WithinDuration(t, saved.StartedAt, got.StartedAt, time.Second)
	assert.WithinDuration(t, saved.FinishedAt, got.FinishedAt, time.Second)

	require.Len(t, got.Entries, 3)
	assert.Equal(t, "10.5072/demo.1", got.Entries[0].ResourceID)
	assert.Equal(t, 2, got.Entries[0].Line)
	assert.Equal(t, StatusSuccess, got.Entries[0].Status)
	assert.Equal(t, []string{"new_title", "new_keywords"}, got.Entries[0].ModifiedFields)
	assert.Empty(t, got.Entries[0].Error)

	assert.Equal(t, StatusFailed, got.Entries[1].Status)
	assert.Contains(t, got.Entries[1].Error, "404")
	assert.Nil(t, got.Entries[1].ModifiedFields)

	assert.Equal(t, StatusSkipped, got.Entries[2].Status)
	assert.Empty(t, got.Entries[2].ResourceID)

	sum := got.Summary()
	assert.Equal(t, 3, sum.Processed)
	assert.Equal(t, 1, sum.Succeeded)
}

func TestSaveRunWithoutEntries(t *testing.T) {
	store := NewStore(curatest.CreateTestDB(t), nil)

	r := New("empty.csv", "", true)
	r.Finish()
	require.NoError(t, store.SaveRun(r))

	got, err := store.GetRun(r.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Entries)
	assert.True(t, got.DryRun)
}

func TestGetRunNotFound(t *testing.T) {
	store := NewStore(curatest.CreateTestDB(t), nil)

	_, err := store.GetRun("no-such-run")
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
	assert.Contains(t, err.Error(), "no-such-run")
}

func TestListRuns(t *testing.T) {
	store := NewStore(curatest.CreateTestDB(t), nil)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	older := sampleReport("run-older", base.Add(-2*time.Hour))
	newer := sampleReport("run-newer", base.Add(-1*time.Hour))
	require.NoError(t, store.SaveRun(older))
	require.NoError(t, store.SaveRun(newer))

	listings, err := store.ListRuns(0)
	require.NoError(t, err)
	require.Len(t, listings, 2)

	assert.Equal(t, "run-newer", listings[0].ID, "newest run listed first")
	assert.Equal(t, "run-older", listings[1].ID)
	assert.Equal(t, 3, listings[0].Summary.Processed)
	assert.Equal(t, 1, listings[0].Summary.Succeeded)
	assert.Equal(t, 1, listings[0].Summary.Failed)
	assert.Equal(t, 1, listings[0].Summary.Skipped)
	assert.InDelta(t, 1.0/3.0, listings[0].Summary.SuccessRate, 0.001)

	limited, err := store.ListRuns(1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "run-newer", limited[0].ID)
}

func TestPruneOlderThan(t *testing.T) {
	db := curatest.CreateTestDB(t)
	store := NewStore(db, nil)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	old := sampleReport("run-old", base.Add(-48*time.Hour))
	recent := sampleReport("run-recent", base.Add(-1*time.Hour))
	require.NoError(t, store.SaveRun(old))
	require.NoError(t, store.SaveRun(recent))

	removed, err := store.PruneOlderThan(base.Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, err = store.GetRun("run-old")
	assert.True(t, errors.IsNotFoundError(err))

	// Record rows follow the run via ON DELETE CASCADE
	var orphans int
	require.NoError(t, db.QueryRow(
		"SELECT COUNT(*) FROM curation_run_records WHERE run_id = ?", "run-old",
	).Scan(&orphans))
	assert.Zero(t, orphans)

	_, err = store.GetRun("run-recent")
	assert.NoError(t, err)
}

func TestSaveRunInsertErrorRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO curation_runs`).
		WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	store := NewStore(db, nil)
	err = store.SaveRun(sampleReport("run-boom", time.Now().UTC()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert run run-boom")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveRunRecordErrorRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO curation_runs`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO curation_run_records`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO curation_run_records`).
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	store := NewStore(db, nil)
	err = store.SaveRun(sampleReport("run-partial", time.Now().UTC()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert record 1 of run run-partial")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarshalFields(t *testing.T) {
	assert.Equal(t, "[]", marshalFields(nil))
	assert.Equal(t, "[]", marshalFields([]string{}))
	assert.Equal(t, `["new_title"]`, marshalFields([]string{"new_title"}))

	assert.Nil(t, unmarshalFields(""))
	assert.Nil(t, unmarshalFields("[]"))
	assert.Nil(t, unmarshalFields("not json"))
	assert.Equal(t, []string{"a", "b"}, unmarshalFields(`["a","b"]`))
}
