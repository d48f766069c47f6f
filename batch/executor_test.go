package batch

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/meridios/cura/errors"
	"github.com/meridios/cura/meta"
	"github.com/meridios/cura/remote"
	"github.com/meridios/cura/report"
	"github.com/meridios/cura/schema"
	"github.com/meridios/cura/tabular"
)

// stubClient counts registry calls and serves canned snapshots, standing in
// for the HTTP client.
type stubClient struct {
	snapshots      map[string]meta.Snapshot
	fetchErr       map[string]error
	applyErrQueue  map[string][]error
	createErrQueue map[string][]error

	fetchCalls  []string
	applyCalls  []string
	createCalls []string
	applied     map[string]meta.Snapshot
	created     map[string]meta.Snapshot

	onFetch func(resourceID string)
}

func newStubClient() *stubClient {
	return &stubClient{
		snapshots:      make(map[string]meta.Snapshot),
		fetchErr:       make(map[string]error),
		applyErrQueue:  make(map[string][]error),
		createErrQueue: make(map[string][]error),
		applied:        make(map[string]meta.Snapshot),
		created:        make(map[string]meta.Snapshot),
	}
}

func (c *stubClient) Fetch(ctx context.Context, resourceID string) (meta.Snapshot, error) {
	c.fetchCalls = append(c.fetchCalls, resourceID)
	if c.onFetch != nil {
		c.onFetch(resourceID)
	}
	if err := c.fetchErr[resourceID]; err != nil {
		return meta.Snapshot{}, err
	}
	if snap, ok := c.snapshots[resourceID]; ok {
		return snap, nil
	}
	return meta.Snapshot{}, errors.Wrapf(errors.ErrNotFound, "fetch %s", resourceID)
}

func (c *stubClient) Apply(ctx context.Context, resourceID string, snapshot meta.Snapshot) error {
	c.applyCalls = append(c.applyCalls, resourceID)
	if queue := c.applyErrQueue[resourceID]; len(queue) > 0 {
		c.applyErrQueue[resourceID] = queue[1:]
		return queue[0]
	}
	c.applied[resourceID] = snapshot
	return nil
}

func (c *stubClient) Create(ctx context.Context, resourceID string, snapshot meta.Snapshot) error {
	c.createCalls = append(c.createCalls, resourceID)
	if queue := c.createErrQueue[resourceID]; len(queue) > 0 {
		c.createErrQueue[resourceID] = queue[1:]
		return queue[0]
	}
	c.created[resourceID] = snapshot
	return nil
}

func (c *stubClient) Ping(ctx context.Context) (remote.ServerInfo, error) {
	return remote.ServerInfo{Name: "stub registry", Version: "1.0.0"}, nil
}

func newTestExecutor(t *testing.T, client remote.Client, opts Options) *Executor {
	t.Helper()
	ex := NewExecutor(client, schema.Builtin(), opts, zaptest.NewLogger(t).Sugar())
	ex.sleep = func(ctx context.Context, d time.Duration) error { return nil }
	return ex
}

func propertyOf(t *testing.T, column string) string {
	t.Helper()
	cfg, ok := schema.Builtin().Lookup(column)
	require.True(t, ok, "column %s not in builtin registry", column)
	return cfg.Property
}

func modifyRecord(id string, line int, fields map[string]string) tabular.Record {
	return tabular.Record{ResourceID: id, Action: tabular.ActionModify, Fields: fields, Line: line}
}

func titledSnapshot(id, lang, text string) meta.Snapshot {
	return meta.Snapshot{ID: id, Entries: []meta.Entry{{
		Property: "http://purl.org/dc/terms/title",
		Value:    text,
		Lang:     lang,
		Type:     meta.TypeString,
	}}}
}

func TestRunAppliesModifications(t *testing.T) {
	client := newStubClient()
	client.snapshots["10.5072/a"] = titledSnapshot("10.5072/a", "en", "Old title")

	ex := newTestExecutor(t, client, Options{InputFile: "curation.csv"})
	rep, err := ex.Run(context.Background(), []tabular.Record{
		modifyRecord("10.5072/a", 2, map[string]string{"new_title": "en:New title"}),
	})

	require.NoError(t, err)
	assert.NotEmpty(t, rep.ID)
	assert.False(t, rep.FinishedAt.IsZero())
	assert.Equal(t, "curation.csv", rep.InputFile)

	require.Len(t, rep.Entries, 1)
	entry := rep.Entries[0]
	assert.Equal(t, report.StatusSuccess, entry.Status)
	assert.Equal(t, 2, entry.Line)
	assert.Equal(t, []string{"new_title"}, entry.ModifiedFields)

	assert.Equal(t, []string{"10.5072/a"}, client.fetchCalls)
	assert.Equal(t, []string{"10.5072/a"}, client.applyCalls)

	titles := client.applied["10.5072/a"].Property(propertyOf(t, "new_title"))
	require.Len(t, titles, 1)
	assert.Equal(t, "New title", titles[0].StringValue())
}

func TestRunFailureNeverAbortsTheBatch(t *testing.T) {
	client := newStubClient()
	client.snapshots["10.5072/a"] = titledSnapshot("10.5072/a", "en", "A")
	client.fetchErr["10.5072/b"] = errors.Wrapf(errors.ErrNotFound, "fetch 10.5072/b: status 404")
	client.snapshots["10.5072/c"] = titledSnapshot("10.5072/c", "en", "C")

	ex := newTestExecutor(t, client, Options{})
	records := []tabular.Record{
		modifyRecord("10.5072/a", 2, map[string]string{"new_title": "en:A2"}),
		modifyRecord("10.5072/b", 3, map[string]string{"new_title": "en:B2"}),
		modifyRecord("10.5072/c", 4, map[string]string{"new_title": "en:C2"}),
	}
	rep, err := ex.Run(context.Background(), records)

	require.NoError(t, err)
	require.Len(t, rep.Entries, len(records))
	assert.Equal(t, report.StatusSuccess, rep.Entries[0].Status)
	assert.Equal(t, report.StatusFailed, rep.Entries[1].Status)
	assert.Contains(t, rep.Entries[1].Error, "404")
	assert.Equal(t, report.StatusSuccess, rep.Entries[2].Status)

	assert.Equal(t, []string{"10.5072/a", "10.5072/c"}, client.applyCalls)

	sum := rep.Summary()
	assert.Equal(t, 2, sum.Succeeded)
	assert.Equal(t, 1, sum.Failed)
}

func TestRunDryRunNeverWrites(t *testing.T) {
	client := newStubClient()
	client.snapshots["10.5072/a"] = titledSnapshot("10.5072/a", "en", "Old")

	ex := newTestExecutor(t, client, Options{DryRun: true})
	rep, err := ex.Run(context.Background(), []tabular.Record{
		modifyRecord("10.5072/a", 2, map[string]string{"new_title": "en:New"}),
		{ResourceID: "10.5072/d", Action: tabular.ActionCreate, Line: 3,
			Fields: map[string]string{"new_title": "en:Fresh"}},
	})

	require.NoError(t, err)
	assert.True(t, rep.DryRun)
	require.Len(t, rep.Entries, 2)
	assert.Equal(t, report.StatusSuccess, rep.Entries[0].Status)
	assert.Equal(t, report.StatusSuccess, rep.Entries[1].Status)
	assert.Equal(t, []string{"new_title"}, rep.Entries[0].ModifiedFields)
	assert.Equal(t, []string{"new_title"}, rep.Entries[1].ModifiedFields)

	// The modify row is still fetched so a dry run catches missing records
	assert.Equal(t, []string{"10.5072/a"}, client.fetchCalls)
	assert.Empty(t, client.applyCalls)
	assert.Empty(t, client.createCalls)
}

func TestRunSkipsInvalidRows(t *testing.T) {
	client := newStubClient()
	ex := newTestExecutor(t, client, Options{})

	records := []tabular.Record{
		{ResourceID: "", Action: tabular.ActionModify, Line: 2},
		{ResourceID: "10.5072/x", Action: "", Line: 3},
		{ResourceID: "10.5072/y", Action: "delete", Line: 4},
	}
	rep, err := ex.Run(context.Background(), records)

	require.NoError(t, err)
	require.Len(t, rep.Entries, len(records))
	for _, entry := range rep.Entries {
		assert.Equal(t, report.StatusSkipped, entry.Status)
	}
	assert.Equal(t, "missing resource_id", rep.Entries[0].Error)
	assert.Equal(t, "missing action", rep.Entries[1].Error)
	assert.Equal(t, `unsupported action "delete"`, rep.Entries[2].Error)

	assert.Empty(t, client.fetchCalls)
	assert.Empty(t, client.applyCalls)
	assert.Empty(t, client.createCalls)
}

func TestRunScopeFilter(t *testing.T) {
	client := newStubClient()
	client.snapshots["10.5072/a"] = titledSnapshot("10.5072/a", "en", "A")

	ex := newTestExecutor(t, client, Options{Scope: "10.5072/"})
	rep, err := ex.Run(context.Background(), []tabular.Record{
		modifyRecord("10.5072/a", 2, map[string]string{"new_title": "en:A2"}),
		modifyRecord("10.9999/z", 3, map[string]string{"new_title": "en:Z2"}),
	})

	require.NoError(t, err)
	assert.Equal(t, report.StatusSuccess, rep.Entries[0].Status)
	assert.Equal(t, report.StatusSkipped, rep.Entries[1].Status)
	assert.Equal(t, `outside scope "10.5072/"`, rep.Entries[1].Error)
	assert.Equal(t, []string{"10.5072/a"}, client.fetchCalls)
}

func TestRunNoOpModifyMakesNoCalls(t *testing.T) {
	client := newStubClient()
	ex := newTestExecutor(t, client, Options{})

	rep, err := ex.Run(context.Background(), []tabular.Record{
		modifyRecord("10.5072/a", 2, map[string]string{
			"new_title":     "   ",
			"totally_bogus": "ignored",
		}),
	})

	require.NoError(t, err)
	require.Len(t, rep.Entries, 1)
	assert.Equal(t, report.StatusSuccess, rep.Entries[0].Status)
	assert.Empty(t, rep.Entries[0].ModifiedFields)
	assert.Empty(t, client.fetchCalls, "nothing to write means nothing to fetch")
	assert.Empty(t, client.applyCalls)
}

func TestRunCreateStartsFromEmptySnapshot(t *testing.T) {
	client := newStubClient()
	ex := newTestExecutor(t, client, Options{})

	rep, err := ex.Run(context.Background(), []tabular.Record{
		{ResourceID: "10.5072/new", Action: tabular.ActionCreate, Line: 2, Fields: map[string]string{
			"new_title":  "en:Fresh start",
			"new_rights": "stewards,ROLE_ADMIN",
		}},
	})

	require.NoError(t, err)
	require.Len(t, rep.Entries, 1)
	assert.Equal(t, report.StatusSuccess, rep.Entries[0].Status)
	assert.Equal(t, []string{"new_rights", "new_title"}, rep.Entries[0].ModifiedFields)

	assert.Empty(t, client.fetchCalls, "create has no prior snapshot to fetch")
	assert.Equal(t, []string{"10.5072/new"}, client.createCalls)

	created := client.created["10.5072/new"]
	assert.Equal(t, "10.5072/new", created.ID)
	titles := created.Property(propertyOf(t, "new_title"))
	require.Len(t, titles, 1)
	assert.Equal(t, "Fresh start", titles[0].StringValue())
	require.Len(t, created.Access, 1)
	assert.Equal(t, "stewards", created.Access[0].Group)
}

func TestRunPacingPausesBetweenBatches(t *testing.T) {
	client := newStubClient()
	for _, id := range []string{"10.5072/a", "10.5072/b", "10.5072/c", "10.5072/d", "10.5072/e"} {
		client.snapshots[id] = titledSnapshot(id, "en", "T")
	}

	ex := newTestExecutor(t, client, Options{BatchSize: 2, InterBatchDelay: 2 * time.Second})
	var sleeps []time.Duration
	ex.sleep = func(ctx context.Context, d time.Duration) error {
		sleeps = append(sleeps, d)
		return nil
	}

	var records []tabular.Record
	for i, id := range []string{"10.5072/a", "10.5072/b", "10.5072/c", "10.5072/d", "10.5072/e"} {
		records = append(records, modifyRecord(id, i+2, map[string]string{"new_title": "en:T2"}))
	}
	rep, err := ex.Run(context.Background(), records)

	require.NoError(t, err)
	assert.Equal(t, 5, rep.Summary().Succeeded)
	// After records 2 and 4; the final record is never followed by a pause
	assert.Equal(t, []time.Duration{2 * time.Second, 2 * time.Second}, sleeps)
}

func TestPauseDue(t *testing.T) {
	ex := newTestExecutor(t, newStubClient(), Options{BatchSize: 3, InterBatchDelay: time.Second})

	assert.False(t, ex.pauseDue(0, 7))
	assert.False(t, ex.pauseDue(1, 7))
	assert.True(t, ex.pauseDue(2, 7))
	assert.True(t, ex.pauseDue(5, 7))
	assert.False(t, ex.pauseDue(6, 7), "no pause after the final record")
	assert.False(t, ex.pauseDue(2, 3), "no pause when the batch boundary is the end")

	quiet := newTestExecutor(t, newStubClient(), Options{BatchSize: 3})
	assert.False(t, quiet.pauseDue(2, 7), "zero delay disables pacing")
}

func TestRunCancellationSkipsRemaining(t *testing.T) {
	client := newStubClient()
	for _, id := range []string{"10.5072/a", "10.5072/b", "10.5072/c"} {
		client.snapshots[id] = titledSnapshot(id, "en", "T")
	}

	ctx, cancel := context.WithCancel(context.Background())
	client.onFetch = func(string) { cancel() }

	ex := newTestExecutor(t, client, Options{})
	records := []tabular.Record{
		modifyRecord("10.5072/a", 2, map[string]string{"new_title": "en:A2"}),
		modifyRecord("10.5072/b", 3, map[string]string{"new_title": "en:B2"}),
		modifyRecord("10.5072/c", 4, map[string]string{"new_title": "en:C2"}),
	}
	rep, err := ex.Run(ctx, records)

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))

	// Still one entry per input record
	require.Len(t, rep.Entries, len(records))
	assert.Equal(t, report.StatusSuccess, rep.Entries[0].Status)
	assert.Equal(t, report.StatusSkipped, rep.Entries[1].Status)
	assert.Equal(t, "run cancelled", rep.Entries[1].Error)
	assert.Equal(t, report.StatusSkipped, rep.Entries[2].Status)
	assert.False(t, rep.FinishedAt.IsZero())

	assert.Equal(t, []string{"10.5072/a"}, client.fetchCalls)
}

func TestRunRetriesRateLimitedWrites(t *testing.T) {
	client := newStubClient()
	client.snapshots["10.5072/a"] = titledSnapshot("10.5072/a", "en", "Old")
	client.applyErrQueue["10.5072/a"] = []error{
		errors.Wrap(errors.ErrRateLimited, "status 429"),
		errors.Wrap(errors.ErrRateLimited, "status 429"),
	}

	ex := newTestExecutor(t, client, Options{MaxAttempts: 3})
	var sleeps []time.Duration
	ex.sleep = func(ctx context.Context, d time.Duration) error {
		sleeps = append(sleeps, d)
		return nil
	}

	rep, err := ex.Run(context.Background(), []tabular.Record{
		modifyRecord("10.5072/a", 2, map[string]string{"new_title": "en:New"}),
	})

	require.NoError(t, err)
	assert.Equal(t, report.StatusSuccess, rep.Entries[0].Status)
	assert.Equal(t, []string{"10.5072/a", "10.5072/a", "10.5072/a"}, client.applyCalls)
	assert.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second}, sleeps)
}

func TestRunRateLimitExhaustionFails(t *testing.T) {
	client := newStubClient()
	client.snapshots["10.5072/a"] = titledSnapshot("10.5072/a", "en", "Old")
	client.applyErrQueue["10.5072/a"] = []error{
		errors.Wrap(errors.ErrRateLimited, "status 429"),
		errors.Wrap(errors.ErrRateLimited, "status 429"),
		errors.Wrap(errors.ErrRateLimited, "status 429"),
	}

	ex := newTestExecutor(t, client, Options{MaxAttempts: 3})
	rep, err := ex.Run(context.Background(), []tabular.Record{
		modifyRecord("10.5072/a", 2, map[string]string{"new_title": "en:New"}),
	})

	require.NoError(t, err, "a record failure is reported, not returned")
	assert.Equal(t, report.StatusFailed, rep.Entries[0].Status)
	assert.Contains(t, rep.Entries[0].Error, "429")
	assert.Len(t, client.applyCalls, 3)
}

// recordingEmitter captures progress events for assertion.
type recordingEmitter struct {
	startTotal  int
	startDryRun bool
	records     []report.Entry
	indices     []int
	complete    *report.Summary
}

func (r *recordingEmitter) EmitStart(total int, dryRun bool) {
	r.startTotal = total
	r.startDryRun = dryRun
}

func (r *recordingEmitter) EmitRecord(e report.Entry, index, total int) {
	r.records = append(r.records, e)
	r.indices = append(r.indices, index)
}

func (r *recordingEmitter) EmitComplete(s report.Summary) {
	r.complete = &s
}

func TestRunEmitsProgress(t *testing.T) {
	client := newStubClient()
	client.snapshots["10.5072/a"] = titledSnapshot("10.5072/a", "en", "Old")

	emitter := &recordingEmitter{}
	ex := newTestExecutor(t, client, Options{Progress: emitter})
	_, err := ex.Run(context.Background(), []tabular.Record{
		modifyRecord("10.5072/a", 2, map[string]string{"new_title": "en:New"}),
		modifyRecord("10.5072/missing", 3, map[string]string{"new_title": "en:New"}),
		{ResourceID: "", Action: tabular.ActionModify, Fields: nil, Line: 4},
	})

	require.NoError(t, err)
	require.Equal(t, 3, emitter.startTotal)
	assert.False(t, emitter.startDryRun)

	require.Len(t, emitter.records, 3)
	assert.Equal(t, []int{1, 2, 3}, emitter.indices)
	assert.Equal(t, report.StatusSuccess, emitter.records[0].Status)
	assert.Equal(t, report.StatusFailed, emitter.records[1].Status)
	assert.Equal(t, report.StatusSkipped, emitter.records[2].Status)

	require.NotNil(t, emitter.complete)
	assert.Equal(t, 3, emitter.complete.Processed)
	assert.Equal(t, 1, emitter.complete.Failed)
}
