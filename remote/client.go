// Package remote is the HTTP client for the research-data registry that
// holds the records this tool curates. Failures are classified onto the
// shared error sentinels (not found, unauthorized, rate limited, validation
// rejected, server unavailable) so the batch executor can decide per record
// whether to retry, fail, or skip.
package remote

import (
	"context"

	"github.com/meridios/cura/meta"
)

// Client is the registry surface the batch executor depends on. The HTTP
// implementation lives in this package; tests substitute call-counting
// stubs.
type Client interface {
	// Fetch returns the record's current metadata snapshot. The snapshot is
	// fetched fresh for every record and never cached across records.
	Fetch(ctx context.Context, resourceID string) (meta.Snapshot, error)

	// Apply replaces the record's metadata and rights with the merged
	// snapshot. The write is atomic at the record level.
	Apply(ctx context.Context, resourceID string, snapshot meta.Snapshot) error

	// Create registers a new record under the given identifier. Unlike
	// Apply, there is no prior snapshot to fetch.
	Create(ctx context.Context, resourceID string, snapshot meta.Snapshot) error

	// Ping checks reachability and returns the server's identity, enforcing
	// the configured minimum server version.
	Ping(ctx context.Context) (ServerInfo, error)
}

// ServerInfo identifies the registry endpoint a run is talking to.
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}
