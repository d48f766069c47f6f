package meta

import (
	"time"
)

// Snapshot is a record's state as fetched from the registry immediately
// before a modification. Snapshots are never cached across records: each
// modification fetches its own, so merges always start from the registry's
// current view.
type Snapshot struct {
	ID       string        `json:"id"`                 // Record identifier (e.g. doi:10.5072/FK2/ABC)
	Entries  []Entry       `json:"entries"`            // All metadata statements
	Access   []AccessEntry `json:"access,omitempty"`   // Group/role grants
	Version  int64         `json:"version,omitempty"`  // Registry revision counter
	Modified time.Time     `json:"modified,omitempty"` // Last registry-side change
}

// EmptySnapshot returns a snapshot with no metadata, used as the starting
// point when creating a record that does not exist yet.
func EmptySnapshot(id string) *Snapshot {
	return &Snapshot{ID: id}
}

// Clone returns a deep copy of the snapshot. Entry values of type []Name
// are copied so mutations of the clone never leak into the original.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	out := &Snapshot{
		ID:       s.ID,
		Version:  s.Version,
		Modified: s.Modified,
	}
	if s.Entries != nil {
		out.Entries = make([]Entry, len(s.Entries))
		for i, e := range s.Entries {
			if names := e.Names(); names != nil {
				copied := make([]Name, len(names))
				copy(copied, names)
				e.Value = copied
			}
			out.Entries[i] = e
		}
	}
	if s.Access != nil {
		out.Access = make([]AccessEntry, len(s.Access))
		copy(out.Access, s.Access)
	}
	return out
}

// Property returns all entries for the given property URI, in order.
func (s *Snapshot) Property(property string) []Entry {
	return EntriesForProperty(s.Entries, property)
}
