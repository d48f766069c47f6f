package remote

import (
	"time"

	"github.com/meridios/cura/meta"
)

// resourcePayload is the JSON shape of a record on the registry API, both
// as fetched and as sent back by Apply.
type resourcePayload struct {
	ID       string          `json:"id"`
	Metadata []entryPayload  `json:"metadata"`
	Rights   []accessPayload `json:"rights"`
	Version  int64           `json:"version,omitempty"`
	Modified time.Time       `json:"modified,omitzero"`
}

type entryPayload struct {
	Property string      `json:"property"`
	Value    interface{} `json:"value"`
	Lang     string      `json:"lang,omitempty"`
	Type     string      `json:"type,omitempty"`
}

type accessPayload struct {
	Group string `json:"group"`
	Role  string `json:"role"`
}

func payloadFromSnapshot(s meta.Snapshot) resourcePayload {
	payload := resourcePayload{
		ID:       s.ID,
		Metadata: make([]entryPayload, 0, len(s.Entries)),
		Rights:   make([]accessPayload, 0, len(s.Access)),
		Version:  s.Version,
		Modified: s.Modified,
	}
	for _, entry := range s.Entries {
		payload.Metadata = append(payload.Metadata, entryPayload{
			Property: entry.Property,
			Value:    entry.Value,
			Lang:     entry.Lang,
			Type:     entry.Type,
		})
	}
	for _, access := range s.Access {
		payload.Rights = append(payload.Rights, accessPayload{
			Group: access.Group,
			Role:  access.Role.WireName(),
		})
	}
	return payload
}

func (p resourcePayload) snapshot() meta.Snapshot {
	s := meta.Snapshot{
		ID:       p.ID,
		Entries:  make([]meta.Entry, 0, len(p.Metadata)),
		Access:   make([]meta.AccessEntry, 0, len(p.Rights)),
		Version:  p.Version,
		Modified: p.Modified,
	}
	for _, entry := range p.Metadata {
		s.Entries = append(s.Entries, meta.Entry{
			Property: entry.Property,
			Value:    entry.Value,
			Lang:     entry.Lang,
			Type:     entry.Type,
		})
	}
	for _, access := range p.Rights {
		s.Access = append(s.Access, meta.AccessEntry{
			Group: access.Group,
			Role:  meta.RoleFromWire(access.Role),
		})
	}
	return s
}
