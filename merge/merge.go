// Package merge combines newly parsed metadata entries with a resource's
// existing snapshot. Each field declares one of two strategies: REPLACE_ALL
// swaps out every existing entry for the property, REPLACE_BY_LANGUAGE only
// swaps entries whose language appears in the incoming set and carries the
// rest over untouched. Both are pure: inputs are never mutated and applying
// the same change twice yields the same snapshot.
package merge

import (
	"github.com/meridios/cura/meta"
	"github.com/meridios/cura/parser"
	"github.com/meridios/cura/schema"
)

// Apply merges incoming entries for one property into an existing entry
// list. Entries for other properties keep their positions; the incoming set
// lands where the property's first replaced entry sat, or at the end when
// nothing was replaced.
func Apply(existing []meta.Entry, property string, incoming []meta.Entry, strategy schema.MergeStrategy) []meta.Entry {
	if strategy == schema.ReplaceByLanguage {
		return replaceByLanguage(existing, property, incoming)
	}
	return replaceAll(existing, property, incoming)
}

func replaceAll(existing []meta.Entry, property string, incoming []meta.Entry) []meta.Entry {
	next := make([]meta.Entry, 0, len(existing)+len(incoming))

	inserted := false
	for _, entry := range existing {
		if entry.Property != property {
			next = append(next, entry)
			continue
		}
		if !inserted {
			next = append(next, incoming...)
			inserted = true
		}
	}
	if !inserted {
		next = append(next, incoming...)
	}
	return next
}

func replaceByLanguage(existing []meta.Entry, property string, incoming []meta.Entry) []meta.Entry {
	incomingLangs := make(map[string]bool, len(incoming))
	for _, entry := range incoming {
		incomingLangs[entry.Lang] = true
	}

	next := make([]meta.Entry, 0, len(existing)+len(incoming))

	inserted := false
	for _, entry := range existing {
		if entry.Property != property || !incomingLangs[entry.Lang] {
			next = append(next, entry)
			continue
		}
		if !inserted {
			next = append(next, incoming...)
			inserted = true
		}
	}
	if !inserted {
		next = append(next, incoming...)
	}
	return next
}

// Record merges every parsed change of one modification record into a copy
// of the snapshot. Empty changes leave their field untouched. The returned
// column names identify the fields that were merged, in change order, and
// are the same on a repeat application.
func Record(snapshot meta.Snapshot, changes []parser.Change) (meta.Snapshot, []string) {
	next := *snapshot.Clone()

	var modified []string
	for _, change := range changes {
		if change.Empty() {
			continue
		}

		if change.Config.Format == schema.FormatRightsList {
			next.Access = append([]meta.AccessEntry(nil), change.Access...)
		} else {
			next.Entries = Apply(next.Entries, change.Config.Property, change.Entries, change.Config.Merge)
		}
		modified = append(modified, change.Column)
	}
	return next, modified
}
