package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridios/cura/meta"
	"github.com/meridios/cura/parser"
	"github.com/meridios/cura/schema"
)

const (
	titleProp   = "http://purl.org/dc/terms/title"
	subjectProp = "http://purl.org/dc/terms/subject"
)

func entry(property, value, lang string) meta.Entry {
	return meta.Entry{Property: property, Value: value, Lang: lang, Type: meta.TypeString}
}

// A Spanish title must survive an update that only supplies French and
// English.
func TestLanguageScopedMerge(t *testing.T) {
	existing := []meta.Entry{entry(titleProp, "Hola", "es")}
	incoming := []meta.Entry{
		entry(titleProp, "Titre", "fr"),
		entry(titleProp, "Title", "en"),
	}

	next := Apply(existing, titleProp, incoming, schema.ReplaceByLanguage)

	require.Len(t, next, 3)
	assert.Equal(t, "Hola", next[0].Value)
	assert.Equal(t, "Titre", next[1].Value)
	assert.Equal(t, "Title", next[2].Value)
}

// Replace-all discards every existing entry for the property, including
// languages the new input never mentions.
func TestReplaceAllMerge(t *testing.T) {
	existing := []meta.Entry{
		entry(subjectProp, "A", "fr"),
		entry(subjectProp, "B", "en"),
	}
	incoming := []meta.Entry{
		entry(subjectProp, "C", "fr"),
		entry(subjectProp, "D", "fr"),
	}

	next := Apply(existing, subjectProp, incoming, schema.ReplaceAll)

	require.Len(t, next, 2)
	assert.Equal(t, entry(subjectProp, "C", "fr"), next[0])
	assert.Equal(t, entry(subjectProp, "D", "fr"), next[1])
}

func TestApplyPreservesOtherProperties(t *testing.T) {
	existing := []meta.Entry{
		entry(titleProp, "Old title", "en"),
		entry(subjectProp, "climate", "en"),
		entry(titleProp, "Titel", "de"),
	}
	incoming := []meta.Entry{entry(subjectProp, "ocean", "en")}

	for _, strategy := range []schema.MergeStrategy{schema.ReplaceAll, schema.ReplaceByLanguage} {
		next := Apply(existing, subjectProp, incoming, strategy)

		require.Len(t, next, 3, strategy)
		assert.Equal(t, "Old title", next[0].Value)
		assert.Equal(t, "ocean", next[1].Value)
		assert.Equal(t, "Titel", next[2].Value)
	}
}

func TestApplyNewPropertyAppends(t *testing.T) {
	existing := []meta.Entry{entry(titleProp, "Only title", "en")}
	incoming := []meta.Entry{entry(subjectProp, "glaciers", "en")}

	next := Apply(existing, subjectProp, incoming, schema.ReplaceAll)

	require.Len(t, next, 2)
	assert.Equal(t, titleProp, next[0].Property)
	assert.Equal(t, subjectProp, next[1].Property)
}

func TestApplyIdempotent(t *testing.T) {
	existing := []meta.Entry{
		entry(titleProp, "Hola", "es"),
		entry(titleProp, "Old", "en"),
		entry(subjectProp, "keep", "en"),
	}
	incoming := []meta.Entry{
		entry(titleProp, "Titre", "fr"),
		entry(titleProp, "Title", "en"),
	}

	for _, strategy := range []schema.MergeStrategy{schema.ReplaceAll, schema.ReplaceByLanguage} {
		once := Apply(existing, titleProp, incoming, strategy)
		twice := Apply(once, titleProp, incoming, strategy)
		assert.Equal(t, once, twice, strategy)
	}
}

func TestReplaceByLanguageMatchesUndetermined(t *testing.T) {
	existing := []meta.Entry{
		entry(titleProp, "untagged old", meta.LangUndetermined),
		entry(titleProp, "Hola", "es"),
	}
	incoming := []meta.Entry{entry(titleProp, "untagged new", meta.LangUndetermined)}

	next := Apply(existing, titleProp, incoming, schema.ReplaceByLanguage)

	require.Len(t, next, 2)
	assert.Equal(t, "untagged new", next[0].Value)
	assert.Equal(t, "Hola", next[1].Value)
}

func TestApplyDoesNotMutateInputs(t *testing.T) {
	existing := []meta.Entry{
		entry(titleProp, "Hola", "es"),
		entry(titleProp, "Old", "fr"),
	}
	incoming := []meta.Entry{entry(titleProp, "Titre", "fr")}

	Apply(existing, titleProp, incoming, schema.ReplaceByLanguage)

	assert.Equal(t, "Hola", existing[0].Value)
	assert.Equal(t, "Old", existing[1].Value)
}

func builtinChange(t *testing.T, column, raw string) parser.Change {
	t.Helper()
	cfg, ok := schema.Builtin().Lookup(column)
	require.True(t, ok, column)
	change, _ := parser.BuildChange(cfg, raw)
	return change
}

func TestRecord(t *testing.T) {
	snapshot := meta.Snapshot{
		ID: "10.5072/demo.1",
		Entries: []meta.Entry{
			entry(titleProp, "Hola", "es"),
			entry(subjectProp, "A", "fr"),
			entry(subjectProp, "B", "en"),
		},
		Access: []meta.AccessEntry{{Group: "old-group", Role: meta.RoleOwner}},
	}

	changes := []parser.Change{
		builtinChange(t, "new_title", "fr:Titre|en:Title"),
		builtinChange(t, "new_keywords", "fr:C;D"),
		builtinChange(t, "new_description", ""),
		builtinChange(t, "new_rights", "stewards,ROLE_ADMIN"),
	}

	next, modified := Record(snapshot, changes)

	assert.Equal(t, []string{"new_title", "new_keywords", "new_rights"}, modified)

	titles := meta.EntriesForProperty(next.Entries, titleProp)
	require.Len(t, titles, 3)
	assert.Equal(t, "Hola", titles[0].Value)
	assert.Equal(t, "Titre", titles[1].Value)
	assert.Equal(t, "Title", titles[2].Value)

	subjects := meta.EntriesForProperty(next.Entries, subjectProp)
	require.Len(t, subjects, 2)
	assert.Equal(t, "C", subjects[0].Value)
	assert.Equal(t, "fr", subjects[0].Lang)
	assert.Equal(t, "D", subjects[1].Value)
	assert.Equal(t, "fr", subjects[1].Lang)

	require.Len(t, next.Access, 1)
	assert.Equal(t, meta.AccessEntry{Group: "stewards", Role: meta.RoleAdmin}, next.Access[0])
}

func TestRecordIdempotent(t *testing.T) {
	snapshot := meta.Snapshot{
		ID:      "10.5072/demo.2",
		Entries: []meta.Entry{entry(titleProp, "Hola", "es")},
	}
	changes := []parser.Change{
		builtinChange(t, "new_title", "fr:Titre"),
		builtinChange(t, "new_keywords", "en:alpha;beta"),
	}

	once, modifiedOnce := Record(snapshot, changes)
	twice, modifiedTwice := Record(once, changes)

	assert.Equal(t, modifiedOnce, modifiedTwice)
	assert.Equal(t, once.Entries, twice.Entries)
	assert.Equal(t, once.Access, twice.Access)
}

func TestRecordDoesNotMutateSnapshot(t *testing.T) {
	snapshot := meta.Snapshot{
		ID:      "10.5072/demo.3",
		Entries: []meta.Entry{entry(titleProp, "Hola", "es")},
		Access:  []meta.AccessEntry{{Group: "g", Role: meta.RoleReader}},
	}

	changes := []parser.Change{
		builtinChange(t, "new_title", "es:Reemplazo"),
		builtinChange(t, "new_rights", "other,ROLE_EDITOR"),
	}

	_, _ = Record(snapshot, changes)

	assert.Equal(t, "Hola", snapshot.Entries[0].Value)
	assert.Equal(t, "g", snapshot.Access[0].Group)
}

func TestRecordAllChangesEmpty(t *testing.T) {
	snapshot := meta.Snapshot{ID: "10.5072/demo.4", Entries: []meta.Entry{entry(titleProp, "Keep", "en")}}

	next, modified := Record(snapshot, []parser.Change{
		builtinChange(t, "new_title", ""),
		builtinChange(t, "new_keywords", "   "),
	})

	assert.Empty(t, modified)
	assert.Equal(t, snapshot.Entries, next.Entries)
}
