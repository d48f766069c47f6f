// Package meta defines the metadata model shared across cura: entries,
// access rules, and record snapshots as fetched from the remote registry.
package meta

// XSD type URIs attached to metadata entries. The registry distinguishes
// plain strings, dates, and URI-valued properties by type annotation.
const (
	TypeString = "http://www.w3.org/2001/XMLSchema#string"
	TypeDate   = "http://www.w3.org/2001/XMLSchema#date"
	TypeURI    = "http://www.w3.org/2001/XMLSchema#anyURI"
)

// LangUndetermined is the BCP-47 tag recorded when a multilingual value
// arrives without an explicit language prefix.
const LangUndetermined = "und"

// Entry is one metadata statement on a record: a property URI with a value,
// an optional language tag, and a value type annotation.
//
// Value is a plain string for most properties. Properties holding structured
// name lists (creators, contributors) carry []Name instead, always packed as
// one Entry per language.
type Entry struct {
	Property string      `json:"property" db:"property"`        // Property URI (e.g. http://purl.org/dc/terms/title)
	Value    interface{} `json:"value" db:"value"`              // string or []Name
	Lang     string      `json:"lang,omitempty" db:"lang"`      // BCP-47 tag, empty when the property carries no language
	Type     string      `json:"type,omitempty" db:"type_uri"`  // Value type URI (TypeString, TypeDate, TypeURI)
}

// Name is a single structured name inside an array-valued entry.
type Name struct {
	Name string `json:"name"`
}

// HasLang reports whether the entry carries a language tag.
func (e Entry) HasLang() bool {
	return e.Lang != ""
}

// StringValue returns the entry value as a string, or "" when the value
// holds structured names instead.
func (e Entry) StringValue() string {
	if s, ok := e.Value.(string); ok {
		return s
	}
	return ""
}

// Names returns the structured name list of an array-valued entry,
// or nil for scalar entries.
func (e Entry) Names() []Name {
	if ns, ok := e.Value.([]Name); ok {
		return ns
	}
	return nil
}

// EntriesForProperty filters entries down to those carrying the given property URI,
// preserving order.
func EntriesForProperty(entries []Entry, property string) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.Property == property {
			out = append(out, e)
		}
	}
	return out
}

// Languages returns the distinct language tags present among the given
// entries, in first-seen order. Entries without a language are skipped.
func Languages(entries []Entry) []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range entries {
		if e.Lang == "" || seen[e.Lang] {
			continue
		}
		seen[e.Lang] = true
		out = append(out, e.Lang)
	}
	return out
}
