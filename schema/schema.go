// Package schema holds the field mapping registry: the read-only table that
// maps tabular input columns (new_title, new_keywords, ...) to typed,
// language-aware metadata properties with per-field parse and merge policies.
package schema

import (
	"github.com/meridios/cura/errors"
)

// ValueFormat selects how a raw cell value is parsed into metadata entries.
// Each format has exactly one parser implementation in the parser package.
type ValueFormat string

const (
	// FormatMultilingual splits on `|` into language segments, each segment
	// on the first `:` into (lang, text). One entry per language segment.
	FormatMultilingual ValueFormat = "multilingual"

	// FormatTermList applies language segmentation like multilingual, then
	// splits each segment's text on `;` into terms. One entry per term,
	// each carrying its segment's language.
	FormatTermList ValueFormat = "term_list"

	// FormatSemicolonSplit splits on `;`. One entry per item, never a language.
	FormatSemicolonSplit ValueFormat = "semicolon_split"

	// FormatArray applies language segmentation, then splits each segment's
	// text on `;` into structured names. All names of one language are packed
	// into a single entry whose value is the name list.
	FormatArray ValueFormat = "array"

	// FormatRightsList parses `group,ROLE` pairs separated by `;` into the
	// record's access list rather than its metadata list.
	FormatRightsList ValueFormat = "rights_list"

	// FormatPlain passes the value through as a single string entry.
	FormatPlain ValueFormat = "plain"

	// FormatDate passes the value through as a single date-typed entry.
	FormatDate ValueFormat = "date"

	// FormatURI passes the value through as a single URI-typed entry.
	FormatURI ValueFormat = "uri"
)

// ParseValueFormat maps a raw format spelling (as found in extension files)
// to a known ValueFormat.
func ParseValueFormat(raw string) (ValueFormat, error) {
	switch ValueFormat(raw) {
	case FormatMultilingual, FormatTermList, FormatSemicolonSplit, FormatArray,
		FormatRightsList, FormatPlain, FormatDate, FormatURI:
		return ValueFormat(raw), nil
	}
	return "", errors.Newf("unknown value format %q", raw)
}

// CarriesLanguage reports whether entries built from this format may carry
// a language tag.
func (f ValueFormat) CarriesLanguage() bool {
	switch f {
	case FormatMultilingual, FormatTermList, FormatArray:
		return true
	}
	return false
}

// ListShaped reports whether the format produces a list of values rather
// than a single scalar text. List-shaped fields always merge with ReplaceAll.
func (f ValueFormat) ListShaped() bool {
	switch f {
	case FormatTermList, FormatSemicolonSplit, FormatArray, FormatRightsList:
		return true
	}
	return false
}

// MergeStrategy selects how newly built entries combine with a record's
// existing entries for the same property.
type MergeStrategy string

const (
	// ReplaceAll discards every existing entry for the property, regardless
	// of language, and substitutes the new set entirely.
	ReplaceAll MergeStrategy = "REPLACE_ALL"

	// ReplaceByLanguage replaces only entries whose language appears in the
	// new input; entries for unmentioned languages carry over unchanged.
	ReplaceByLanguage MergeStrategy = "REPLACE_BY_LANGUAGE"
)

// ParseMergeStrategy maps a raw strategy spelling to a known MergeStrategy.
func ParseMergeStrategy(raw string) (MergeStrategy, error) {
	switch MergeStrategy(raw) {
	case ReplaceAll, ReplaceByLanguage:
		return MergeStrategy(raw), nil
	}
	return "", errors.Newf("unknown merge strategy %q", raw)
}

// FieldConfig describes one input column: which property it writes, how its
// raw value is parsed, and how the parsed entries merge into the existing
// snapshot. The registry holds one FieldConfig per column, frozen at startup.
type FieldConfig struct {
	Column   string        `yaml:"column" json:"column"`     // Input column name, unique, new_-prefixed
	Property string        `yaml:"property" json:"property"` // Property URI written by this column
	Format   ValueFormat   `yaml:"format" json:"format"`     // Cell parse format
	Merge    MergeStrategy `yaml:"merge" json:"merge"`       // Merge policy for built entries
	System   bool          `yaml:"system" json:"system"`     // System fields never carry a language
}

// Validate checks the internal consistency of a single field configuration.
// The merge policy is fixed per shape: multilingual scalar text merges by
// language, everything list-shaped or scalar-single replaces entirely.
func (c FieldConfig) Validate() error {
	if c.Column == "" {
		return errors.New("field config missing column name")
	}
	if c.Property == "" && c.Format != FormatRightsList {
		return errors.Newf("column %s: missing property URI", c.Column)
	}
	if _, err := ParseValueFormat(string(c.Format)); err != nil {
		return errors.Wrapf(err, "column %s", c.Column)
	}
	if _, err := ParseMergeStrategy(string(c.Merge)); err != nil {
		return errors.Wrapf(err, "column %s", c.Column)
	}
	if c.Format == FormatMultilingual && c.Merge != ReplaceByLanguage {
		return errors.Newf("column %s: multilingual fields must merge by language", c.Column)
	}
	if c.Format != FormatMultilingual && c.Merge != ReplaceAll {
		// ReplaceByLanguage on a language-less format would never match
		// anything and duplicate entries instead of replacing them.
		return errors.Newf("column %s: %s fields must replace all entries", c.Column, c.Format)
	}
	if c.System && c.Format.CarriesLanguage() {
		return errors.Newf("column %s: system fields may not use a language-carrying format", c.Column)
	}
	return nil
}
