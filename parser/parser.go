// Package parser converts raw tabular cell values into structured metadata
// entries, one pure parsing function per value format. Parsing is lenient:
// malformed pieces degrade to literal interpretations or are dropped with a
// warning, and never fail the surrounding record.
package parser

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/meridios/cura/meta"
	"github.com/meridios/cura/schema"
)

// Warning records a non-fatal parse issue on one input column. Warnings are
// logged by the executor and never fail a record.
type Warning struct {
	Column  string `json:"column"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Column, w.Message)
}

func warnf(column, format string, args ...interface{}) Warning {
	return Warning{Column: column, Message: fmt.Sprintf(format, args...)}
}

// Change is one column's parsed outcome, ready to merge into a snapshot.
// Metadata fields fill Entries; the rights field fills Access instead.
type Change struct {
	Column  string
	Config  schema.FieldConfig
	Entries []meta.Entry
	Access  []meta.AccessEntry
}

// Empty reports whether the change carries nothing to merge. Supplied cells
// that parse to nothing (all pieces dropped) come out empty and leave the
// target property untouched.
func (c Change) Empty() bool {
	return len(c.Entries) == 0 && len(c.Access) == 0
}

// BuildChange parses one cell per the column's field configuration.
// A blank cell returns an empty change with no warnings: the field is
// simply untouched.
func BuildChange(cfg schema.FieldConfig, raw string) (Change, []Warning) {
	change := Change{Column: cfg.Column, Config: cfg}

	if strings.TrimSpace(raw) == "" {
		return change, nil
	}

	var warnings []Warning
	switch cfg.Format {
	case schema.FormatMultilingual:
		change.Entries, warnings = parseMultilingual(cfg, raw)
	case schema.FormatTermList:
		change.Entries, warnings = parseTermList(cfg, raw)
	case schema.FormatSemicolonSplit:
		change.Entries = parseSemicolonSplit(cfg, raw)
	case schema.FormatArray:
		change.Entries, warnings = parseArray(cfg, raw)
	case schema.FormatRightsList:
		change.Access, warnings = ParseAccessList(cfg.Column, raw)
	case schema.FormatPlain:
		change.Entries = []meta.Entry{scalarEntry(cfg, raw, meta.TypeString)}
	case schema.FormatDate:
		change.Entries, warnings = parseDate(cfg, raw)
	case schema.FormatURI:
		change.Entries, warnings = parseURI(cfg, raw)
	default:
		// Unreachable for registry-validated configs
		warnings = append(warnings, warnf(cfg.Column, "unhandled value format %s", cfg.Format))
	}

	if change.Empty() {
		warnings = append(warnings, warnf(cfg.Column, "value %q produced no usable entries, field left untouched", raw))
	}
	return change, warnings
}

// segment is one language-tagged piece of a multilingual cell.
type segment struct {
	lang string
	text string
}

// splitSegments breaks a raw multilingual value on `|` and resolves each
// piece's language prefix. A piece without a prefix, or with a prefix that
// does not look like a language tag, is kept as literal text under "und".
func splitSegments(column, raw string) ([]segment, []Warning) {
	var segments []segment
	var warnings []Warning

	for _, piece := range strings.Split(raw, "|") {
		if strings.TrimSpace(piece) == "" {
			continue
		}

		idx := strings.Index(piece, ":")
		if idx < 0 {
			warnings = append(warnings, warnf(column, "segment %q has no language prefix, recording as undetermined", piece))
			segments = append(segments, segment{lang: meta.LangUndetermined, text: strings.TrimSpace(piece)})
			continue
		}

		lang, ok := normalizeLang(piece[:idx])
		if !ok {
			warnings = append(warnings, warnf(column, "segment %q has no valid language prefix, recording literally as undetermined", piece))
			segments = append(segments, segment{lang: meta.LangUndetermined, text: strings.TrimSpace(piece)})
			continue
		}

		text := strings.TrimSpace(piece[idx+1:])
		if text == "" {
			warnings = append(warnings, warnf(column, "segment for language %s is empty, dropped", lang))
			continue
		}
		segments = append(segments, segment{lang: lang, text: text})
	}

	return segments, warnings
}

// parseMultilingual emits one scalar entry per language segment,
// order-preserving.
func parseMultilingual(cfg schema.FieldConfig, raw string) ([]meta.Entry, []Warning) {
	segments, warnings := splitSegments(cfg.Column, raw)

	entries := make([]meta.Entry, 0, len(segments))
	for _, seg := range segments {
		entries = append(entries, meta.Entry{
			Property: cfg.Property,
			Value:    seg.text,
			Lang:     seg.lang,
			Type:     meta.TypeString,
		})
	}
	return entries, warnings
}

// parseTermList splits each language segment's text on `;` and emits one
// entry per term, each carrying its segment's language.
func parseTermList(cfg schema.FieldConfig, raw string) ([]meta.Entry, []Warning) {
	segments, warnings := splitSegments(cfg.Column, raw)

	var entries []meta.Entry
	for _, seg := range segments {
		for _, term := range splitItems(seg.text) {
			entries = append(entries, meta.Entry{
				Property: cfg.Property,
				Value:    term,
				Lang:     seg.lang,
				Type:     meta.TypeString,
			})
		}
	}
	return entries, warnings
}

// parseSemicolonSplit emits one entry per trimmed item. These fields never
// carry a language.
func parseSemicolonSplit(cfg schema.FieldConfig, raw string) []meta.Entry {
	items := splitItems(raw)

	entries := make([]meta.Entry, 0, len(items))
	for _, item := range items {
		entries = append(entries, meta.Entry{
			Property: cfg.Property,
			Value:    item,
			Type:     meta.TypeString,
		})
	}
	return entries
}

// parseArray packs all names of one language segment into a single entry
// whose value is the full name list. One entry per language, never one per
// name.
func parseArray(cfg schema.FieldConfig, raw string) ([]meta.Entry, []Warning) {
	segments, warnings := splitSegments(cfg.Column, raw)

	var entries []meta.Entry
	for _, seg := range segments {
		items := splitItems(seg.text)
		if len(items) == 0 {
			continue
		}
		namesList := make([]meta.Name, 0, len(items))
		for _, item := range items {
			namesList = append(namesList, meta.Name{Name: item})
		}
		entries = append(entries, meta.Entry{
			Property: cfg.Property,
			Value:    namesList,
			Lang:     seg.lang,
		})
	}
	return entries, warnings
}

// isoDateShape matches ISO-8601 calendar dates with optional precision
// reduction (YYYY, YYYY-MM, YYYY-MM-DD) and optional time part.
var isoDateShape = regexp.MustCompile(`^\d{4}(-\d{2}(-\d{2})?)?([T ].+)?$`)

func parseDate(cfg schema.FieldConfig, raw string) ([]meta.Entry, []Warning) {
	value := strings.TrimSpace(raw)

	var warnings []Warning
	if !isoDateShape.MatchString(value) {
		warnings = append(warnings, warnf(cfg.Column, "value %q does not look like an ISO-8601 date", value))
	}
	return []meta.Entry{scalarEntry(cfg, value, meta.TypeDate)}, warnings
}

func parseURI(cfg schema.FieldConfig, raw string) ([]meta.Entry, []Warning) {
	value := strings.TrimSpace(raw)

	var warnings []Warning
	if u, err := url.Parse(value); err != nil || !u.IsAbs() {
		warnings = append(warnings, warnf(cfg.Column, "value %q does not look like an absolute URI", value))
	}
	return []meta.Entry{scalarEntry(cfg, value, meta.TypeURI)}, warnings
}

func scalarEntry(cfg schema.FieldConfig, raw, typeURI string) meta.Entry {
	return meta.Entry{
		Property: cfg.Property,
		Value:    strings.TrimSpace(raw),
		Type:     typeURI,
	}
}

// splitItems splits on `;`, trims, and drops empties. Trailing separators
// are a normal artifact of hand-edited tables and dropped silently.
func splitItems(raw string) []string {
	var items []string
	for _, item := range strings.Split(raw, ";") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		items = append(items, item)
	}
	return items
}
