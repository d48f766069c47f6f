package parser

import (
	"regexp"
	"strings"

	"golang.org/x/text/language"
)

// langTagShape is the syntactic shape of a BCP-47 tag as it appears in
// multilingual cell prefixes: a 2-3 letter primary subtag with optional
// short subtags. Longer words ("Note", "Warning") fail this check so a
// colon inside ordinary text is not mistaken for a language prefix.
var langTagShape = regexp.MustCompile(`^[A-Za-z]{2,3}([-_][A-Za-z0-9]{1,8})*$`)

// normalizeLang validates a candidate language prefix and returns its
// canonical spelling. ok is false when the candidate does not look like a
// language tag at all; callers then fall back to a literal interpretation.
func normalizeLang(candidate string) (string, bool) {
	candidate = strings.TrimSpace(candidate)
	if !langTagShape.MatchString(candidate) {
		return "", false
	}

	// Canonicalize spelling when the tag is well-formed ("EN-us" -> "en-US").
	// Well-formed but unregistered tags parse with a non-nil error and are
	// kept as written, lowercased.
	normalized := strings.ReplaceAll(candidate, "_", "-")
	if tag, err := language.Parse(normalized); err == nil {
		return tag.String(), true
	}
	return strings.ToLower(normalized), true
}
