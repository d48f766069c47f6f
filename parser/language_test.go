package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLang(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		want      string
		ok        bool
	}{
		{"simple", "en", "en", true},
		{"uppercase", "EN", "en", true},
		{"three letter", "nld", "nl", true},
		{"region subtag", "pt-BR", "pt-BR", true},
		{"underscore separator", "pt_BR", "pt-BR", true},
		{"lowercase region canonicalized", "en-gb", "en-GB", true},
		{"script subtag", "zh-Hant", "zh-Hant", true},
		{"surrounding whitespace", " fr ", "fr", true},
		{"undetermined", "und", "und", true},
		{"too long for a tag", "Note", "", false},
		{"single letter", "a", "", false},
		{"digits in primary subtag", "e1", "", false},
		{"empty", "", "", false},
		{"whitespace only", "  ", "", false},
		{"embedded space", "en GB", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := normalizeLang(tt.candidate)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestNormalizeLangUnregisteredButWellFormed(t *testing.T) {
	// Shapes like a tag but is not a registered language. Kept lowercased
	// rather than rejected so curators can use project-internal tags.
	got, ok := normalizeLang("QQ")
	assert.True(t, ok)
	assert.Equal(t, "qq", got)
}
