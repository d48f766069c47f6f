package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValueFormat(t *testing.T) {
	for _, valid := range []string{
		"multilingual", "term_list", "semicolon_split", "array",
		"rights_list", "plain", "date", "uri",
	} {
		got, err := ParseValueFormat(valid)
		require.NoError(t, err, valid)
		assert.Equal(t, ValueFormat(valid), got)
	}

	_, err := ParseValueFormat("csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "csv")
}

func TestParseMergeStrategy(t *testing.T) {
	for _, valid := range []string{"REPLACE_ALL", "REPLACE_BY_LANGUAGE"} {
		got, err := ParseMergeStrategy(valid)
		require.NoError(t, err, valid)
		assert.Equal(t, MergeStrategy(valid), got)
	}

	_, err := ParseMergeStrategy("MERGE_APPEND")
	require.Error(t, err)
}

func TestValueFormatCarriesLanguage(t *testing.T) {
	assert.True(t, FormatMultilingual.CarriesLanguage())
	assert.True(t, FormatTermList.CarriesLanguage())
	assert.True(t, FormatArray.CarriesLanguage())
	assert.False(t, FormatSemicolonSplit.CarriesLanguage())
	assert.False(t, FormatRightsList.CarriesLanguage())
	assert.False(t, FormatPlain.CarriesLanguage())
	assert.False(t, FormatDate.CarriesLanguage())
	assert.False(t, FormatURI.CarriesLanguage())
}

func TestValueFormatListShaped(t *testing.T) {
	assert.True(t, FormatTermList.ListShaped())
	assert.True(t, FormatSemicolonSplit.ListShaped())
	assert.True(t, FormatArray.ListShaped())
	assert.True(t, FormatRightsList.ListShaped())
	assert.False(t, FormatMultilingual.ListShaped())
	assert.False(t, FormatPlain.ListShaped())
}

func TestFieldConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     FieldConfig
		wantErr string
	}{
		{
			name: "valid multilingual",
			cfg:  FieldConfig{Column: "new_title", Property: "http://purl.org/dc/terms/title", Format: FormatMultilingual, Merge: ReplaceByLanguage},
		},
		{
			name: "valid rights list without property",
			cfg:  FieldConfig{Column: "new_rights", Format: FormatRightsList, Merge: ReplaceAll},
		},
		{
			name:    "missing column",
			cfg:     FieldConfig{Property: "http://purl.org/dc/terms/title", Format: FormatPlain, Merge: ReplaceAll},
			wantErr: "missing column",
		},
		{
			name:    "missing property",
			cfg:     FieldConfig{Column: "new_title", Format: FormatPlain, Merge: ReplaceAll},
			wantErr: "missing property",
		},
		{
			name:    "unknown format",
			cfg:     FieldConfig{Column: "new_x", Property: "p", Format: "tsv", Merge: ReplaceAll},
			wantErr: "unknown value format",
		},
		{
			name:    "unknown merge",
			cfg:     FieldConfig{Column: "new_x", Property: "p", Format: FormatPlain, Merge: "APPEND"},
			wantErr: "unknown merge strategy",
		},
		{
			name:    "multilingual must merge by language",
			cfg:     FieldConfig{Column: "new_title", Property: "p", Format: FormatMultilingual, Merge: ReplaceAll},
			wantErr: "must merge by language",
		},
		{
			name:    "term list must replace all",
			cfg:     FieldConfig{Column: "new_keywords", Property: "p", Format: FormatTermList, Merge: ReplaceByLanguage},
			wantErr: "must replace all",
		},
		{
			name:    "plain must replace all",
			cfg:     FieldConfig{Column: "new_status", Property: "p", Format: FormatPlain, Merge: ReplaceByLanguage},
			wantErr: "must replace all",
		},
		{
			name:    "system field with language format",
			cfg:     FieldConfig{Column: "new_status", Property: "p", Format: FormatMultilingual, Merge: ReplaceByLanguage, System: true},
			wantErr: "may not use a language-carrying format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
