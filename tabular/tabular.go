// Package tabular reads modification records from CSV input tables. A
// table's header decides which pipeline it belongs to: resource_id plus
// action columns select the metadata modification pipeline handled by this
// tool, file or folder columns select the deposit pipeline handled
// elsewhere.
package tabular

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/meridios/cura/errors"
)

// Well-known column names. Everything else in a modify-shaped table is a
// field column matched against the mapping registry.
const (
	ColumnResourceID = "resource_id"
	ColumnAction     = "action"

	ActionModify = "modify"
	ActionCreate = "create"
)

// Pipeline identifies which processing pipeline an input table selects.
type Pipeline string

const (
	PipelineModify  Pipeline = "modify"
	PipelineDeposit Pipeline = "deposit"
	PipelineUnknown Pipeline = "unknown"
)

// Record is one input row. Fields holds every column except resource_id and
// action, keyed by normalized column name, values verbatim. Line is the
// physical line the row starts on, for error messages.
type Record struct {
	ResourceID string
	Action     string
	Fields     map[string]string
	Line       int
}

// ReadRecords parses a CSV table with a header row. The header must select
// the modification pipeline; deposit manifests and unclassifiable tables are
// rejected before any row is read. Structural problems (unreadable header,
// quoting errors, rows whose field count disagrees with the header) are
// fatal input errors: a misaligned row would put values under the wrong
// columns, which is worse than stopping.
func ReadRecords(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.Wrap(errors.ErrInvalidInput, "input table is empty")
	}
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "read header: %v", err)
	}
	columns := NormalizeHeader(header)

	switch DetectPipeline(columns) {
	case PipelineDeposit:
		return nil, errors.Wrap(errors.ErrInvalidInput,
			"table is a deposit manifest (file/folder columns); deposits are handled by the upload tool")
	case PipelineUnknown:
		return nil, errors.Wrapf(errors.ErrInvalidInput,
			"cannot classify table: header must contain %s and %s columns and no deposit columns, got: %s",
			ColumnResourceID, ColumnAction, strings.Join(columns, ", "))
	}

	var records []Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// csv.ParseError messages already name the offending line
			return nil, errors.Wrapf(errors.ErrInvalidInput, "%v", err)
		}

		line, _ := reader.FieldPos(0)
		records = append(records, recordFromRow(columns, row, line))
	}
	return records, nil
}

func recordFromRow(columns, row []string, line int) Record {
	record := Record{
		Fields: make(map[string]string, len(columns)),
		Line:   line,
	}
	for i, column := range columns {
		if i >= len(row) {
			break
		}
		switch column {
		case ColumnResourceID:
			record.ResourceID = strings.TrimSpace(row[i])
		case ColumnAction:
			record.Action = strings.ToLower(strings.TrimSpace(row[i]))
		default:
			record.Fields[column] = row[i]
		}
	}
	return record
}

// NormalizeHeader lowercases and trims column names and strips the UTF-8
// BOM spreadsheet exports put before the first one.
func NormalizeHeader(header []string) []string {
	columns := make([]string, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\uFEFF")
		}
		columns[i] = strings.ToLower(strings.TrimSpace(name))
	}
	return columns
}

// DetectPipeline classifies a normalized header. A table carrying both
// shapes is ambiguous and reported as unknown rather than guessed at.
func DetectPipeline(columns []string) Pipeline {
	var hasID, hasAction, hasDeposit bool
	for _, column := range columns {
		switch column {
		case ColumnResourceID:
			hasID = true
		case ColumnAction:
			hasAction = true
		case "file", "files", "folder", "directory":
			hasDeposit = true
		}
	}

	isModify := hasID && hasAction
	switch {
	case isModify && hasDeposit:
		return PipelineUnknown
	case isModify:
		return PipelineModify
	case hasDeposit:
		return PipelineDeposit
	default:
		return PipelineUnknown
	}
}

// SupportedAction reports whether the action can be executed by the
// modification pipeline.
func SupportedAction(action string) bool {
	return action == ActionModify || action == ActionCreate
}
