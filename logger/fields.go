package logger

import (
	"context"

	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across cura.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Identity and context
	FieldRunID    = "run_id"
	FieldRecordID = "record_id"
	FieldAction   = "action"

	// Components
	FieldComponent = "component"

	// Operations
	FieldOperation = "operation"
	FieldMethod    = "method"
	FieldPath      = "path"

	// Timing
	FieldDurationMS = "duration_ms"
	FieldStartTime  = "start_time"
	FieldEndTime    = "end_time"

	// Errors
	FieldError     = "error"
	FieldErrorType = "error_type"

	// Counts and sizes
	FieldCount      = "count"
	FieldBatchSize  = "batch_size"
	FieldTotalCount = "total_count"
	FieldAttempt    = "attempt"

	// Status
	FieldStatus = "status"
	FieldState  = "state"

	// Files and paths
	FieldFile = "file"
	FieldLine = "line"

	// Network
	FieldAddress = "address"
	FieldHost    = "host"

	// Curation-specific
	FieldColumn   = "column"   // Input column name (e.g. new_title)
	FieldProperty = "property" // Metadata property URI
	FieldLanguage = "language" // Language tag on a metadata entry
)

// Context keys for propagating logging context
type contextKey string

const (
	runIDKey     contextKey = "logger_run_id"
	recordIDKey  contextKey = "logger_record_id"
	componentKey contextKey = "logger_component"
)

// WithRunID adds a batch run ID to the context for logging
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// WithRecordID adds a record ID to the context for logging
func WithRecordID(ctx context.Context, recordID string) context.Context {
	return context.WithValue(ctx, recordIDKey, recordID)
}

// WithComponent adds a component name to the context for logging
func WithComponent(ctx context.Context, component string) context.Context {
	return context.WithValue(ctx, componentKey, component)
}

// FieldsFromContext extracts logging fields from context.
// Returns key-value pairs suitable for use with Infow/Errorw/etc.
func FieldsFromContext(ctx context.Context) []interface{} {
	var fields []interface{}

	if runID, ok := ctx.Value(runIDKey).(string); ok && runID != "" {
		fields = append(fields, FieldRunID, runID)
	}
	if recordID, ok := ctx.Value(recordIDKey).(string); ok && recordID != "" {
		fields = append(fields, FieldRecordID, recordID)
	}
	if component, ok := ctx.Value(componentKey).(string); ok && component != "" {
		fields = append(fields, FieldComponent, component)
	}

	return fields
}

// LoggerFromContext returns a logger with fields extracted from context.
// Use this to get a logger that automatically includes run_id, record_id, etc.
func LoggerFromContext(ctx context.Context) *zap.SugaredLogger {
	fields := FieldsFromContext(ctx)
	if len(fields) == 0 {
		return Logger
	}
	return Logger.With(fields...)
}

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	type Executor struct {
//	    logger *zap.SugaredLogger
//	}
//
//	func NewExecutor() *Executor {
//	    return &Executor{
//	        logger: logger.ComponentLogger("batch.executor"),
//	    }
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// ChildLogger creates a child logger with additional context.
// Use for sub-operations that need extra context fields.
//
// Example:
//
//	recordLogger := logger.ChildLogger(baseLogger, "record_id", rec.ResourceID)
func ChildLogger(parent *zap.SugaredLogger, keysAndValues ...interface{}) *zap.SugaredLogger {
	return parent.With(keysAndValues...)
}
