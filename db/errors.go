package db

import (
	"strings"

	"github.com/meridios/cura/errors"
)

// ErrDatabaseClosed is returned when operations are attempted on a closed
// database, typically when a report query races a shutting-down run.
var ErrDatabaseClosed = errors.New("database is closed")

// IsDatabaseClosed checks if an error indicates the database connection is
// closed. It handles both wrapped ErrDatabaseClosed errors from this
// package and raw driver errors; the string fallback is needed because the
// sql driver returns error types we cannot wrap at the source.
func IsDatabaseClosed(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrDatabaseClosed) {
		return true
	}

	errMsg := err.Error()
	return strings.Contains(errMsg, "database is closed") ||
		strings.Contains(errMsg, "sql: database is closed")
}
