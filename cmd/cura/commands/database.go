package commands

import (
	"database/sql"

	"github.com/meridios/cura/config"
	"github.com/meridios/cura/db"
	"github.com/meridios/cura/errors"
	"github.com/meridios/cura/logger"
)

// openDatabase opens and migrates the run-history database at the given
// path. If dbPath is empty, it uses the configured path. Uses logger.Logger
// for db operations.
func openDatabase(dbPath string) (*sql.DB, error) {
	if dbPath == "" {
		path, err := config.GetDatabasePath()
		if err != nil {
			return nil, errors.Wrap(err, "failed to get database path")
		}
		if path == "" {
			dbPath = "cura.db"
		} else {
			dbPath = path
		}
	}

	database, err := db.Open(dbPath, logger.Logger)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database at %s", dbPath)
	}

	if err := db.Migrate(database, logger.Logger); err != nil {
		database.Close()
		return nil, errors.Wrapf(err, "failed to run migrations on %s", dbPath)
	}

	return database, nil
}
