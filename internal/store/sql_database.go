package store

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/vrudenko/calendar-keeper/internal/config"
	"github.com/vrudenko/calendar-keeper/internal/logger"
	"github.com/vrudenko/calendar-keeper/migrations"
)

// DB wraps a *sql.DB together with the driver name and a squirrel statement
// builder preconfigured with the placeholder format the driver expects
// ($1 for pgx, ? for sqlite3).
type DB struct {
	*sql.DB
	driver  string
	builder sq.StatementBuilderType
	logger  *logger.Logger
}

// Migrate applies all pending schema migrations for the connected driver.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.driver)
}

// isUniqueViolation reports whether err is a unique-constraint violation as
// reported by the connected driver.
func (db *DB) isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	switch db.driver {
	case config.DriverPostgres:
		return isPostgresUniqueViolation(err)
	case config.DriverSQLite:
		return isSQLiteUniqueViolation(err)
	}

	return false
}
