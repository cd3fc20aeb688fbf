package store

import (
	"database/sql"
	"fmt"

	"github.com/dkomarov/go-auth-keeper/internal/logger"
	"github.com/dkomarov/go-auth-keeper/migrations"
)

type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// faultError wraps a failed driver call in the given sentinel. When the
// backend's classifier reports the error as retryable, the result is
// additionally tagged with [ErrTransientDBFault] so callers can tell a
// transient outage from a permanent failure via errors.Is.
func (db *DB) faultError(sentinel, err error) error {
	if db.errorClassificator != nil && db.errorClassificator.Classify(err) == Retryable {
		return fmt.Errorf("%w: %w: %w", ErrTransientDBFault, sentinel, err)
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}

// Migrate applies the embedded schema migrations. Only the PostgreSQL
// backend uses goose; the SQLite backend bootstraps its schema at
// connection time.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}
