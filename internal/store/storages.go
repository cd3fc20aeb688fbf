package store

import (
	"context"
	"fmt"

	"github.com/dkomarov/go-auth-keeper/internal/config"
	"github.com/dkomarov/go-auth-keeper/internal/logger"
)

// Storages aggregates every repository backed by the shared database
// connection. It is the single unit handed to the service layer.
type Storages struct {
	Users      UserRepository
	Identities IdentityRepository

	db *DB
}

// NewStorages opens the configured database backend, applies the schema,
// and wires up all repositories.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	var (
		db  *DB
		err error
	)

	switch cfg.DB.Driver {
	case "sqlite3":
		db, err = NewConnectSQLite(ctx, cfg.DB, log)
	default:
		db, err = NewConnectPostgres(ctx, cfg.DB, log)
		if err == nil {
			err = db.Migrate()
		}
	}
	if err != nil {
		return nil, fmt.Errorf("error initialising storage backend: %w", err)
	}

	return &Storages{
		Users:      NewUserRepository(db, log),
		Identities: NewIdentityRepository(db, log),
		db:         db,
	}, nil
}

// Close releases the underlying database connection pool.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
