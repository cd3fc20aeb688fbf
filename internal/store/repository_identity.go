package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dkomarov/go-auth-keeper/internal/logger"
	"github.com/dkomarov/go-auth-keeper/models"
	"github.com/jackc/pgerrcode"
)

// identityRepository is the SQL-backed implementation of [IdentityRepository].
// It executes all credential CRUD operations against the "identities" table.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that database interactions are traced with
// structured fields (user_id, identity type, etc.).
type identityRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewIdentityRepository constructs an [IdentityRepository] backed by the
// provided database connection and logger.
func NewIdentityRepository(db *DB, logger *logger.Logger) IdentityRepository {
	logger.Debug().Msg("creating identity repository")
	return &identityRepository{
		db:     db,
		logger: logger,
	}
}

// Insert persists a new identity record as a single atomic statement and
// returns the fully populated [models.Identity] with server-assigned fields
// (ID, CreatedAt, UpdatedAt) via a RETURNING clause.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrIdentityAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *identityRepository) Insert(ctx context.Context, identity models.Identity) (models.Identity, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, insertIdentity,
		identity.UserID,
		string(identity.Type),
		identity.Name,
		identity.Secret,
		identity.Secret2,
		identity.Extra,
		identity.Expires,
	)

	saved, err := scanIdentity(row)
	if err != nil {
		log.Err(err).
			Str("func", "*identityRepository.Insert").
			Int64("user_id", identity.UserID).
			Str("type", string(identity.Type)).
			Msg("error inserting identity")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Identity{}, ErrIdentityAlreadyExists
		default:
			return models.Identity{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return saved, nil
}

// FindByID retrieves an identity row by primary key.
// Returns [ErrIdentityNotFound] when no row matches.
func (r *identityRepository) FindByID(ctx context.Context, id int64) (models.Identity, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, findIdentityByID, id)

	identity, err := scanIdentity(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Identity{}, ErrIdentityNotFound
		}
		log.Err(err).Str("func", "*identityRepository.FindByID").Int64("id", id).Msg("error: scanning error")
		return models.Identity{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return identity, nil
}

// FindByType retrieves the oldest identity of the given type owned by the
// user. Used for singleton credential types such as passwords.
// Returns [ErrIdentityNotFound] when the user has no such identity.
func (r *identityRepository) FindByType(ctx context.Context, userID int64, identityType models.IdentityType) (models.Identity, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, findIdentityByType, userID, string(identityType))

	identity, err := scanIdentity(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Identity{}, ErrIdentityNotFound
		}
		log.Err(err).
			Str("func", "*identityRepository.FindByType").
			Int64("user_id", userID).
			Str("type", string(identityType)).
			Msg("error: scanning error")
		return models.Identity{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return identity, nil
}

// ListByType retrieves every identity of the given type owned by the user,
// in creation order. Returns an empty slice (never nil) when none exist.
func (r *identityRepository) ListByType(ctx context.Context, userID int64, identityType models.IdentityType) ([]models.Identity, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listIdentitiesByType, userID, string(identityType))
	if err != nil {
		log.Err(err).
			Str("func", "*identityRepository.ListByType").
			Int64("user_id", userID).
			Str("type", string(identityType)).
			Msg("failed to execute query for listing identities")
		return nil, r.db.faultError(ErrExecutingQuery, err)
	}
	defer rows.Close()

	identities := make([]models.Identity, 0)

	for rows.Next() {
		identity, scanErr := scanIdentityFromRows(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*identityRepository.ListByType").Msg("failed to scan identity row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		identities = append(identities, identity)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "*identityRepository.ListByType").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return identities, nil
}

// FindBySecret retrieves an identity by its (type, secret hash) lookup key.
// The secret index is unique, so at most one row can match.
// Returns [ErrIdentityNotFound] when the hash is unknown.
func (r *identityRepository) FindBySecret(ctx context.Context, identityType models.IdentityType, secretHash string) (models.Identity, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, findIdentityBySecret, string(identityType), secretHash)

	identity, err := scanIdentity(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Identity{}, ErrIdentityNotFound
		}
		log.Err(err).
			Str("func", "*identityRepository.FindBySecret").
			Str("type", string(identityType)).
			Msg("error: scanning error")
		return models.Identity{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return identity, nil
}

// Delete removes an identity row by primary key. Deleting a row that does
// not exist is a successful no-op.
func (r *identityRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, deleteIdentity, id); err != nil {
		log.Err(err).Str("func", "*identityRepository.Delete").Int64("id", id).Msg("failed to delete identity")
		return r.db.faultError(ErrExecutingStatement, err)
	}

	return nil
}

// DeleteBySecret removes the identity matching the (type, secret hash)
// lookup key as one atomic statement. A missing row is a successful no-op,
// which makes token revocation idempotent.
func (r *identityRepository) DeleteBySecret(ctx context.Context, identityType models.IdentityType, secretHash string) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, deleteIdentityBySecret, string(identityType), secretHash); err != nil {
		log.Err(err).
			Str("func", "*identityRepository.DeleteBySecret").
			Str("type", string(identityType)).
			Msg("failed to delete identity by secret")
		return r.db.faultError(ErrExecutingStatement, err)
	}

	return nil
}

// DeleteAllByType removes every identity of the given type owned by the
// user as one bulk statement, never as a read-then-delete loop. A user with
// no matching identities is a successful no-op.
func (r *identityRepository) DeleteAllByType(ctx context.Context, userID int64, identityType models.IdentityType) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, deleteIdentitiesByType, userID, string(identityType)); err != nil {
		log.Err(err).
			Str("func", "*identityRepository.DeleteAllByType").
			Int64("user_id", userID).
			Str("type", string(identityType)).
			Msg("failed to delete identities")
		return r.db.faultError(ErrExecutingStatement, err)
	}

	return nil
}

// DeleteExpired removes every identity of the given type whose expiry lies
// before the supplied cutoff. Returns the number of rows removed.
func (r *identityRepository) DeleteExpired(ctx context.Context, identityType models.IdentityType, before time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, deleteExpiredIdentities, string(identityType), before)
	if err != nil {
		log.Err(err).
			Str("func", "*identityRepository.DeleteExpired").
			Str("type", string(identityType)).
			Msg("failed to delete expired identities")
		return 0, r.db.faultError(ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		// Not all drivers report affected rows; the delete itself succeeded.
		return 0, nil
	}

	return affected, nil
}

// TouchLastUsed records the current time as the identity's last successful
// use. Callers treat failures as best-effort and non-blocking.
func (r *identityRepository) TouchLastUsed(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, touchIdentityLastUsed, time.Now(), id); err != nil {
		log.Err(err).Str("func", "*identityRepository.TouchLastUsed").Int64("id", id).Msg("failed to touch identity")
		return r.db.faultError(ErrExecutingStatement, err)
	}

	return nil
}

// scanIdentity reads one identities row into a [models.Identity].
func scanIdentity(row *sql.Row) (models.Identity, error) {
	var identity models.Identity
	err := row.Scan(
		&identity.ID,
		&identity.UserID,
		&identity.Type,
		&identity.Name,
		&identity.Secret,
		&identity.Secret2,
		&identity.Extra,
		&identity.Expires,
		&identity.LastUsedAt,
		&identity.CreatedAt,
		&identity.UpdatedAt,
	)
	return identity, err
}

// scanIdentityFromRows reads the current row of a multi-row result set.
func scanIdentityFromRows(rows *sql.Rows) (models.Identity, error) {
	var identity models.Identity
	err := rows.Scan(
		&identity.ID,
		&identity.UserID,
		&identity.Type,
		&identity.Name,
		&identity.Secret,
		&identity.Secret2,
		&identity.Extra,
		&identity.Expires,
		&identity.LastUsedAt,
		&identity.CreatedAt,
		&identity.UpdatedAt,
	)
	return identity, err
}
