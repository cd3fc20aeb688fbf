package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dkomarov/go-auth-keeper/internal/logger"
	"github.com/dkomarov/go-auth-keeper/models"
)

// userRepository is the SQL-backed implementation of [UserRepository].
// It handles account lookup against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// FindByID retrieves a user record by primary key.
//
// Error handling:
//   - No matching row → [ErrNoUserWasFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) FindByID(ctx context.Context, id int64) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, findUserByID, id)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.FindByID").Int64("id", id).Msg("error: scanning error")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

// FindByFields retrieves the user matching every supplied identifying field
// (e.g. {"username": "alice"} or {"email": "a@b.c"}). Field names are
// validated against the known identifying columns before the query is built.
//
// Error handling:
//   - Unknown column or empty field set → wrapped [ErrBuildingSQLQuery].
//   - No matching row → [ErrNoUserWasFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) FindByFields(ctx context.Context, fields map[string]string) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindUserByFieldsQuery(fields)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindByFields").Msg("failed to create query")
		return models.User{}, err
	}

	row := r.db.QueryRowContext(ctx, query, args...)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.FindByFields").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

// AttachIdentities populates the Identities slice of every supplied user
// with identities of the given type, using one IN-style batch query and an
// in-memory merge by owning key. It never issues per-user queries.
//
// Users with no matching identities keep an empty (non-nil) slice so that
// callers can distinguish "attach ran" from "attach never requested".
func (r *userRepository) AttachIdentities(ctx context.Context, users []*models.User, identityType models.IdentityType) error {
	log := logger.FromContext(ctx)

	if len(users) == 0 {
		return nil
	}

	userIDs := make([]int64, 0, len(users))
	mappedUsers := make(map[int64]*models.User, len(users))
	for _, user := range users {
		user.Identities = make([]models.Identity, 0)
		userIDs = append(userIDs, user.ID)
		mappedUsers[user.ID] = user
	}

	query, args, err := buildListIdentitiesForUsersQuery(userIDs, identityType)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.AttachIdentities").Msg("failed to create query")
		return err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*userRepository.AttachIdentities").
			Int("user count", len(users)).
			Msg("failed to execute batch identity lookup")
		return r.db.faultError(ErrExecutingQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		identity, scanErr := scanIdentityFromRows(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*userRepository.AttachIdentities").Msg("failed to scan identity row")
			return fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		if owner, ok := mappedUsers[identity.UserID]; ok {
			owner.Identities = append(owner.Identities, identity)
		}
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "*userRepository.AttachIdentities").Msg("error occurred during rows iteration")
		return fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return nil
}

// scanUser reads one users row into a [models.User].
func scanUser(row *sql.Row) (models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.Status,
		&user.StatusMessage,
		&user.Active,
		&user.DeletedAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	return user, err
}
