package store

import (
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/dkomarov/go-auth-keeper/models"
)

const (
	userColumns = `id, username, email, status, status_message, active, deleted_at, created_at, updated_at`

	identityColumns = `id, user_id, type, name, secret, secret2, extra, expires, last_used_at, created_at, updated_at`

	findUserByID = `SELECT ` + userColumns + `
    FROM users
    WHERE id = $1;`

	insertIdentity = `INSERT INTO identities (user_id, type, name, secret, secret2, extra, expires)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
    RETURNING ` + identityColumns + `;`

	findIdentityByID = `SELECT ` + identityColumns + `
    FROM identities
    WHERE id = $1;`

	findIdentityByType = `SELECT ` + identityColumns + `
    FROM identities
    WHERE user_id = $1 AND type = $2
    ORDER BY id
    LIMIT 1;`

	listIdentitiesByType = `SELECT ` + identityColumns + `
    FROM identities
    WHERE user_id = $1 AND type = $2
    ORDER BY id;`

	findIdentityBySecret = `SELECT ` + identityColumns + `
    FROM identities
    WHERE type = $1 AND secret = $2;`

	deleteIdentity = `DELETE FROM identities
    WHERE id = $1;`

	deleteIdentityBySecret = `DELETE FROM identities
    WHERE type = $1 AND secret = $2;`

	deleteIdentitiesByType = `DELETE FROM identities
    WHERE user_id = $1 AND type = $2;`

	deleteExpiredIdentities = `DELETE FROM identities
    WHERE type = $1 AND expires IS NOT NULL AND expires < $2;`

	touchIdentityLastUsed = `UPDATE identities
    SET last_used_at = $1, updated_at = $1
    WHERE id = $2;`
)

// userLookupColumns is the whitelist of user columns accepted as login
// identifiers. Lookup maps are filtered against it so a hostile field name
// can never reach the query builder. Must stay in sync with the
// identifying-field validation in internal/config.
var userLookupColumns = map[string]struct{}{
	"username": {},
	"email":    {},
}

// buildFindUserByFieldsQuery constructs a SELECT over users constrained by
// every supplied identifying field. Unknown columns are rejected, and an
// empty filter set is an error rather than an unbounded scan.
func buildFindUserByFieldsQuery(fields map[string]string) (string, []any, error) {
	where := squirrel.Eq{}
	for column, value := range fields {
		if _, ok := userLookupColumns[column]; !ok {
			return "", nil, fmt.Errorf("%w: unknown user lookup column %q", ErrBuildingSQLQuery, column)
		}
		where[column] = value
	}

	if len(where) == 0 {
		return "", nil, fmt.Errorf("%w: no user lookup fields supplied", ErrBuildingSQLQuery)
	}

	query, args, err := squirrel.
		Select("id", "username", "email", "status", "status_message", "active", "deleted_at", "created_at", "updated_at").
		From("users").
		Where(where).
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildListIdentitiesForUsersQuery constructs the batch IN-lookup used to
// attach identities to a page of users in a single round trip.
func buildListIdentitiesForUsersQuery(userIDs []int64, identityType models.IdentityType) (string, []any, error) {
	if len(userIDs) == 0 {
		return "", nil, fmt.Errorf("%w: no user ids supplied", ErrBuildingSQLQuery)
	}

	query, args, err := squirrel.
		Select("id", "user_id", "type", "name", "secret", "secret2", "extra", "expires", "last_used_at", "created_at", "updated_at").
		From("identities").
		Where(squirrel.Eq{"user_id": userIDs, "type": string(identityType)}).
		OrderBy("id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
