package store

import (
	"context"
	"time"

	"github.com/dkomarov/go-auth-keeper/models"
)

// UserRepository is the persistence abstraction over user accounts.
//
// FindByFields performs a lookup by whichever configured identifying
// columns the caller supplies (e.g. username, email); all supplied fields
// must match. AttachIdentities populates the Identities slice on every
// user in one batch query, never per-user.
type UserRepository interface {
	FindByID(ctx context.Context, id int64) (models.User, error)
	FindByFields(ctx context.Context, fields map[string]string) (models.User, error)
	AttachIdentities(ctx context.Context, users []*models.User, identityType models.IdentityType) error
}

// IdentityRepository is the persistence abstraction over identity records
// (password credentials, access tokens, remember-me tokens).
//
// Deletions are idempotent: deleting a row that does not exist is a
// successful no-op, since the desired end state is already reached.
type IdentityRepository interface {
	Insert(ctx context.Context, identity models.Identity) (models.Identity, error)
	FindByID(ctx context.Context, id int64) (models.Identity, error)
	FindByType(ctx context.Context, userID int64, identityType models.IdentityType) (models.Identity, error)
	ListByType(ctx context.Context, userID int64, identityType models.IdentityType) ([]models.Identity, error)
	FindBySecret(ctx context.Context, identityType models.IdentityType, secretHash string) (models.Identity, error)
	Delete(ctx context.Context, id int64) error
	DeleteBySecret(ctx context.Context, identityType models.IdentityType, secretHash string) error
	DeleteAllByType(ctx context.Context, userID int64, identityType models.IdentityType) error
	DeleteExpired(ctx context.Context, identityType models.IdentityType, before time.Time) (int64, error)
	TouchLastUsed(ctx context.Context, id int64) error
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying. Implementations inspect driver-specific error codes.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
