package service

import (
	"context"
	"time"

	"github.com/dkomarov/go-auth-keeper/models"
)

// AccessTokenService manages the full lifecycle of bearer access tokens:
// generation, lookup, validation, scope checks and revocation.
type AccessTokenService interface {
	// Generate mints a new bearer token for the given user. The returned
	// token is the only object that ever carries the plaintext RawToken.
	Generate(ctx context.Context, userID int64, name string, scopes []string, expires *time.Time) (models.AccessToken, error)

	// Find resolves a plaintext bearer value to its stored token.
	// Returns ErrTokenNotFound on a miss and ErrTokenExpired when the row
	// exists but is past its expiry.
	Find(ctx context.Context, rawToken string) (models.AccessToken, error)

	// FindByID looks a token up by its identity row id, for administrative
	// display. The plaintext is never recoverable this way.
	FindByID(ctx context.Context, id int64) (models.AccessToken, error)

	// ListForUser returns every access token owned by the user in creation
	// order. The slice is empty, never nil, when the user owns none.
	ListForUser(ctx context.Context, userID int64) ([]models.AccessToken, error)

	// Revoke deletes the token matching the plaintext value. Revoking an
	// unknown token is a successful no-op.
	Revoke(ctx context.Context, rawToken string) error

	// RevokeAll deletes every access token owned by the user in one bulk
	// statement. A user with no tokens is a successful no-op.
	RevokeAll(ctx context.Context, userID int64) error

	// Validate resolves a bearer value to an authentication outcome. Lookup
	// misses, expiry and unauthenticatable owners come back as failed
	// Results; the error return is reserved for storage faults.
	Validate(ctx context.Context, rawToken string) (models.Result, error)

	// ScopeCheck reports whether the token grants the named scope, either
	// via the wildcard or an exact match. A nil token grants nothing.
	ScopeCheck(token *models.AccessToken, scope string) bool

	// ScopeDenied is the negation of ScopeCheck, provided because "does
	// this token NOT have permission" is the common guard clause.
	ScopeDenied(token *models.AccessToken, scope string) bool
}

// CredentialVerifier validates an interactive login attempt against stored
// password credentials.
type CredentialVerifier interface {
	// Attempt verifies the posted credential set. Expected authentication
	// failures (unknown user, wrong password, inactive account) come back
	// as failed Results with a reason code; the error return is reserved
	// for storage faults.
	Attempt(ctx context.Context, credentials map[string]string, remember bool) (models.Result, error)
}

// Session bundles everything a transport layer needs after a login attempt:
// the authentication outcome, the signed session token to hand to the client
// and, when requested, the plaintext remember-me secret.
type Session struct {
	Result models.Result

	// Token is the signed session JWT. Set only when Result.OK.
	Token models.SessionToken

	// RememberToken is the plaintext remember-me secret to be set as a
	// long-lived cookie. Set only when Result.OK and remember was
	// requested (or a silent re-authentication rotated the old secret).
	RememberToken string
}

// SessionService orchestrates interactive sessions: login, silent
// remember-me re-authentication, logout and current-user resolution.
type SessionService interface {
	// Login runs a credential attempt and, on success, mints a session
	// token. When remember is true it additionally provisions a persistent
	// remember-me identity.
	Login(ctx context.Context, credentials map[string]string, remember bool) (Session, error)

	// LoginWithRemember re-establishes a session from a remember-me secret
	// without a password. The stored secret is rotated on every use, so
	// the returned Session always carries a fresh RememberToken.
	LoginWithRemember(ctx context.Context, rawRememberToken string) (Session, error)

	// Logout invalidates every persistent remember-me identity owned by
	// the user. The session cookie itself is cleared by the transport.
	Logout(ctx context.Context, userID int64) error

	// ParseSession verifies a session token string and resolves its owner.
	ParseSession(ctx context.Context, tokenString string) (models.SessionToken, error)

	// Authenticate resolves a session token string to an authentication
	// outcome: token validation failures come back as invalid_credentials
	// and an owner that can no longer authenticate as account_inactive.
	// The error return is reserved for storage faults.
	Authenticate(ctx context.Context, tokenString string) (models.Result, error)

	// CurrentUser returns the authenticated user attached to the context
	// by an authentication middleware, if any.
	CurrentUser(ctx context.Context) (*models.User, bool)
}
