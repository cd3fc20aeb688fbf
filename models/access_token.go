package models

import "time"

// ScopeWildcard grants every scope check when present in a token's scopes.
const ScopeWildcard = "*"

// AccessToken is a typed projection of an [Identity] with
// Type == [IdentityAccessToken].
//
// RawToken holds the plaintext bearer value and exists only transiently on
// the object returned by token generation. It is never persisted and never
// recoverable afterwards; every subsequent load leaves it empty.
type AccessToken struct {
	// ID mirrors the underlying identity row ID.
	ID int64 `json:"id"`

	// UserID references the owning user.
	UserID int64 `json:"user_id"`

	// Name is the human label given to the token at generation time.
	Name string `json:"name"`

	// Scopes is the ordered set of permission strings granted to the token.
	// A single "*" entry grants everything.
	Scopes []string `json:"scopes"`

	// RawToken is the one-time plaintext bearer value. Populated only by
	// Generate, so it appears in JSON exactly once: on the creation
	// response. Every subsequent load leaves it empty and omitted.
	RawToken string `json:"raw_token,omitempty"`

	// Secret is the deterministic one-way hash of RawToken.
	Secret string `json:"-"`

	// Expires is the optional absolute expiry; nil means never.
	Expires *time.Time `json:"expires,omitempty"`

	// LastUsedAt records the last successful bearer authentication.
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// AccessTokenFromIdentity projects an identity row onto an AccessToken.
// The raw token is unknowable at this point and stays empty.
func AccessTokenFromIdentity(identity Identity) AccessToken {
	return AccessToken{
		ID:         identity.ID,
		UserID:     identity.UserID,
		Name:       identity.Name,
		Scopes:     identity.Extra.Scopes(),
		Secret:     identity.Secret,
		Expires:    identity.Expires,
		LastUsedAt: identity.LastUsedAt,
		CreatedAt:  identity.CreatedAt,
	}
}

// Identity converts the token back to its persistence representation.
func (t AccessToken) Identity() Identity {
	return Identity{
		ID:         t.ID,
		UserID:     t.UserID,
		Type:       IdentityAccessToken,
		Name:       t.Name,
		Secret:     t.Secret,
		Extra:      ExtraData{"scopes": t.Scopes},
		Expires:    t.Expires,
		LastUsedAt: t.LastUsedAt,
		CreatedAt:  t.CreatedAt,
	}
}

// Can reports whether the token grants the given scope: either the wildcard
// is present or the scope matches exactly.
func (t AccessToken) Can(scope string) bool {
	for _, s := range t.Scopes {
		if s == ScopeWildcard || s == scope {
			return true
		}
	}

	return false
}

// Cant is the negation of [AccessToken.Can], provided because "does this
// token NOT have permission" is the common guard-clause form.
func (t AccessToken) Cant(scope string) bool {
	return !t.Can(scope)
}

// Expired reports whether the token carries an expiry that lies in the past.
func (t AccessToken) Expired() bool {
	return t.Expires != nil && t.Expires.Before(time.Now())
}
