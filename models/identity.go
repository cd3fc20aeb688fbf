package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// IdentityType enumerates the kinds of credentials an identity row can hold.
type IdentityType string

const (
	// IdentityPassword is the interactive login credential. The Secret field
	// holds a bcrypt hash of the password.
	IdentityPassword IdentityType = "password"

	// IdentityAccessToken is a machine-to-machine bearer credential. The
	// Secret field holds the SHA-256 hash of the raw token.
	IdentityAccessToken IdentityType = "access_token"

	// IdentityRememberToken is a long-lived "remember me" credential used to
	// silently re-establish a session. Hashed at rest like an access token.
	IdentityRememberToken IdentityType = "remember_token"
)

// ExtraData is a structured bag of type-specific identity attributes
// (e.g. the scopes granted to an access token). It is persisted as JSON.
type ExtraData map[string]any

// Value implements [driver.Valuer], serialising the map to JSON for storage.
func (e ExtraData) Value() (driver.Value, error) {
	if e == nil {
		return "{}", nil
	}

	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("error marshalling identity extra data: %w", err)
	}

	return string(data), nil
}

// Scan implements [sql.Scanner], deserialising the stored JSON document.
func (e *ExtraData) Scan(src any) error {
	if src == nil {
		*e = ExtraData{}
		return nil
	}

	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported type for identity extra data: %T", src)
	}

	if len(raw) == 0 {
		*e = ExtraData{}
		return nil
	}

	return json.Unmarshal(raw, e)
}

// Scopes extracts the "scopes" entry as a string slice. JSON round-tripping
// stores slices as []any, so both representations are accepted.
// Returns nil when no scopes are recorded.
func (e ExtraData) Scopes() []string {
	raw, ok := e["scopes"]
	if !ok {
		return nil
	}

	switch v := raw.(type) {
	case []string:
		return v
	case []any:
		scopes := make([]string, 0, len(v))
		for _, s := range v {
			if str, ok := s.(string); ok {
				scopes = append(scopes, str)
			}
		}
		return scopes
	default:
		return nil
	}
}

// Identity represents one stored credential or factor owned by exactly one
// user: a password, an access token, or a remember-me token. The Secret
// field always contains a one-way hash, never the plaintext.
type Identity struct {
	// ID is the internal unique identifier of the identity row.
	ID int64 `json:"id"`

	// UserID references the owning user.
	UserID int64 `json:"user_id"`

	// Type discriminates the credential kind.
	Type IdentityType `json:"type"`

	// Name is a human label. Used for access tokens (e.g. "ci-deploy").
	Name string `json:"name,omitempty"`

	// Secret is the hash of the real credential.
	Secret string `json:"-"`

	// Secret2 is an optional second hash slot reserved for rotation.
	Secret2 string `json:"-"`

	// Extra carries type-specific structured data, such as token scopes.
	Extra ExtraData `json:"extra,omitempty"`

	// Expires is the optional absolute expiry; nil means the credential
	// never expires.
	Expires *time.Time `json:"expires,omitempty"`

	// LastUsedAt records the last successful use of the credential.
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Expired reports whether the identity carries an expiry that lies in the
// past. Identities without an expiry never expire.
func (i Identity) Expired() bool {
	return i.Expires != nil && i.Expires.Before(time.Now())
}

// TableName returns the name of the database table
// associated with the Identity model.
func (i Identity) TableName() string {
	return "identities"
}
