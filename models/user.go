package models

import "time"

// UserState describes the lifecycle state of a user account.
// It is derived from the Active flag and the soft-delete marker rather than
// stored as a separate column, so the two can never disagree with it.
type UserState int

const (
	// UserActive means the account may authenticate.
	UserActive UserState = iota

	// UserDeactivated means the account exists but has been disabled by an
	// administrator or by the user themselves.
	UserDeactivated

	// UserDeleted means the account has been soft-deleted. The row is kept
	// for referential integrity but must never authenticate.
	UserDeleted
)

// String returns a stable label for the state, used in structured logs.
func (s UserState) String() string {
	switch s {
	case UserActive:
		return "active"
	case UserDeactivated:
		return "deactivated"
	case UserDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// User represents an account entity used for authentication and authorization.
// Credentials are never stored on the user itself; they live in owned
// Identity records (see [Identity]).
type User struct {
	// ID is the internal unique identifier of the user.
	ID int64 `json:"id"`

	// Username is the unique login identifier.
	Username string `json:"username"`

	// Email is an alternative unique login identifier. Whether it is
	// accepted at login time is controlled by configuration.
	Email string `json:"email"`

	// Status is a short free-form account status label (e.g. "banned").
	Status string `json:"status,omitempty"`

	// StatusMessage is an optional human-readable explanation of Status.
	StatusMessage string `json:"status_message,omitempty"`

	// Active reports whether the account is enabled. Inactive accounts keep
	// their identities but fail every authentication path.
	Active bool `json:"active"`

	// DeletedAt is the soft-delete marker. A non-nil value means the account
	// is deleted regardless of Active.
	DeletedAt *time.Time `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp of the last modification.
	UpdatedAt time.Time `json:"updated_at"`

	// Identities holds credential records owned by this user. Populated only
	// by an explicit batch attach; zero-valued on plain lookups.
	Identities []Identity `json:"-"`
}

// State derives the lifecycle state from Active and DeletedAt.
// Deletion wins over the Active flag.
func (u User) State() UserState {
	switch {
	case u.DeletedAt != nil:
		return UserDeleted
	case !u.Active:
		return UserDeactivated
	default:
		return UserActive
	}
}

// CanAuthenticate reports whether any authentication path may succeed for
// this account: the user must be active and not soft-deleted.
func (u User) CanAuthenticate() bool {
	return u.State() == UserActive
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
