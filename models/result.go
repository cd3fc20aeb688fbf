package models

// Reason is a stable, user-safe code explaining why an authentication
// attempt failed. Reasons deliberately never distinguish "unknown user"
// from "wrong password".
type Reason string

const (
	// ReasonInvalidCredentials covers a missing identifying field, an
	// unknown user, and a password mismatch alike.
	ReasonInvalidCredentials Reason = "invalid_credentials"

	// ReasonAccountInactive means the credentials were valid but the account
	// is disabled or soft-deleted. Safe to reveal: the caller already proved
	// possession of a valid password.
	ReasonAccountInactive Reason = "account_inactive"

	// ReasonTokenNotFound means a bearer token lookup missed.
	ReasonTokenNotFound Reason = "token_not_found"

	// ReasonTokenExpired means the bearer token row exists but its expiry
	// lies in the past.
	ReasonTokenExpired Reason = "token_expired"
)

// Result is the uniform outcome of an authentication attempt. Expected
// failures (bad password, expired token) are normal typed outcomes, not
// errors; Go errors are reserved for infrastructure faults.
//
// Reason is populated only when OK is false. User, Token and Remember are
// populated only on success, and only where meaningful for the path that
// produced the result.
type Result struct {
	OK     bool   `json:"ok"`
	Reason Reason `json:"reason,omitempty"`

	// User is the authenticated account on successful credential or token
	// verification.
	User *User `json:"user,omitempty"`

	// Token is the resolved access token on successful bearer validation.
	Token *AccessToken `json:"-"`

	// Remember carries the caller's remember-me request through a successful
	// login attempt.
	Remember bool `json:"-"`
}

// Success builds a passing result carrying the authenticated user.
func Success(user *User) Result {
	return Result{OK: true, User: user}
}

// Failure builds a failed result with the given reason code.
func Failure(reason Reason) Result {
	return Result{Reason: reason}
}
