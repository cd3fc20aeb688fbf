package service

import "errors"

var (
	// ErrInvalidDataProvided signals a malformed service call, such as
	// generating a token for user id zero.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrTokenNotFound is returned by Find when no stored token matches
	// the presented bearer value.
	ErrTokenNotFound = errors.New("access token not found")

	// ErrTokenExpired is returned by Find when the matching token row
	// exists but its expiry lies in the past.
	ErrTokenExpired = errors.New("access token is expired")

	// ErrTokenCreationFailed wraps failures of the random generator or the
	// storage layer during token generation.
	ErrTokenCreationFailed = errors.New("error during token creation")

	// ErrSessionInvalid covers every session token validation failure:
	// bad signature, wrong issuer, expiry, malformed claims. Callers never
	// need to distinguish them.
	ErrSessionInvalid = errors.New("session token is expired or invalid")
)
