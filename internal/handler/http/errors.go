package http

import "errors"

// Sentinel errors used by the bearer authentication middleware when parsing
// the "Authorization" HTTP header. Callers can match against them with
// [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned when the incoming request
	// does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the header is present
	// but is not a well-formed "Bearer <token>" credential.
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")
)
