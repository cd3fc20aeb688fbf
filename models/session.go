package models

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// SessionToken wraps the JWT that represents an interactive login session.
//
// It embeds [jwt.Token] for low-level operations (signing, parsing) and
// [jwt.RegisteredClaims] for standard claim access (subject, expiry, etc.).
//
// SignedString holds the compact serialized form (header.payload.signature)
// ready to be set as a cookie or sent in an Authorization header.
//
// UserID is a cached, parsed copy of the "sub" claim converted to int64,
// populated during token construction or validation so callers do not
// repeat the string-to-int parsing.
type SessionToken struct {
	// Token is the underlying JWT used for signing and claim inspection.
	// Only the compact string form is meaningful outside the server
	// process, so the struct form never leaves JSON serialization.
	*jwt.Token `json:"-"`

	// RegisteredClaims provides the standard JWT claim set
	// (sub, exp, iat, nbf, iss, aud, jti) as defined by RFC 7519.
	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// UserID is the session owner extracted from the "sub" claim.
	UserID int64 `json:"-"`
}

// GetUserID extracts the session owner from the token's "sub" claim and
// parses it as a base-10 int64.
//
// Returns an error if the subject claim is missing, empty, or not numeric.
func (t *SessionToken) GetUserID() (int64, error) {
	sub, err := t.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting user id from session token: %w", err)
	}

	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting session subject to int64: %w", err)
	}

	return userID, nil
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *SessionToken) String() string {
	return t.SignedString
}
