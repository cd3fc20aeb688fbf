// Package utils provides general-purpose helper utilities used across the
// authentication service: type-safe context keys, JWT session token
// generation and validation, bearer header parsing, trace-id generation and
// JSON response writing.
package utils

import (
	"context"

	"github.com/dkomarov/go-auth-keeper/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// UserCtxKey is the key under which the authenticated user is stored in the
// request context by the session and bearer middlewares.
var UserCtxKey = contextKey("authUser")

// AccessTokenCtxKey is the key under which the access token that
// authenticated the current request is stored. Only set by the bearer
// middleware; session-authenticated requests carry no token.
var AccessTokenCtxKey = contextKey("accessToken")

// SetUserToContext returns a child context carrying the authenticated user.
func SetUserToContext(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, UserCtxKey, user)
}

// GetUserFromContext retrieves the authenticated user from the context.
//
// Returns the user and an ok flag:
//   - ok == true  — a user was attached by an authentication middleware
//   - ok == false — the request is anonymous or the value has a wrong type
func GetUserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(UserCtxKey).(*models.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

// SetAccessTokenToContext returns a child context carrying the access token
// that authenticated the current request.
func SetAccessTokenToContext(ctx context.Context, token *models.AccessToken) context.Context {
	return context.WithValue(ctx, AccessTokenCtxKey, token)
}

// GetAccessTokenFromContext retrieves the authenticating access token from
// the context. ok is false for session-authenticated or anonymous requests.
func GetAccessTokenFromContext(ctx context.Context) (*models.AccessToken, bool) {
	token, ok := ctx.Value(AccessTokenCtxKey).(*models.AccessToken)
	if !ok || token == nil {
		return nil, false
	}
	return token, true
}
