// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Komarov

package http

import (
	"net/http"

	"github.com/dkomarov/go-auth-keeper/internal/logger"
	"github.com/dkomarov/go-auth-keeper/internal/utils"
)

// Scopes guarding the token-management routes. The wildcard scope grants
// both, so default-scoped tokens can manage themselves.
const (
	scopeTokensRead  = "tokens:read"
	scopeTokensWrite = "tokens:write"
)

// bearerAuth is an HTTP middleware that enforces access-token
// authentication.
//
// It extracts the bearer value from the "Authorization" header, resolves it
// via the token service, and on success stores both the authenticated user
// and the resolved token in the request context before delegating to the
// next handler.
//
// The middleware rejects requests with HTTP 401 Unauthorized when:
//   - the "Authorization" header is absent ([ErrEmptyAuthorizationHeader]);
//   - the header value is not a well-formed bearer credential;
//   - the token is unknown, expired, or its owner can no longer
//     authenticate (the result's reason code is included in the body).
//
// Storage faults answer 503 rather than 401: an outage is not an
// authentication failure and must stay visible as one.
func (h *Handler) bearerAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			http.Error(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		rawToken, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Err(err).Send()
			http.Error(w, ErrInvalidAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		result, err := h.services.Tokens.Validate(ctx, rawToken)
		if err != nil {
			log.Err(err).Msg("token validation hit a storage fault")
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			return
		}

		if !result.OK {
			log.Debug().Str("reason", string(result.Reason)).Msg("bearer authentication failed")
			http.Error(w, string(result.Reason), http.StatusUnauthorized)
			return
		}

		ctx = utils.SetUserToContext(ctx, result.User)
		ctx = utils.SetAccessTokenToContext(ctx, result.Token)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireScope returns a middleware rejecting requests whose authenticating
// token does not grant the named scope. It must run after bearerAuth; a
// request with no token in context is denied.
func (h *Handler) requireScope(scope string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := logger.FromRequest(r)

			token, _ := utils.GetAccessTokenFromContext(r.Context())
			if h.services.Tokens.ScopeDenied(token, scope) {
				log.Debug().Str("scope", scope).Msg("scope denied")
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
