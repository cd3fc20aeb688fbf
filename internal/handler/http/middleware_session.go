// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Komarov

package http

import (
	"net/http"

	"github.com/dkomarov/go-auth-keeper/internal/logger"
	"github.com/dkomarov/go-auth-keeper/internal/utils"
)

// session is an HTTP middleware enforcing an interactive login.
//
// It authenticates the session cookie and, when the cookie is absent or no
// longer valid, falls back to the remember-me cookie for a silent
// re-authentication. A successful fallback rotates the remember-me secret
// and refreshes both cookies on the response.
//
// Requests that pass neither path are rejected with HTTP 401; storage
// faults answer 503.
func (h *Handler) session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		ctx := r.Context()

		if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
			result, authErr := h.services.Sessions.Authenticate(ctx, cookie.Value)
			if authErr != nil {
				log.Err(authErr).Msg("session authentication hit a storage fault")
				http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
				return
			}
			if result.OK {
				ctx = utils.SetUserToContext(ctx, result.User)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
			log.Debug().Str("reason", string(result.Reason)).Msg("session cookie rejected")
		}

		// No usable session: try the durable remember-me credential.
		cookie, err := r.Cookie(rememberCookieName)
		if err != nil || cookie.Value == "" {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		silent, err := h.services.Sessions.LoginWithRemember(ctx, cookie.Value)
		if err != nil {
			log.Err(err).Msg("silent re-authentication hit a storage fault")
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			return
		}
		if !silent.Result.OK {
			log.Debug().Str("reason", string(silent.Result.Reason)).Msg("remember-me cookie rejected")
			h.clearSessionCookies(w)
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		h.setSessionCookies(w, silent)

		ctx = utils.SetUserToContext(ctx, silent.Result.User)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
