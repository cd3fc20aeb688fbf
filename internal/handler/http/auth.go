// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Komarov

package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dkomarov/go-auth-keeper/internal/logger"
	"github.com/dkomarov/go-auth-keeper/internal/service"
	"github.com/dkomarov/go-auth-keeper/internal/utils"
	"github.com/dkomarov/go-auth-keeper/models"
)

const (
	// sessionCookieName holds the short-lived session JWT.
	sessionCookieName = "auth_session"

	// rememberCookieName holds the long-lived opaque remember-me secret.
	rememberCookieName = "auth_remember"
)

// loginRequest is the JSON body accepted by POST /auth/login. Identifying
// fields beyond the configured valid set are discarded by the verifier.
type loginRequest struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
	Remember bool   `json:"remember,omitempty"`
}

// credentials flattens the request into the field→value map the verifier
// consumes.
func (r loginRequest) credentials() map[string]string {
	creds := map[string]string{"password": r.Password}
	if r.Username != "" {
		creds["username"] = r.Username
	}
	if r.Email != "" {
		creds["email"] = r.Email
	}
	return creds
}

// authResponse is the JSON body returned by the login and logout endpoints.
// Redirect carries the configured post-action target verbatim; the server
// never interprets it.
type authResponse struct {
	models.Result
	Redirect string `json:"redirect,omitempty"`
}

// login handles POST /auth/login.
//
// On success it sets the session cookie (and, when requested, the
// remember-me cookie) and echoes the configured post-login redirect target.
// Expected authentication failures answer 401 with the result's reason code;
// only storage faults produce a 500.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	session, err := h.services.Sessions.Login(ctx, req.credentials(), req.Remember)
	if err != nil {
		log.Err(err).Msg("unexpected error occurred during login")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if !session.Result.OK {
		log.Debug().Str("reason", string(session.Result.Reason)).Msg("login attempt failed")
		utils.WriteJSON(w, authResponse{Result: session.Result, Redirect: h.cfg.Redirects.LoginFailure}, http.StatusUnauthorized)
		return
	}

	h.setSessionCookies(w, session)

	log.Debug().Int64("user_id", session.Result.User.ID).Msg("user successfully logged in")
	utils.WriteJSON(w, authResponse{Result: session.Result, Redirect: h.cfg.Redirects.Login}, http.StatusOK)
}

// logout handles POST /auth/logout. It invalidates every remember-me
// identity owned by the current user and expires both cookies.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := h.services.Sessions.CurrentUser(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	if err := h.services.Sessions.Logout(ctx, user.ID); err != nil {
		log.Err(err).Int64("user_id", user.ID).Msg("logout failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.clearSessionCookies(w)

	utils.WriteJSON(w, authResponse{Result: models.Result{OK: true}, Redirect: h.cfg.Redirects.Logout}, http.StatusOK)
}

// me handles GET /auth/me and returns the authenticated user.
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	user, ok := h.services.Sessions.CurrentUser(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

// setSessionCookies writes the session JWT and, when present, the rotated
// remember-me secret as HTTP-only cookies. Both carry bearer credentials, so
// the Secure attribute stays on unless the deployment opts out for plain-HTTP
// local development.
func (h *Handler) setSessionCookies(w http.ResponseWriter, session service.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    session.Token.SignedString,
		Path:     "/",
		MaxAge:   int(h.cfg.SessionDuration / time.Second),
		Secure:   !h.cfg.CookieInsecure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	if session.RememberToken != "" {
		http.SetCookie(w, &http.Cookie{
			Name:     rememberCookieName,
			Value:    session.RememberToken,
			Path:     "/",
			MaxAge:   int(h.cfg.RememberDuration / time.Second),
			Secure:   !h.cfg.CookieInsecure,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
}

// clearSessionCookies expires both authentication cookies.
func (h *Handler) clearSessionCookies(w http.ResponseWriter) {
	for _, name := range []string{sessionCookieName, rememberCookieName} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			Secure:   !h.cfg.CookieInsecure,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
}
