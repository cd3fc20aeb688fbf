// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Komarov

package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/dkomarov/go-auth-keeper/internal/logger"
	"github.com/dkomarov/go-auth-keeper/internal/service"
	"github.com/dkomarov/go-auth-keeper/internal/utils"
	"github.com/go-chi/chi/v5"
)

// createTokenRequest is the JSON body accepted by POST /api/tokens. An empty
// scope list defaults to the all-permissions wildcard; a nil TTL means the
// token never expires.
type createTokenRequest struct {
	Name   string        `json:"name"`
	Scopes []string      `json:"scopes,omitempty"`
	TTL    time.Duration `json:"ttl,omitempty"`
}

// createToken handles POST /api/tokens. The response is the only place the
// plaintext bearer value ever appears.
func (h *Handler) createToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req createTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	var expires *time.Time
	if req.TTL > 0 {
		at := time.Now().Add(req.TTL)
		expires = &at
	}

	token, err := h.services.Tokens.Generate(ctx, user.ID, req.Name, req.Scopes, expires)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDataProvided) {
			log.Err(err).Msg("invalid token creation request")
			http.Error(w, "invalid token creation request", http.StatusBadRequest)
			return
		}
		log.Err(err).Msg("token creation failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, token, http.StatusCreated)
}

// listTokens handles GET /api/tokens and returns the caller's access tokens
// in creation order. Plaintext values are never included.
func (h *Handler) listTokens(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	tokens, err := h.services.Tokens.ListForUser(ctx, user.ID)
	if err != nil {
		log.Err(err).Int64("user_id", user.ID).Msg("token listing failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, tokens, http.StatusOK)
}

// getToken handles GET /api/tokens/{id}, an administrative display lookup.
// Tokens belonging to other users answer 404 rather than 403 so the route
// does not confirm foreign token ids.
func (h *Handler) getToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid token id", http.StatusBadRequest)
		return
	}

	token, err := h.services.Tokens.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrTokenNotFound) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		log.Err(err).Int64("id", id).Msg("token lookup failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if token.UserID != user.ID {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}

	utils.WriteJSON(w, token, http.StatusOK)
}

// revokeTokenRequest is the JSON body accepted by POST /api/tokens/revoke.
type revokeTokenRequest struct {
	Token string `json:"token"`
}

// revokeToken handles POST /api/tokens/revoke. Revocation is idempotent:
// presenting an unknown or already-revoked value still answers 204.
func (h *Handler) revokeToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req revokeTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.Tokens.Revoke(ctx, req.Token); err != nil {
		log.Err(err).Msg("token revocation failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// revokeAllTokens handles DELETE /api/tokens and removes every access token
// owned by the caller, including the one authenticating this request.
func (h *Handler) revokeAllTokens(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	if err := h.services.Tokens.RevokeAll(ctx, user.ID); err != nil {
		log.Err(err).Int64("user_id", user.ID).Msg("bulk token revocation failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
