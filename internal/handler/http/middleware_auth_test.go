// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Komarov

package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dkomarov/go-auth-keeper/internal/service"
	"github.com/dkomarov/go-auth-keeper/internal/utils"
	"github.com/dkomarov/go-auth-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// bearerAuth
// ─────────────────────────────────────────────

// runBearerAuth runs a request through bearerAuth and reports whether the
// downstream handler was reached along with the context it observed.
func runBearerAuth(t *testing.T, tokens service.AccessTokenService, authHeader string) (*httptest.ResponseRecorder, bool, context.Context) {
	t.Helper()

	h := newHandlerWithTokens(t, tokens)

	nextCalled := false
	var seenCtx context.Context
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		seenCtx = r.Context()
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/tokens", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()

	h.bearerAuth(next).ServeHTTP(rec, req)
	return rec, nextCalled, seenCtx
}

// TestBearerAuth_Success verifies that a valid bearer token reaches the
// downstream handler with both the user and the token in context.
func TestBearerAuth_Success(t *testing.T) {
	resolved := &models.AccessToken{ID: 3, UserID: activeUser.ID, Scopes: []string{models.ScopeWildcard}}

	tokens := &mockTokenService{
		validateFn: func(_ context.Context, rawToken string) (models.Result, error) {
			assert.Equal(t, "valid-bearer-value", rawToken)
			result := models.Success(activeUser)
			result.Token = resolved
			return result, nil
		},
	}

	rec, nextCalled, ctx := runBearerAuth(t, tokens, "Bearer valid-bearer-value")

	require.True(t, nextCalled, "downstream handler must be reached")
	assert.Equal(t, http.StatusOK, rec.Code)

	user, ok := utils.GetUserFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, activeUser.ID, user.ID)

	token, ok := utils.GetAccessTokenFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, resolved.ID, token.ID)
}

// TestBearerAuth_EmptyHeader verifies that a missing Authorization header
// answers 401 without consulting the token service.
func TestBearerAuth_EmptyHeader(t *testing.T) {
	rec, nextCalled, _ := runBearerAuth(t, &mockTokenService{}, "")

	assert.False(t, nextCalled)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), ErrEmptyAuthorizationHeader.Error())
}

// TestBearerAuth_MalformedHeader verifies that a header that is not a
// well-formed bearer credential answers 401.
func TestBearerAuth_MalformedHeader(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "wrong scheme", header: "Basic dXNlcjpwYXNz"},
		{name: "missing token", header: "Bearer"},
		{name: "bare value", header: "just-a-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, nextCalled, _ := runBearerAuth(t, &mockTokenService{}, tt.header)

			assert.False(t, nextCalled)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

// TestBearerAuth_RejectedToken verifies that a failed validation answers 401
// carrying the result's reason code.
func TestBearerAuth_RejectedToken(t *testing.T) {
	tests := []struct {
		name   string
		reason models.Reason
	}{
		{name: "unknown token", reason: models.ReasonTokenNotFound},
		{name: "expired token", reason: models.ReasonTokenExpired},
		{name: "inactive owner", reason: models.ReasonAccountInactive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := &mockTokenService{
				validateFn: func(_ context.Context, _ string) (models.Result, error) {
					return models.Failure(tt.reason), nil
				},
			}

			rec, nextCalled, _ := runBearerAuth(t, tokens, "Bearer some-value")

			assert.False(t, nextCalled)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), string(tt.reason))
		})
	}
}

// TestBearerAuth_StorageFault verifies that an infrastructure error during
// validation answers 503, not 401: an outage is not a rejected credential.
func TestBearerAuth_StorageFault(t *testing.T) {
	tokens := &mockTokenService{
		validateFn: func(_ context.Context, _ string) (models.Result, error) {
			return models.Result{}, errors.New("db connection lost")
		},
	}

	rec, nextCalled, _ := runBearerAuth(t, tokens, "Bearer some-value")

	assert.False(t, nextCalled)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

// ─────────────────────────────────────────────
// requireScope
// ─────────────────────────────────────────────

// runRequireScope runs a request carrying the given token through requireScope.
func runRequireScope(t *testing.T, token *models.AccessToken, scope string) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	h := newHandlerWithTokens(t, &mockTokenService{})

	nextCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/tokens", nil)
	if token != nil {
		req = req.WithContext(utils.SetAccessTokenToContext(req.Context(), token))
	}
	rec := httptest.NewRecorder()

	h.requireScope(scope)(next).ServeHTTP(rec, req)
	return rec, nextCalled
}

// TestRequireScope_TableTest exercises the scope guard with wildcard, exact,
// mismatched and absent tokens.
func TestRequireScope_TableTest(t *testing.T) {
	tests := []struct {
		name       string
		token      *models.AccessToken
		scope      string
		wantPassed bool
	}{
		{
			name:       "wildcard grants everything",
			token:      &models.AccessToken{Scopes: []string{models.ScopeWildcard}},
			scope:      scopeTokensWrite,
			wantPassed: true,
		},
		{
			name:       "exact scope match",
			token:      &models.AccessToken{Scopes: []string{scopeTokensRead}},
			scope:      scopeTokensRead,
			wantPassed: true,
		},
		{
			name:       "read-only token denied write",
			token:      &models.AccessToken{Scopes: []string{scopeTokensRead}},
			scope:      scopeTokensWrite,
			wantPassed: false,
		},
		{
			name:       "no token in context is denied",
			token:      nil,
			scope:      scopeTokensRead,
			wantPassed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, nextCalled := runRequireScope(t, tt.token, tt.scope)

			assert.Equal(t, tt.wantPassed, nextCalled)
			if tt.wantPassed {
				assert.Equal(t, http.StatusOK, rec.Code)
			} else {
				assert.Equal(t, http.StatusForbidden, rec.Code)
			}
		})
	}
}
