// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Komarov

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dkomarov/go-auth-keeper/internal/crypto"
	"github.com/dkomarov/go-auth-keeper/internal/logger"
	"github.com/dkomarov/go-auth-keeper/internal/store"
	"github.com/dkomarov/go-auth-keeper/models"
)

// accessTokenService is the concrete implementation of AccessTokenService.
// It persists tokens as identity rows of type "access_token" whose secret
// column holds the SHA-256 hash of the plaintext bearer value. The plaintext
// itself is observable exactly once, on the object returned by Generate.
type accessTokenService struct {
	users      store.UserRepository
	identities store.IdentityRepository
	hasher     crypto.Hasher
	logger     *logger.Logger
}

// NewAccessTokenService constructs an AccessTokenService wired to the given
// repositories and hasher. The returned service is safe for concurrent use;
// all state is read-only after construction.
func NewAccessTokenService(users store.UserRepository, identities store.IdentityRepository, hasher crypto.Hasher, logger *logger.Logger) AccessTokenService {
	return &accessTokenService{
		users:      users,
		identities: identities,
		hasher:     hasher,
		logger:     logger,
	}
}

// Generate mints a new bearer token for the given user.
//
// A cryptographically secure random value is drawn, hashed, and persisted as
// a single identity insert, so a token is never observable half-stored. An
// empty scope list defaults to the all-permissions wildcard. The returned
// AccessToken carries both the plaintext RawToken and its hash; no later
// lookup can recover the plaintext.
func (s *accessTokenService) Generate(ctx context.Context, userID int64, name string, scopes []string, expires *time.Time) (models.AccessToken, error) {
	log := logger.FromContext(ctx)

	if userID == 0 || name == "" {
		log.Error().Int64("user_id", userID).Str("name", name).Msg("invalid token generation request")
		return models.AccessToken{}, ErrInvalidDataProvided
	}

	if len(scopes) == 0 {
		scopes = []string{models.ScopeWildcard}
	}

	raw, err := crypto.GenerateRawToken()
	if err != nil {
		log.Err(err).Msg("random token generation failed")
		return models.AccessToken{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	identity := models.Identity{
		UserID:  userID,
		Type:    models.IdentityAccessToken,
		Name:    name,
		Secret:  s.hasher.HashToken(raw),
		Extra:   models.ExtraData{"scopes": scopes},
		Expires: expires,
	}

	saved, err := s.identities.Insert(ctx, identity)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Str("name", name).Msg("token insert failed")
		return models.AccessToken{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	token := models.AccessTokenFromIdentity(saved)
	token.RawToken = raw
	return token, nil
}

// Find resolves a plaintext bearer value to its stored token by hashing the
// input and looking the hash up. On success the identity's last_used_at is
// touched best-effort; a failed touch is logged and never blocks the lookup.
func (s *accessTokenService) Find(ctx context.Context, rawToken string) (models.AccessToken, error) {
	log := logger.FromContext(ctx)

	identity, err := s.identities.FindBySecret(ctx, models.IdentityAccessToken, s.hasher.HashToken(rawToken))
	if err != nil {
		if errors.Is(err, store.ErrIdentityNotFound) {
			return models.AccessToken{}, ErrTokenNotFound
		}
		return models.AccessToken{}, fmt.Errorf("token lookup failed: %w", err)
	}

	if identity.Expired() {
		return models.AccessToken{}, ErrTokenExpired
	}

	if touchErr := s.identities.TouchLastUsed(ctx, identity.ID); touchErr != nil {
		log.Err(touchErr).Int64("id", identity.ID).Msg("failed to touch token last_used_at")
	}

	return models.AccessTokenFromIdentity(identity), nil
}

// FindByID looks a token up by its row id without hashing, for
// administrative display.
func (s *accessTokenService) FindByID(ctx context.Context, id int64) (models.AccessToken, error) {
	identity, err := s.identities.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrIdentityNotFound) {
			return models.AccessToken{}, ErrTokenNotFound
		}
		return models.AccessToken{}, fmt.Errorf("token lookup failed: %w", err)
	}

	if identity.Type != models.IdentityAccessToken {
		return models.AccessToken{}, ErrTokenNotFound
	}

	return models.AccessTokenFromIdentity(identity), nil
}

// ListForUser returns every access token owned by the user in creation
// order. The result is an empty, never nil, slice when the user owns none.
func (s *accessTokenService) ListForUser(ctx context.Context, userID int64) ([]models.AccessToken, error) {
	identities, err := s.identities.ListByType(ctx, userID, models.IdentityAccessToken)
	if err != nil {
		return nil, fmt.Errorf("token listing failed: %w", err)
	}

	tokens := make([]models.AccessToken, 0, len(identities))
	for _, identity := range identities {
		tokens = append(tokens, models.AccessTokenFromIdentity(identity))
	}

	return tokens, nil
}

// Revoke deletes the token matching the plaintext value as one atomic
// delete-by-hash. Revoking an unknown token succeeds: the desired end state
// (token absent) already holds.
func (s *accessTokenService) Revoke(ctx context.Context, rawToken string) error {
	if err := s.identities.DeleteBySecret(ctx, models.IdentityAccessToken, s.hasher.HashToken(rawToken)); err != nil {
		return fmt.Errorf("token revocation failed: %w", err)
	}
	return nil
}

// RevokeAll deletes every access token owned by the user in a single bulk
// statement, so revocation cannot race a concurrent Generate into a
// partially revoked set.
func (s *accessTokenService) RevokeAll(ctx context.Context, userID int64) error {
	if err := s.identities.DeleteAllByType(ctx, userID, models.IdentityAccessToken); err != nil {
		return fmt.Errorf("bulk token revocation failed: %w", err)
	}
	return nil
}

// Validate resolves a bearer value to an authentication outcome suitable for
// attaching to a request context.
//
// Lookup misses, expiry and an owner that can no longer authenticate come
// back as failed Results with a stable reason code. Storage faults are
// returned as errors and are never masked as authentication failures.
func (s *accessTokenService) Validate(ctx context.Context, rawToken string) (models.Result, error) {
	token, err := s.Find(ctx, rawToken)
	if err != nil {
		switch {
		case errors.Is(err, ErrTokenNotFound):
			return models.Failure(models.ReasonTokenNotFound), nil
		case errors.Is(err, ErrTokenExpired):
			return models.Failure(models.ReasonTokenExpired), nil
		default:
			return models.Result{}, err
		}
	}

	user, err := s.users.FindByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			// Owner row vanished under the token; treat like a miss.
			return models.Failure(models.ReasonTokenNotFound), nil
		}
		return models.Result{}, fmt.Errorf("token owner lookup failed: %w", err)
	}

	if !user.CanAuthenticate() {
		return models.Failure(models.ReasonAccountInactive), nil
	}

	result := models.Success(&user)
	result.Token = &token
	return result, nil
}

// ScopeCheck reports whether the token grants the named scope. A nil token
// (anonymous request) grants nothing.
func (s *accessTokenService) ScopeCheck(token *models.AccessToken, scope string) bool {
	if token == nil {
		return false
	}
	return token.Can(scope)
}

// ScopeDenied is the logical negation of ScopeCheck.
func (s *accessTokenService) ScopeDenied(token *models.AccessToken, scope string) bool {
	return !s.ScopeCheck(token, scope)
}
