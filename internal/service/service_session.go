// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Komarov

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dkomarov/go-auth-keeper/internal/config"
	"github.com/dkomarov/go-auth-keeper/internal/crypto"
	"github.com/dkomarov/go-auth-keeper/internal/logger"
	"github.com/dkomarov/go-auth-keeper/internal/store"
	"github.com/dkomarov/go-auth-keeper/internal/utils"
	"github.com/dkomarov/go-auth-keeper/models"
)

// rememberTokenName labels the remember-me identity rows a session provisions.
const rememberTokenName = "remember-me"

// sessionService is the concrete implementation of SessionService.
//
// A session is a short-lived HMAC-SHA256 JWT handed to the client; the
// optional remember-me credential is a separate long-lived opaque secret
// stored hashed as an identity row of type "remember_token" and rotated on
// every silent re-authentication, so a stolen cookie can be used at most once.
type sessionService struct {
	verifier   CredentialVerifier
	users      store.UserRepository
	identities store.IdentityRepository
	hasher     crypto.Hasher

	// signKey is the HMAC secret used to sign and verify session tokens.
	signKey string

	// issuer is the "iss" claim embedded in every session token. Tokens
	// whose issuer does not match are rejected during parsing.
	issuer string

	// sessionDuration controls how long a minted session token remains valid.
	sessionDuration time.Duration

	// rememberDuration controls the lifetime of remember-me identities.
	rememberDuration time.Duration

	logger *logger.Logger
}

// NewSessionService constructs a SessionService wired to the given verifier,
// repositories and hasher, with security parameters from cfg. The returned
// service is safe for concurrent use; all state is read-only after
// construction.
func NewSessionService(verifier CredentialVerifier, users store.UserRepository, identities store.IdentityRepository, hasher crypto.Hasher, cfg config.Auth, logger *logger.Logger) SessionService {
	return &sessionService{
		verifier:         verifier,
		users:            users,
		identities:       identities,
		hasher:           hasher,
		signKey:          cfg.SessionSignKey,
		issuer:           cfg.SessionIssuer,
		sessionDuration:  cfg.SessionDuration,
		rememberDuration: cfg.RememberDuration,
		logger:           logger,
	}
}

// Login runs a credential attempt and mints a session token on success.
//
// When remember is true a persistent remember-me identity is additionally
// provisioned; its plaintext secret is returned for the transport to set as
// a long-lived cookie and is never recoverable afterwards.
func (s *sessionService) Login(ctx context.Context, credentials map[string]string, remember bool) (Session, error) {
	log := logger.FromContext(ctx)

	result, err := s.verifier.Attempt(ctx, credentials, remember)
	if err != nil {
		return Session{}, err
	}
	if !result.OK {
		return Session{Result: result}, nil
	}

	token, err := utils.GenerateSessionToken(s.issuer, result.User.ID, s.sessionDuration, s.signKey)
	if err != nil {
		return Session{}, fmt.Errorf("session token generation failed: %w", err)
	}

	session := Session{Result: result, Token: token}

	if remember {
		rawRemember, rememberErr := s.provisionRememberToken(ctx, result.User.ID)
		if rememberErr != nil {
			// The login itself succeeded; losing the remember cookie only
			// costs the user a future password prompt.
			log.Err(rememberErr).Int64("user_id", result.User.ID).Msg("failed to provision remember-me identity")
		} else {
			session.RememberToken = rawRemember
		}
	}

	return session, nil
}

// LoginWithRemember re-establishes a session from a remember-me secret
// without a password.
//
// The presented secret is consumed: whatever the outcome of the lifecycle
// checks, a matched row is deleted, and only a successful re-authentication
// provisions a replacement. Misses and expired rows fail with
// invalid_credentials so the response does not reveal whether the cookie was
// ever valid.
func (s *sessionService) LoginWithRemember(ctx context.Context, rawRememberToken string) (Session, error) {
	log := logger.FromContext(ctx)

	secretHash := s.hasher.HashToken(rawRememberToken)

	identity, err := s.identities.FindBySecret(ctx, models.IdentityRememberToken, secretHash)
	if err != nil {
		if errors.Is(err, store.ErrIdentityNotFound) {
			return Session{Result: models.Failure(models.ReasonInvalidCredentials)}, nil
		}
		return Session{}, fmt.Errorf("remember-me lookup failed: %w", err)
	}

	// Single-use rotation: the old secret dies here no matter what.
	if deleteErr := s.identities.DeleteBySecret(ctx, models.IdentityRememberToken, secretHash); deleteErr != nil {
		return Session{}, fmt.Errorf("remember-me rotation failed: %w", deleteErr)
	}

	if identity.Expired() {
		return Session{Result: models.Failure(models.ReasonInvalidCredentials)}, nil
	}

	user, err := s.users.FindByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return Session{Result: models.Failure(models.ReasonInvalidCredentials)}, nil
		}
		return Session{}, fmt.Errorf("remember-me owner lookup failed: %w", err)
	}

	if !user.CanAuthenticate() {
		return Session{Result: models.Failure(models.ReasonAccountInactive)}, nil
	}

	token, err := utils.GenerateSessionToken(s.issuer, user.ID, s.sessionDuration, s.signKey)
	if err != nil {
		return Session{}, fmt.Errorf("session token generation failed: %w", err)
	}

	result := models.Success(&user)
	result.Remember = true
	session := Session{Result: result, Token: token}

	rawRemember, rememberErr := s.provisionRememberToken(ctx, user.ID)
	if rememberErr != nil {
		log.Err(rememberErr).Int64("user_id", user.ID).Msg("failed to rotate remember-me identity")
	} else {
		session.RememberToken = rawRemember
	}

	return session, nil
}

// Logout invalidates every persistent remember-me identity owned by the
// user. The short-lived session token is stateless, so "logging it out" is
// the transport clearing the cookie; only the durable credential needs
// server-side invalidation.
func (s *sessionService) Logout(ctx context.Context, userID int64) error {
	if err := s.identities.DeleteAllByType(ctx, userID, models.IdentityRememberToken); err != nil {
		return fmt.Errorf("remember-me invalidation failed: %w", err)
	}
	return nil
}

// ParseSession verifies a session token string and resolves its owner. Any
// validation failure (expired, wrong issuer, malformed, bad signature) is
// normalised to ErrSessionInvalid so callers do not inspect low-level JWT
// errors.
func (s *sessionService) ParseSession(ctx context.Context, tokenString string) (models.SessionToken, error) {
	token, err := utils.ValidateAndParseSessionToken(tokenString, s.signKey, s.issuer)
	if err != nil {
		return models.SessionToken{}, ErrSessionInvalid
	}

	return token, nil
}

// Authenticate resolves a session token string to an authentication outcome
// suitable for attaching to a request context.
//
// Token validation failures are reported as invalid_credentials: a session
// cookie is a credential, and whether it is malformed, forged or merely
// expired is not the caller's business. An owner that has been deactivated
// or soft-deleted since login fails with account_inactive, so disabling an
// account takes effect on the next request despite the stateless session.
func (s *sessionService) Authenticate(ctx context.Context, tokenString string) (models.Result, error) {
	token, err := s.ParseSession(ctx, tokenString)
	if err != nil {
		return models.Failure(models.ReasonInvalidCredentials), nil
	}

	user, err := s.users.FindByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.Failure(models.ReasonInvalidCredentials), nil
		}
		return models.Result{}, fmt.Errorf("session owner lookup failed: %w", err)
	}

	if !user.CanAuthenticate() {
		return models.Failure(models.ReasonAccountInactive), nil
	}

	return models.Success(&user), nil
}

// CurrentUser returns the authenticated user attached to the context by an
// authentication middleware, if any.
func (s *sessionService) CurrentUser(ctx context.Context) (*models.User, bool) {
	return utils.GetUserFromContext(ctx)
}

// provisionRememberToken draws a fresh opaque secret, stores its hash as a
// remember_token identity with the configured lifetime, and returns the
// plaintext.
func (s *sessionService) provisionRememberToken(ctx context.Context, userID int64) (string, error) {
	raw, err := crypto.GenerateRawToken()
	if err != nil {
		return "", fmt.Errorf("remember-me secret generation failed: %w", err)
	}

	expires := time.Now().Add(s.rememberDuration)
	identity := models.Identity{
		UserID:  userID,
		Type:    models.IdentityRememberToken,
		Name:    rememberTokenName,
		Secret:  s.hasher.HashToken(raw),
		Extra:   models.ExtraData{},
		Expires: &expires,
	}

	if _, err := s.identities.Insert(ctx, identity); err != nil {
		return "", fmt.Errorf("remember-me insert failed: %w", err)
	}

	return raw, nil
}
