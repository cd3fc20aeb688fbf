// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Komarov

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkomarov/go-auth-keeper/internal/crypto"
	"github.com/dkomarov/go-auth-keeper/internal/logger"
	"github.com/dkomarov/go-auth-keeper/internal/store"
	"github.com/dkomarov/go-auth-keeper/models"
)

// passwordField is the mandatory credential key carrying the plaintext
// password of a login attempt. It is never a user lookup column.
const passwordField = "password"

// credentialVerifier is the concrete implementation of CredentialVerifier.
//
// An attempt is a single Pending -> Success/Failure transition: the verifier
// never retries internally, and an unknown user and a wrong password produce
// the identical reason code so the response does not reveal whether the
// account exists.
type credentialVerifier struct {
	users      store.UserRepository
	identities store.IdentityRepository
	hasher     crypto.Hasher

	// validFields is the configured whitelist of user columns accepted as
	// login identifiers. Posted credentials under any other key are
	// silently discarded before the lookup.
	validFields []string

	logger *logger.Logger
}

// NewCredentialVerifier constructs a CredentialVerifier accepting the given
// identifying fields. The returned verifier is safe for concurrent use.
func NewCredentialVerifier(users store.UserRepository, identities store.IdentityRepository, hasher crypto.Hasher, validFields []string, logger *logger.Logger) CredentialVerifier {
	return &credentialVerifier{
		users:       users,
		identities:  identities,
		hasher:      hasher,
		validFields: validFields,
		logger:      logger,
	}
}

// Attempt verifies a posted credential set against the identity store.
//
// The credential map must contain at least one configured identifying field
// (e.g. username or email) and a non-empty "password" entry. The flow is:
//
//  1. filter credentials to the configured identifying fields; an empty
//     filtered set fails with invalid_credentials;
//  2. look the user up by the supplied fields; a miss fails with
//     invalid_credentials;
//  3. verify the password against the stored bcrypt hash; a mismatch fails
//     with invalid_credentials;
//  4. check the account lifecycle state; a deactivated or soft-deleted
//     account fails with account_inactive.
//
// On success the Result carries the user and the remember flag. Storage
// faults are returned as errors, never converted into a failed Result.
func (v *credentialVerifier) Attempt(ctx context.Context, credentials map[string]string, remember bool) (models.Result, error) {
	log := logger.FromContext(ctx)

	password := credentials[passwordField]
	lookup := v.filterIdentifyingFields(credentials)

	if len(lookup) == 0 || password == "" {
		log.Debug().Msg("login attempt with no usable identifying fields or empty password")
		return models.Failure(models.ReasonInvalidCredentials), nil
	}

	user, err := v.users.FindByFields(ctx, lookup)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.Failure(models.ReasonInvalidCredentials), nil
		}
		return models.Result{}, fmt.Errorf("user lookup failed: %w", err)
	}

	passwordIdentity, err := v.identities.FindByType(ctx, user.ID, models.IdentityPassword)
	if err != nil {
		if errors.Is(err, store.ErrIdentityNotFound) {
			// Account without a password credential: same outward outcome
			// as a wrong password.
			return models.Failure(models.ReasonInvalidCredentials), nil
		}
		return models.Result{}, fmt.Errorf("password identity lookup failed: %w", err)
	}

	if !v.hasher.VerifyPassword(passwordIdentity.Secret, password) {
		log.Debug().Int64("user_id", user.ID).Msg("password mismatch")
		return models.Failure(models.ReasonInvalidCredentials), nil
	}

	if !user.CanAuthenticate() {
		log.Debug().Int64("user_id", user.ID).Str("state", user.State().String()).Msg("account cannot authenticate")
		return models.Failure(models.ReasonAccountInactive), nil
	}

	if touchErr := v.identities.TouchLastUsed(ctx, passwordIdentity.ID); touchErr != nil {
		log.Err(touchErr).Int64("id", passwordIdentity.ID).Msg("failed to touch password identity")
	}

	result := models.Success(&user)
	result.Remember = remember
	return result, nil
}

// filterIdentifyingFields keeps only the credential entries whose key is a
// configured identifying field, preserving nothing else.
func (v *credentialVerifier) filterIdentifyingFields(credentials map[string]string) map[string]string {
	lookup := make(map[string]string, len(v.validFields))
	for _, field := range v.validFields {
		if value, ok := credentials[field]; ok && value != "" {
			lookup[field] = value
		}
	}
	return lookup
}
