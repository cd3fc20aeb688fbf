// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Komarov

package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dkomarov/go-auth-keeper/models"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateSessionToken creates a signed HMAC-SHA256 JWT representing an
// interactive login session.
//
// The token carries the following registered claims:
//   - Issuer    (iss): identifies the service that issued the session
//   - Subject   (sub): the user ID encoded as a string
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus sessionDuration
//
// All parameters are required. Returns an error if any of them are empty or
// zero.
func GenerateSessionToken(issuer string, userID int64, sessionDuration time.Duration, signKey string) (models.SessionToken, error) {
	if issuer == "" || sessionDuration == 0 || signKey == "" {
		return models.SessionToken{}, errors.New("invalid params for generating session token")
	}

	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   strconv.FormatInt(userID, 10),
		ExpiresAt: jwt.NewNumericDate(now.Add(sessionDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.SessionToken{}, fmt.Errorf("error occurred during signing session token: %w", err)
	}

	return models.SessionToken{Token: token, SignedString: tokenString, UserID: userID}, nil
}

// ValidateAndParseSessionToken verifies the given session JWT string and
// extracts its claims.
//
// Validation covers:
//   - signature verification against signKey
//   - issuer (iss) claim check against issuer
//   - expiration (exp) claim check
//   - subject (sub) claim presence and conversion to an int64 user ID
//
// Returns an error if validation fails, claims are missing, or the subject
// cannot be parsed.
func ValidateAndParseSessionToken(tokenString, signKey, issuer string) (models.SessionToken, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.SessionToken{}, func(token *jwt.Token) (any, error) {
		return []byte(signKey), nil
	}, jwt.WithIssuer(issuer))
	if err != nil {
		return models.SessionToken{}, fmt.Errorf("error occurred validating and parsing session token: %w", err)
	}

	sub, err := token.Claims.GetSubject()
	if err != nil {
		return models.SessionToken{}, fmt.Errorf("error occurred during getting subject from session token: %w", err)
	}
	if sub == "" {
		return models.SessionToken{}, errors.New("empty subject error")
	}

	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return models.SessionToken{}, fmt.Errorf("error occurred during converting session subject to user id: %w", err)
	}

	return models.SessionToken{Token: token, SignedString: tokenString, UserID: userID}, nil
}

// ParseBearerToken extracts the credential part of an "Authorization: Bearer
// <token>" header. The scheme is matched case-insensitively per RFC 6750.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Split(strings.TrimSpace(authorizationHeader), " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
