// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Komarov

// Package crypto contains the secret-handling primitives of the
// authentication service: one-way hashing of passwords and tokens, and
// generation of raw bearer token values.
//
// There is deliberately no decrypt or reverse operation anywhere in this
// package. Secrets go in, hashes come out.
package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"io"

	"golang.org/x/crypto/bcrypt"
)

// rawTokenBytes is the entropy of a generated bearer token. 32 bytes gives
// 256 bits, comfortably above the 160-bit floor for bearer credentials.
const rawTokenBytes = 32

// Hasher provides one-way hashing of the two secret classes handled by the
// service.
//
// Passwords are hashed with bcrypt: slow, salted, and verified with a
// constant-time comparison. Tokens are hashed with plain SHA-256: a token's
// own randomness supplies the entropy, and the hash must be deterministic so
// it can serve as a database lookup key.
type Hasher interface {
	// HashPassword returns the bcrypt hash of a plaintext password.
	HashPassword(plaintext string) (string, error)

	// VerifyPassword reports whether plaintext matches the stored bcrypt
	// hash. The comparison is constant-time.
	VerifyPassword(hash, plaintext string) bool

	// HashToken returns the hex-encoded SHA-256 digest of a raw token value.
	HashToken(raw string) string
}

// bcryptHasher is the production implementation of [Hasher].
type bcryptHasher struct {
	cost int
}

// NewHasher constructs a [Hasher]. A cost of zero selects
// [bcrypt.DefaultCost]; anything outside bcrypt's supported range is clamped
// by the bcrypt library itself at hash time.
func NewHasher(cost int) Hasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	return &bcryptHasher{cost: cost}
}

func (h *bcryptHasher) HashPassword(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}

	return string(hashed), nil
}

func (h *bcryptHasher) VerifyPassword(hash, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

func (h *bcryptHasher) HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// GenerateRawToken produces a new plaintext bearer token value from the OS
// CSPRNG, hex-encoded. Returns an error only if the random read fails.
func GenerateRawToken() (string, error) {
	buf := make([]byte, rawTokenBytes)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return "", err
	}

	return hex.EncodeToString(buf), nil
}
