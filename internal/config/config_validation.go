// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Komarov

package config

import (
	"fmt"
	"time"
)

// knownIdentifyingFields is the set of user columns the storage layer can
// look accounts up by. Auth.ValidFields must be a subset; anything else
// would fail query building on every login attempt, so it is rejected here
// at startup instead. Must stay in sync with the user lookup whitelist in
// internal/store.
var knownIdentifyingFields = map[string]struct{}{
	"username": {},
	"email":    {},
}

// applyDefaults fills in safe defaults for fields that remained zero after
// all configuration sources were merged.
func (cfg *StructuredConfig) applyDefaults() {
	if len(cfg.Auth.ValidFields) == 0 {
		cfg.Auth.ValidFields = []string{"username", "email"}
	}
	if cfg.Auth.SessionIssuer == "" {
		cfg.Auth.SessionIssuer = "go-auth-keeper"
	}
	if cfg.Auth.SessionDuration == 0 {
		cfg.Auth.SessionDuration = 15 * time.Minute
	}
	if cfg.Auth.RememberDuration == 0 {
		cfg.Auth.RememberDuration = 30 * 24 * time.Hour
	}
	if cfg.Storage.DB.Driver == "" {
		cfg.Storage.DB.Driver = "pgx"
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = 30 * time.Second
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Storage.DB.Driver != "pgx" && cfg.Storage.DB.Driver != "sqlite3" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Auth.SessionSignKey == "" {
		return ErrInvalidAuthConfigs
	}

	for _, field := range cfg.Auth.ValidFields {
		if _, ok := knownIdentifyingFields[field]; !ok {
			return fmt.Errorf("%w: unknown identifying field %q", ErrInvalidAuthConfigs, field)
		}
	}

	return nil
}
