// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Komarov

package workers

import (
	"context"
	"errors"
	"time"

	"github.com/dkomarov/go-auth-keeper/internal/config"
	"github.com/dkomarov/go-auth-keeper/internal/logger"
	"github.com/dkomarov/go-auth-keeper/internal/store"
	"github.com/dkomarov/go-auth-keeper/models"
)

// sweptTypes lists the identity types the sweeper garbage-collects. Expired
// rows of these types are already rejected by every authentication path;
// the sweeper only reclaims the storage.
var sweptTypes = []models.IdentityType{
	models.IdentityAccessToken,
	models.IdentityRememberToken,
}

// Sweeper periodically deletes expired access-token and remember-me identity
// rows. An expired row is dead weight: lookups treat it as not-found, so the
// sweep changes no observable authentication behavior.
type Sweeper struct {
	identities store.IdentityRepository
	interval   time.Duration
	logger     *logger.Logger
}

// NewSweeper constructs a Sweeper with the interval from cfg.
func NewSweeper(identities store.IdentityRepository, cfg config.Workers, logger *logger.Logger) *Sweeper {
	return &Sweeper{
		identities: identities,
		interval:   cfg.SweepInterval,
		logger:     logger,
	}
}

// Run starts the sweep loop in its own goroutine. The loop stops when ctx is
// cancelled. A non-positive interval disables the sweeper entirely.
func (s *Sweeper) Run(ctx context.Context) {
	if s.interval <= 0 {
		s.logger.Info().Msg("identity sweeper disabled")
		return
	}

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.logger.Info().Dur("interval", s.interval).Msg("identity sweeper started")

		for {
			select {
			case <-ctx.Done():
				s.logger.Info().Msg("identity sweeper stopped")
				return
			case <-ticker.C:
				s.sweep(ctx)
			}
		}
	}()
}

// sweep deletes expired rows of every swept identity type. A failure for one
// type is logged and does not stop the others; the next tick retries.
func (s *Sweeper) sweep(ctx context.Context) {
	now := time.Now()

	for _, identityType := range sweptTypes {
		removed, err := s.identities.DeleteExpired(ctx, identityType, now)
		if err != nil {
			if errors.Is(err, store.ErrTransientDBFault) {
				// Connection loss or deadlock rollback; the next tick is
				// the retry.
				s.logger.Warn().Err(err).Str("type", string(identityType)).Msg("sweep hit a transient storage fault")
			} else {
				s.logger.Err(err).Str("type", string(identityType)).Msg("sweep failed")
			}
			continue
		}
		if removed > 0 {
			s.logger.Info().Str("type", string(identityType)).Int64("removed", removed).Msg("swept expired identities")
		}
	}
}
