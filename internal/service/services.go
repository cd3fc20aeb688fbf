package service

import (
	"github.com/dkomarov/go-auth-keeper/internal/config"
	"github.com/dkomarov/go-auth-keeper/internal/crypto"
	"github.com/dkomarov/go-auth-keeper/internal/logger"
	"github.com/dkomarov/go-auth-keeper/internal/store"
)

// Services aggregates the authentication services consumed by the transport
// layer.
type Services struct {
	Tokens   AccessTokenService
	Verifier CredentialVerifier
	Sessions SessionService
}

// NewServices wires the service layer from the storage repositories and
// configuration. A single bcrypt hasher instance is shared by every service
// so the configured work factor applies uniformly.
func NewServices(storages store.Storages, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	hasher := crypto.NewHasher(cfg.Auth.BcryptCost)

	verifier := NewCredentialVerifier(storages.Users, storages.Identities, hasher, cfg.Auth.ValidFields, logger)

	return &Services{
		Tokens:   NewAccessTokenService(storages.Users, storages.Identities, hasher, logger),
		Verifier: verifier,
		Sessions: NewSessionService(verifier, storages.Users, storages.Identities, hasher, cfg.Auth, logger),
	}
}
