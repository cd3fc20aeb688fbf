package handler

import (
	"github.com/dkomarov/go-auth-keeper/internal/config"
	"github.com/dkomarov/go-auth-keeper/internal/handler/http"
	"github.com/dkomarov/go-auth-keeper/internal/logger"
	"github.com/dkomarov/go-auth-keeper/internal/service"
)

// Handlers aggregates the transport handlers of the application. Only HTTP
// is supported.
type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.Server.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, cfg.Auth, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
