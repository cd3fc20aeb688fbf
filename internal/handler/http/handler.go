package http

import (
	"github.com/dkomarov/go-auth-keeper/internal/config"
	"github.com/dkomarov/go-auth-keeper/internal/logger"
	"github.com/dkomarov/go-auth-keeper/internal/service"
)

// Handler carries the dependencies shared by every HTTP endpoint: the
// service layer, the authentication configuration (valid login fields and
// redirect targets) and the base logger.
type Handler struct {
	services *service.Services
	cfg      config.Auth

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.Auth, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		cfg:      cfg,
		logger:   logger,
	}
}
