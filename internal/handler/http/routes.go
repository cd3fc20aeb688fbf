package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init wires the REST API surface.
//
// Routes are grouped by the authentication they require:
//   - /auth/login is anonymous;
//   - /auth/logout and /auth/me require a valid session cookie (with silent
//     remember-me re-authentication as fallback);
//   - /api/tokens/* requires a bearer access token with the matching scope.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/auth/login", h.login)
	})

	// interactive session routes
	router.Group(func(r chi.Router) {
		r.Use(h.session)
		r.Post("/auth/logout", h.logout)
		r.Get("/auth/me", h.me)
	})

	// machine-to-machine token management routes
	router.Group(func(r chi.Router) {
		r.Use(h.bearerAuth)

		r.Group(func(r chi.Router) {
			r.Use(h.requireScope(scopeTokensRead))
			r.Get("/api/tokens", h.listTokens)
			r.Get("/api/tokens/{id}", h.getToken)
		})

		r.Group(func(r chi.Router) {
			r.Use(h.requireScope(scopeTokensWrite))
			r.Post("/api/tokens", h.createToken)
			r.Post("/api/tokens/revoke", h.revokeToken)
			r.Delete("/api/tokens", h.revokeAllTokens)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
