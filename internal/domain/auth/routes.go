package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns auth router. signInLimiter throttles credential checks.
func (h *Handler) Routes(optionalAuth, signInLimiter func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(signInLimiter)
		r.Post("/sign-up", h.SignUp)
		r.Post("/sign-in", h.SignIn)
	})
	r.Post("/refresh", h.Refresh)

	// A guest asking for its session gets null, not 401.
	r.Group(func(r chi.Router) {
		r.Use(optionalAuth)
		r.Get("/session", h.Session)
		r.Post("/sign-out", h.SignOut)
	})

	return r
}
