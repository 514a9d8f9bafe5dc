package follow

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// MountPhotographer registers follow endpoints on a photographer-scoped
// router. Guests reach the handlers so they receive AUTH_REQUIRED rather
// than a bare 401.
func (h *Handler) MountPhotographer(r chi.Router, optionalAuth func(http.Handler) http.Handler) {
	r.Route("/follow", func(r chi.Router) {
		r.Use(optionalAuth)
		r.Get("/", h.Status)
		r.Put("/", h.Follow)
		r.Delete("/", h.Unfollow)
		r.Post("/toggle", h.Toggle)
		r.Get("/count", h.Followers)
	})
}

// MeRoutes returns the router mounted at /me.
func (h *Handler) MeRoutes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Get("/follows", h.ListMine)
	return r
}
