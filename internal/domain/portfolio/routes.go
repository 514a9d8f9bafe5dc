package portfolio

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// MountPhotographer registers portfolio endpoints on a photographer-scoped
// router. Listing is public; changes need a signed-in owner.
func (h *Handler) MountPhotographer(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/portfolio", func(r chi.Router) {
		r.Get("/", h.List)
		r.With(authMiddleware).Post("/", h.Upload)
		r.With(authMiddleware).Delete("/{photoID}", h.Delete)
	})
}
