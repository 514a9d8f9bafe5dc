package photographer

import "github.com/go-chi/chi/v5"

// MountDirectory registers the directory listing endpoints.
func (h *Handler) MountDirectory(r chi.Router) {
	r.Get("/", h.Search)
	r.Get("/featured", h.Featured)
}

// MountProfile registers endpoints on the /{photographerID} router.
func (h *Handler) MountProfile(r chi.Router) {
	r.Get("/", h.Get)
}
