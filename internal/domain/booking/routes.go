package booking

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns booking router. Submission accepts guests; submitLimiter
// throttles it per client.
func (h *Handler) Routes(authMiddleware, optionalAuth, submitLimiter func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.With(optionalAuth, submitLimiter).Post("/", h.Create)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/mine", h.ListMine)
		r.Get("/{id}", h.Get)
	})

	return r
}
