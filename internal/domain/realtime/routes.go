package realtime

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns realtime router
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.WebSocket)
	return r
}
