package availability

import "github.com/go-chi/chi/v5"

// Routes returns availability router mounted at /availability.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/slots/{slotID}", h.GetSlot)
	return r
}

// MountWeek registers the weekly listing on a photographer-scoped router.
func (h *Handler) MountWeek(r chi.Router) {
	r.Get("/availability", h.Week)
}
