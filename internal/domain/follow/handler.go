package follow

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pandalens/pandalens-api/internal/pkg/errorhandler"
	"github.com/pandalens/pandalens-api/internal/pkg/response"
	"github.com/pandalens/pandalens-api/internal/pkg/session"
)

// Handler for follow API
type Handler struct {
	service *Service
}

// NewHandler creates follow handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Toggle handles POST /photographers/{photographerID}/follow/toggle
func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, h.service.Toggle)
}

// Follow handles PUT /photographers/{photographerID}/follow
func (h *Handler) Follow(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, h.service.Follow)
}

// Unfollow handles DELETE /photographers/{photographerID}/follow
func (h *Handler) Unfollow(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, h.service.Unfollow)
}

// Status handles GET /photographers/{photographerID}/follow
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, h.service.IsFollowing)
}

// Followers handles GET /photographers/{photographerID}/follow/count
func (h *Handler) Followers(w http.ResponseWriter, r *http.Request) {
	photographerID, err := uuid.Parse(chi.URLParam(r, "photographerID"))
	if err != nil {
		response.BadRequest(w, "Invalid photographer ID")
		return
	}

	n, err := h.service.CountFollowers(r.Context(), photographerID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.OK(w, map[string]int{"followers": n})
}

// ListMine handles GET /me/follows
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	follows, err := h.service.ListMine(r.Context(), session.FromContext(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.List(w, follows, len(follows))
}

type operation func(ctx context.Context, sess *session.Session, photographerID uuid.UUID) (*Status, error)

func (h *Handler) run(w http.ResponseWriter, r *http.Request, op operation) {
	photographerID, err := uuid.Parse(chi.URLParam(r, "photographerID"))
	if err != nil {
		response.BadRequest(w, "Invalid photographer ID")
		return
	}

	status, err := op(r.Context(), session.FromContext(r.Context()), photographerID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.OK(w, status)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrAuthRequired):
		response.AuthRequired(w)
	case errors.Is(err, ErrPhotographerNotFound):
		response.NotFound(w, "Photographer not found")
	default:
		errorhandler.Internal(r.Context(), w, err, "follow")
	}
}
