package photographer

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pandalens/pandalens-api/internal/pkg/errorhandler"
	"github.com/pandalens/pandalens-api/internal/pkg/response"
	"github.com/pandalens/pandalens-api/internal/pkg/validator"
)

// Handler handles photographer HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates photographer handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Search handles GET /photographers?q=&gender=&category=
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := Filter{
		Term:     q.Get("q"),
		Gender:   q.Get("gender"),
		Category: q.Get("category"),
	}
	if errs := validator.Validate(&filter); errs != nil {
		errorhandler.Validation(r.Context(), w, errs)
		return
	}

	res, err := h.service.Search(r.Context(), filter)
	if err != nil {
		errorhandler.Internal(r.Context(), w, err, "photographer.search")
		return
	}

	response.OK(w, NewSearchResponse(res))
}

// Featured handles GET /photographers/featured
func (h *Handler) Featured(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListFeatured(r.Context())
	if err != nil {
		errorhandler.Internal(r.Context(), w, err, "photographer.featured")
		return
	}
	response.List(w, newResponses(list), len(list))
}

// Get handles GET /photographers/{photographerID}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "photographerID"))
	if err != nil {
		response.BadRequest(w, "Invalid photographer ID")
		return
	}

	p, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrPhotographerNotFound) {
			response.NotFound(w, "Photographer not found")
			return
		}
		errorhandler.Internal(r.Context(), w, err, "photographer.get")
		return
	}

	response.OK(w, NewResponse(p))
}
