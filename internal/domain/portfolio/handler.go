package portfolio

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pandalens/pandalens-api/internal/pkg/errorhandler"
	"github.com/pandalens/pandalens-api/internal/pkg/imaging"
	"github.com/pandalens/pandalens-api/internal/pkg/response"
	"github.com/pandalens/pandalens-api/internal/pkg/session"
	"github.com/pandalens/pandalens-api/internal/pkg/storage"
	"github.com/pandalens/pandalens-api/internal/pkg/validator"
)

// multipartOverhead leaves room for the caption fields next to the file.
const multipartOverhead = 1 << 20

// Handler handles portfolio HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates portfolio handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /photographers/{photographerID}/portfolio
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	photographerID, ok := photographerParam(w, r)
	if !ok {
		return
	}

	photos, err := h.service.List(r.Context(), photographerID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.List(w, newPhotoResponses(photos), len(photos))
}

// Upload handles POST /photographers/{photographerID}/portfolio
// Expects multipart/form-data with a "file" part and caption fields.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	photographerID, ok := photographerParam(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxFileSize+multipartOverhead)
	if err := r.ParseMultipartForm(imaging.MaxFileSize + multipartOverhead); err != nil {
		response.BadRequest(w, "File too large or invalid form data")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "File is required")
		return
	}
	defer file.Close()

	details := Details{
		Title:       r.FormValue("title"),
		Category:    r.FormValue("category"),
		Description: r.FormValue("description"),
		TakenOn:     r.FormValue("taken_on"),
		Location:    r.FormValue("location"),
		Camera:      r.FormValue("camera"),
		Lens:        r.FormValue("lens"),
		Settings:    r.FormValue("settings"),
	}
	if errs := validator.Validate(&details); errs != nil {
		errorhandler.Validation(r.Context(), w, errs)
		return
	}

	photo, err := h.service.Upload(r.Context(), session.FromContext(r.Context()), photographerID, file, details)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Created(w, NewPhotoResponse(photo))
}

// Delete handles DELETE /photographers/{photographerID}/portfolio/{photoID}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	photographerID, ok := photographerParam(w, r)
	if !ok {
		return
	}
	photoID, err := uuid.Parse(chi.URLParam(r, "photoID"))
	if err != nil {
		response.BadRequest(w, "Invalid photo ID")
		return
	}

	if err := h.service.Delete(r.Context(), session.FromContext(r.Context()), photographerID, photoID); err != nil {
		h.writeError(w, r, err)
		return
	}
	response.NoContent(w)
}

func photographerParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "photographerID"))
	if err != nil {
		response.BadRequest(w, "Invalid photographer ID")
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrAuthRequired):
		response.AuthRequired(w)
	case errors.Is(err, ErrNotOwner):
		response.Forbidden(w, "You can only manage your own portfolio")
	case errors.Is(err, ErrPhotographerNotFound):
		response.NotFound(w, "Photographer not found")
	case errors.Is(err, ErrPhotoNotFound):
		response.NotFound(w, "Photo not found")
	case errors.Is(err, storage.ErrFileTooLarge):
		response.BadRequest(w, "File exceeds 10MB")
	case errors.Is(err, storage.ErrInvalidMimeType), errors.Is(err, ErrInvalidImage):
		response.BadRequest(w, "Only JPG, PNG, WebP and GIF images are allowed")
	case errors.Is(err, storage.ErrEmptyFile):
		response.BadRequest(w, "File is empty")
	default:
		errorhandler.Internal(r.Context(), w, err, "portfolio")
	}
}
