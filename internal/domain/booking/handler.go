package booking

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pandalens/pandalens-api/internal/pkg/errorhandler"
	"github.com/pandalens/pandalens-api/internal/pkg/response"
	"github.com/pandalens/pandalens-api/internal/pkg/session"
	"github.com/pandalens/pandalens-api/internal/pkg/validator"
)

// Handler handles booking HTTP requests
type Handler struct {
	service  *Service
	currency string
}

// NewHandler creates booking handler
func NewHandler(service *Service, currency string) *Handler {
	return &Handler{service: service, currency: currency}
}

// Create handles POST /bookings. Guests may book.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		errorhandler.Validation(r.Context(), w, errs)
		return
	}

	slotID, _ := uuid.Parse(req.AvailabilityID)
	requester := RequesterFrom(session.FromContext(r.Context()))

	b, err := h.service.Submit(r.Context(), requester, slotID, req.Form())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Created(w, NewResponse(b, h.currency))
}

// ListMine handles GET /bookings/mine
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.service.ListMine(r.Context(), session.FromContext(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	items := make([]*Response, len(bookings))
	for i, b := range bookings {
		items[i] = NewResponse(b, h.currency)
	}
	response.List(w, items, len(items))
}

// Get handles GET /bookings/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	b, err := h.service.Get(r.Context(), session.FromContext(r.Context()), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.OK(w, NewResponse(b, h.currency))
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		errorhandler.Validation(r.Context(), w, verr.Fields)
	case errors.Is(err, ErrAuthRequired):
		response.AuthRequired(w)
	case errors.Is(err, ErrSlotNotFound):
		response.NotFound(w, "Slot not found")
	case errors.Is(err, ErrBookingNotFound):
		response.NotFound(w, "Booking not found")
	case errors.Is(err, ErrSlotUnavailable), errors.Is(err, ErrSlotExpired):
		response.Conflict(w, response.CodeSlotUnavailable, "This time slot is no longer available")
	default:
		errorhandler.Internal(r.Context(), w, err, "booking")
	}
}
