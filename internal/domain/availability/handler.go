package availability

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pandalens/pandalens-api/internal/pkg/errorhandler"
	"github.com/pandalens/pandalens-api/internal/pkg/response"
)

// Handler handles availability HTTP requests
type Handler struct {
	service  *Service
	currency string
}

// NewHandler creates availability handler
func NewHandler(service *Service, currency string) *Handler {
	return &Handler{service: service, currency: currency}
}

// Week handles GET /photographers/{photographerID}/availability?week=YYYY-MM-DD
func (h *Handler) Week(w http.ResponseWriter, r *http.Request) {
	photographerID, err := uuid.Parse(chi.URLParam(r, "photographerID"))
	if err != nil {
		response.BadRequest(w, "Invalid photographer ID")
		return
	}

	ref := h.service.Today()
	if q := r.URL.Query().Get("week"); q != "" {
		week, err := ParseWeek(q)
		if err != nil {
			response.BadRequest(w, "week must be a YYYY-MM-DD date")
			return
		}
		ref = week.Start
	}

	view, err := h.service.ListWeek(r.Context(), photographerID, ref)
	if err != nil {
		if errors.Is(err, ErrPhotographerRequired) {
			response.BadRequest(w, err.Error())
			return
		}
		errorhandler.Internal(r.Context(), w, err, "availability.week")
		return
	}

	response.OK(w, NewWeekResponse(view, h.currency))
}

// GetSlot handles GET /availability/slots/{slotID}
func (h *Handler) GetSlot(w http.ResponseWriter, r *http.Request) {
	slotID, err := uuid.Parse(chi.URLParam(r, "slotID"))
	if err != nil {
		response.BadRequest(w, "Invalid slot ID")
		return
	}

	slot, err := h.service.GetSlot(r.Context(), slotID)
	if err != nil {
		if errors.Is(err, ErrSlotNotFound) {
			response.NotFound(w, "Slot not found")
			return
		}
		errorhandler.Internal(r.Context(), w, err, "availability.get_slot")
		return
	}

	response.OK(w, NewSlotResponse(slot, h.service.Today(), h.currency))
}
