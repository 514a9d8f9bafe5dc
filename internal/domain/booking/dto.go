package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/pandalens/pandalens-api/internal/pkg/money"
)

// CreateRequest is the body of POST /bookings.
type CreateRequest struct {
	AvailabilityID      string `json:"availability_id" validate:"required,uuid"`
	Name                string `json:"name" validate:"notblank,max=100"`
	Phone               string `json:"phone" validate:"notblank,phone"`
	Email               string `json:"email" validate:"omitempty,email"`
	SpecialRequirements string `json:"special_requirements" validate:"max=2000"`
}

// Form returns the contact form part of the request.
func (r *CreateRequest) Form() Form {
	return Form{
		Name:                r.Name,
		Phone:               r.Phone,
		Email:               r.Email,
		SpecialRequirements: r.SpecialRequirements,
	}
}

// Response represents a booking in API responses
type Response struct {
	ID                  uuid.UUID   `json:"id"`
	AvailabilityID      uuid.UUID   `json:"availability_id"`
	PhotographerID      uuid.UUID   `json:"photographer_id"`
	Guest               bool        `json:"guest"`
	ContactInfo         ContactInfo `json:"contact_info"`
	SpecialRequirements *string     `json:"special_requirements,omitempty"`
	TotalPrice          int64       `json:"total_price"`
	TotalPriceDisplay   string      `json:"total_price_display"`
	Status              Status      `json:"status"`
	CreatedAt           time.Time   `json:"created_at"`
}

// NewResponse renders b with prices in currency.
func NewResponse(b *Booking, currency string) *Response {
	resp := &Response{
		ID:                b.ID,
		AvailabilityID:    b.AvailabilityID,
		PhotographerID:    b.PhotographerID,
		Guest:             b.IsGuest(),
		ContactInfo:       b.ContactInfo,
		TotalPrice:        b.TotalPrice,
		TotalPriceDisplay: money.Format(b.TotalPrice, currency),
		Status:            b.Status,
		CreatedAt:         b.CreatedAt,
	}
	if b.SpecialRequirements.Valid {
		resp.SpecialRequirements = &b.SpecialRequirements.String
	}
	return resp
}
