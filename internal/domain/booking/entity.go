package booking

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/pandalens/pandalens-api/internal/pkg/session"
)

// Status represents booking status
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// ContactInfo is how the photographer reaches the requester. Stored as JSONB.
type ContactInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

// Value implements driver.Valuer.
func (c ContactInfo) Value() (driver.Value, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (c *ContactInfo) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	case nil:
		*c = ContactInfo{}
		return nil
	}
	return errors.New("contact_info: unsupported type")
}

// Booking is a request for one availability slot.
type Booking struct {
	ID                  uuid.UUID      `db:"id"`
	AvailabilityID      uuid.UUID      `db:"availability_id"`
	UserID              *uuid.UUID     `db:"user_id"` // nil for guest bookings
	PhotographerID      uuid.UUID      `db:"photographer_id"`
	ContactInfo         ContactInfo    `db:"contact_info"`
	SpecialRequirements sql.NullString `db:"special_requirements"`
	TotalPrice          int64          `db:"total_price"`
	Status              Status         `db:"status"`
	CreatedAt           time.Time      `db:"created_at"`
	UpdatedAt           time.Time      `db:"updated_at"`
}

// IsGuest reports whether the booking was made without an account.
func (b *Booking) IsGuest() bool {
	return b.UserID == nil
}

// OwnedBy reports whether userID made the booking.
func (b *Booking) OwnedBy(userID uuid.UUID) bool {
	return b.UserID != nil && *b.UserID == userID
}

// Requester identifies who submits a booking. A nil UserID is a guest.
type Requester struct {
	UserID *uuid.UUID
}

// RequesterFrom builds a requester from the request session (nil for guests).
func RequesterFrom(s *session.Session) Requester {
	return Requester{UserID: s.UserIDPtr()}
}

// Guest reports whether the requester has no account.
func (r Requester) Guest() bool {
	return r.UserID == nil
}
