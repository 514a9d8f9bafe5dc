package booking

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/pandalens/pandalens-api/internal/domain/availability"
	"github.com/pandalens/pandalens-api/internal/pkg/email"
	"github.com/pandalens/pandalens-api/internal/pkg/logger"
	"github.com/pandalens/pandalens-api/internal/pkg/metrics"
	"github.com/pandalens/pandalens-api/internal/pkg/session"
)

// EventBookingCreated is the routing key of the event published after a booking commits.
const EventBookingCreated = "booking.created"

// SlotSource reads slots and keeps the availability view fresh.
type SlotSource interface {
	GetSlot(ctx context.Context, id uuid.UUID) (*availability.Slot, error)
	Today() time.Time
	InvalidateWeek(ctx context.Context, photographerID uuid.UUID, date time.Time)
}

// Publisher publishes domain events.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// CreatedEvent is the payload of booking.created.
type CreatedEvent struct {
	BookingID      uuid.UUID   `json:"booking_id"`
	AvailabilityID uuid.UUID   `json:"availability_id"`
	PhotographerID uuid.UUID   `json:"photographer_id"`
	UserID         *uuid.UUID  `json:"user_id"`
	Date           string      `json:"date"`
	StartTime      string      `json:"start_time"`
	TotalPrice     int64       `json:"total_price"`
	Contact        ContactInfo `json:"contact"`
}

// Mailer confirms a booking request to the contact email.
type Mailer interface {
	SendBookingRequested(to string, data email.BookingRequested)
}

// Service handles booking business logic
type Service struct {
	repo      Repository
	slots     SlotSource
	hold      *SlotHold
	publisher Publisher
	mailer    Mailer
}

// NewService creates booking service. hold and publisher may be nil.
func NewService(repo Repository, slots SlotSource, hold *SlotHold, publisher Publisher) *Service {
	return &Service{repo: repo, slots: slots, hold: hold, publisher: publisher}
}

// WithMailer enables confirmation emails for requests that carry an email.
func (s *Service) WithMailer(m Mailer) *Service {
	s.mailer = m
	return s
}

// Submit books slotID for requester. The form is validated before anything
// is read or written. The booking row and the slot's booked flag are written
// in one transaction, booking first.
func (s *Service) Submit(ctx context.Context, requester Requester, slotID uuid.UUID, form Form) (*Booking, error) {
	form = form.Normalize()
	if err := form.Validate(); err != nil {
		metrics.BookingResult(metrics.BookingRejected)
		return nil, err
	}

	slot, err := s.slots.GetSlot(ctx, slotID)
	if err != nil {
		if errors.Is(err, availability.ErrSlotNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}

	sel := NewSelection(s.slots.Today())
	if err := sel.Choose(slot); err != nil {
		metrics.BookingResult(metrics.BookingUnavailable)
		return nil, err
	}
	form, err = sel.BeginSubmit(form)
	if err != nil {
		return nil, err
	}

	b, err := s.write(ctx, requester, slot.ID, form)
	if err != nil {
		sel.Fail(err)
		if errors.Is(err, ErrSlotUnavailable) || errors.Is(err, ErrSlotNotFound) {
			metrics.BookingResult(metrics.BookingUnavailable)
		} else {
			metrics.BookingResult(metrics.BookingFailed)
			logger.FromContext(ctx).Error().Err(err).
				Str("slot_id", slotID.String()).
				Msg("Booking submission failed")
		}
		return nil, err
	}

	booked, _ := sel.Succeed()
	metrics.BookingResult(metrics.BookingCreated)
	s.slots.InvalidateWeek(ctx, b.PhotographerID, booked.Date)
	s.publishCreated(ctx, b, booked)
	s.mailConfirmation(b, booked)

	logger.FromContext(ctx).Info().
		Str("booking_id", b.ID.String()).
		Str("slot_id", slotID.String()).
		Bool("guest", b.IsGuest()).
		Msg("Booking created")
	return b, nil
}

func (s *Service) write(ctx context.Context, requester Requester, slotID uuid.UUID, form Form) (*Booking, error) {
	release, err := s.hold.Acquire(ctx, slotID)
	if err != nil {
		return nil, err
	}
	defer release()

	start := time.Now()
	defer func() { metrics.BookingWrite(time.Since(start)) }()

	b := &Booking{
		ID:             uuid.New(),
		AvailabilityID: slotID,
		UserID:         requester.UserID,
		ContactInfo:    form.Contact(),
		Status:         StatusPending,
	}
	if form.SpecialRequirements != "" {
		b.SpecialRequirements = sql.NullString{String: form.SpecialRequirements, Valid: true}
	}

	err = s.repo.InTx(ctx, func(tx Tx) error {
		slot, err := tx.LockSlot(ctx, slotID)
		if err != nil {
			return err
		}
		if slot.IsBooked {
			return ErrSlotUnavailable
		}

		b.PhotographerID = slot.PhotographerID
		b.TotalPrice = slot.Price

		if err := tx.InsertBooking(ctx, b); err != nil {
			return err
		}
		return tx.MarkSlotBooked(ctx, slotID)
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) publishCreated(ctx context.Context, b *Booking, slot *availability.Slot) {
	if s.publisher == nil {
		return
	}
	event := CreatedEvent{
		BookingID:      b.ID,
		AvailabilityID: b.AvailabilityID,
		PhotographerID: b.PhotographerID,
		UserID:         b.UserID,
		Date:           slot.Day().Format(availability.DateLayout),
		StartTime:      slot.StartTime,
		TotalPrice:     b.TotalPrice,
		Contact:        b.ContactInfo,
	}
	if err := s.publisher.Publish(ctx, EventBookingCreated, event); err != nil {
		logger.FromContext(ctx).Warn().Err(err).
			Str("booking_id", b.ID.String()).
			Msg("Failed to publish booking event")
	}
}

func (s *Service) mailConfirmation(b *Booking, slot *availability.Slot) {
	if s.mailer == nil || b.ContactInfo.Email == "" {
		return
	}
	s.mailer.SendBookingRequested(b.ContactInfo.Email, email.BookingRequested{
		Name:        b.ContactInfo.Name,
		Date:        slot.Day().Format(availability.DateLayout),
		StartTime:   clock(slot.StartTime),
		EndTime:     clock(slot.EndTime),
		ServiceType: slot.ServiceType,
		TotalPrice:  b.TotalPrice,
	})
}

// clock trims "HH:MM:SS" to "HH:MM".
func clock(t string) string {
	if len(t) > 5 {
		return t[:5]
	}
	return t
}

// ListMine returns the signed-in user's bookings, newest first.
func (s *Service) ListMine(ctx context.Context, sess *session.Session) ([]*Booking, error) {
	if sess.IsGuest() {
		return nil, ErrAuthRequired
	}
	return s.repo.ListByUser(ctx, sess.UserID)
}

// Get returns a booking owned by the session's user. Bookings of other
// users and guest bookings are reported as not found.
func (s *Service) Get(ctx context.Context, sess *session.Session, id uuid.UUID) (*Booking, error) {
	if sess.IsGuest() {
		return nil, ErrAuthRequired
	}
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.OwnedBy(sess.UserID) {
		return nil, ErrBookingNotFound
	}
	return b, nil
}
