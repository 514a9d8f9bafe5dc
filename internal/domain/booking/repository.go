package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/pandalens/pandalens-api/internal/pkg/database"
)

// activeBookingConstraint is the partial unique index allowing one
// non-cancelled booking per slot.
const activeBookingConstraint = "bookings_availability_active_key"

// Repository persists bookings.
type Repository interface {
	// InTx runs fn inside one database transaction. fn's writes commit
	// together when it returns nil and roll back otherwise.
	InTx(ctx context.Context, fn func(tx Tx) error) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Booking, error)
}

// Tx is the set of writes a booking submission performs.
type Tx interface {
	// LockSlot reads the slot row and locks it until the transaction ends.
	LockSlot(ctx context.Context, slotID uuid.UUID) (*LockedSlot, error)
	InsertBooking(ctx context.Context, b *Booking) error
	// MarkSlotBooked flips is_booked from false to true.
	MarkSlotBooked(ctx context.Context, slotID uuid.UUID) error
}

// LockedSlot is the part of a slot row a booking copies.
type LockedSlot struct {
	ID             uuid.UUID `db:"id"`
	PhotographerID uuid.UUID `db:"photographer_id"`
	Date           string    `db:"date"`
	Price          int64     `db:"price"`
	IsBooked       bool      `db:"is_booked"`
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates booking repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) InTx(ctx context.Context, fn func(tx Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&sqlxTx{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

const bookingColumns = `id, availability_id, user_id, photographer_id, contact_info,
	special_requirements, total_price, status, created_at, updated_at`

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var b Booking
	err := r.db.GetContext(ctx, &b, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Booking, error) {
	bookings := []*Booking{}
	err := r.db.SelectContext(ctx, &bookings, `
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	return bookings, err
}

type sqlxTx struct {
	tx *sqlx.Tx
}

func (t *sqlxTx) LockSlot(ctx context.Context, slotID uuid.UUID) (*LockedSlot, error) {
	var slot LockedSlot
	err := t.tx.GetContext(ctx, &slot, `
		SELECT id, photographer_id, date::text AS date, price, is_booked
		FROM photographer_availability
		WHERE id = $1
		FOR UPDATE
	`, slotID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}
	return &slot, nil
}

func (t *sqlxTx) InsertBooking(ctx context.Context, b *Booking) error {
	err := t.tx.QueryRowxContext(ctx, `
		INSERT INTO bookings (id, availability_id, user_id, photographer_id, contact_info,
			special_requirements, total_price, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`, b.ID, b.AvailabilityID, b.UserID, b.PhotographerID, b.ContactInfo,
		b.SpecialRequirements, b.TotalPrice, b.Status,
	).Scan(&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err, activeBookingConstraint) {
			return ErrSlotUnavailable
		}
		return err
	}
	return nil
}

func (t *sqlxTx) MarkSlotBooked(ctx context.Context, slotID uuid.UUID) error {
	res, err := t.tx.ExecContext(ctx, `
		UPDATE photographer_availability
		SET is_booked = true
		WHERE id = $1 AND is_booked = false
	`, slotID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSlotUnavailable
	}
	return nil
}
