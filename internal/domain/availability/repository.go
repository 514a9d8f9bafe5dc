package availability

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository reads availability slots.
type Repository interface {
	// ListOpen returns unbooked slots of a photographer with from <= date <= to,
	// ordered by date then start time.
	ListOpen(ctx context.Context, photographerID uuid.UUID, from, to time.Time) ([]*Slot, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Slot, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates availability repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// TIME columns are cast to text so they scan as "HH:MM:SS" rather than a zero-date time.Time.
const slotColumns = `id, photographer_id, date, start_time::text AS start_time, end_time::text AS end_time,
	price, service_type, is_booked, created_at`

func (r *repository) ListOpen(ctx context.Context, photographerID uuid.UUID, from, to time.Time) ([]*Slot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM photographer_availability
		WHERE photographer_id = $1
		  AND date BETWEEN $2::date AND $3::date
		  AND is_booked = false
		ORDER BY date ASC, start_time ASC
	`
	slots := []*Slot{}
	err := r.db.SelectContext(ctx, &slots, query, photographerID, from.Format(DateLayout), to.Format(DateLayout))
	return slots, err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Slot, error) {
	var slot Slot
	err := r.db.GetContext(ctx, &slot, `SELECT `+slotColumns+` FROM photographer_availability WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}
	return &slot, nil
}
