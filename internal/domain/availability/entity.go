package availability

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the wire and query format for calendar dates.
const DateLayout = "2006-01-02"

// Slot is a bookable time window published by a photographer.
type Slot struct {
	ID             uuid.UUID `db:"id" json:"id"`
	PhotographerID uuid.UUID `db:"photographer_id" json:"photographer_id"`
	Date           time.Time `db:"date" json:"date"`
	StartTime      string    `db:"start_time" json:"start_time"` // HH:MM:SS
	EndTime        string    `db:"end_time" json:"end_time"`
	Price          int64     `db:"price" json:"price"` // minor units
	ServiceType    string    `db:"service_type" json:"service_type"`
	IsBooked       bool      `db:"is_booked" json:"is_booked"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// Day returns the slot's calendar date with the time-of-day stripped.
func (s *Slot) Day() time.Time {
	return CivilDate(s.Date)
}

// IsPast reports whether the slot's date is before today.
func (s *Slot) IsPast(today time.Time) bool {
	return s.Day().Before(CivilDate(today))
}

// Selectable reports whether the slot may be chosen for booking on today.
func (s *Slot) Selectable(today time.Time) bool {
	return !s.IsBooked && !s.IsPast(today)
}

// CivilDate drops the clock and zone from t, keeping its calendar date.
// All date arithmetic in this package works on civil dates so that the
// database driver's zone handling cannot shift a day.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
