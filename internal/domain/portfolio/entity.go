package portfolio

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Photo is one portfolio image. The files live in object storage; the row
// keeps their keys and the shoot details shown in the lightbox.
type Photo struct {
	ID             uuid.UUID      `db:"id"`
	PhotographerID uuid.UUID      `db:"photographer_id"`
	Key            string         `db:"key"`
	ThumbKey       string         `db:"thumb_key"`
	URL            string         `db:"url"`
	ThumbURL       string         `db:"thumb_url"`
	Title          string         `db:"title"`
	Category       string         `db:"category"`
	Description    string         `db:"description"`
	TakenOn        sql.NullString `db:"taken_on"` // YYYY-MM-DD
	Location       string         `db:"location"`
	Camera         string         `db:"camera"`
	Lens           string         `db:"lens"`
	Settings       string         `db:"settings"`
	Width          int            `db:"width"`
	Height         int            `db:"height"`
	SizeBytes      int64          `db:"size_bytes"`
	CreatedAt      time.Time      `db:"created_at"`
}

// Details is the caption data supplied with an upload.
type Details struct {
	Title       string `json:"title" validate:"notblank,max=200"`
	Category    string `json:"category" validate:"required,max=50"`
	Description string `json:"description" validate:"max=2000"`
	TakenOn     string `json:"taken_on" validate:"omitempty,datetime=2006-01-02"`
	Location    string `json:"location" validate:"max=200"`
	Camera      string `json:"camera" validate:"max=100"`
	Lens        string `json:"lens" validate:"max=100"`
	Settings    string `json:"settings" validate:"max=100"`
}
