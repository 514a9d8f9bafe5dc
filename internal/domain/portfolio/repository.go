package portfolio

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines portfolio data access
type Repository interface {
	Create(ctx context.Context, photo *Photo) error
	GetByID(ctx context.Context, id uuid.UUID) (*Photo, error)
	ListByPhotographer(ctx context.Context, photographerID uuid.UUID) ([]*Photo, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates portfolio repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const selectPhotos = `
	SELECT id, photographer_id, key, thumb_key, url, thumb_url, title, category, description,
		taken_on::text AS taken_on, location, camera, lens, settings, width, height, size_bytes, created_at
	FROM portfolio_photos
`

func (r *repository) Create(ctx context.Context, photo *Photo) error {
	query := `
		INSERT INTO portfolio_photos (
			id, photographer_id, key, thumb_key, url, thumb_url, title, category, description,
			taken_on, location, camera, lens, settings, width, height, size_bytes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10::date, $11, $12, $13, $14, $15, $16, $17)
		RETURNING created_at
	`
	return r.db.QueryRowxContext(ctx, query,
		photo.ID,
		photo.PhotographerID,
		photo.Key,
		photo.ThumbKey,
		photo.URL,
		photo.ThumbURL,
		photo.Title,
		photo.Category,
		photo.Description,
		photo.TakenOn,
		photo.Location,
		photo.Camera,
		photo.Lens,
		photo.Settings,
		photo.Width,
		photo.Height,
		photo.SizeBytes,
	).Scan(&photo.CreatedAt)
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Photo, error) {
	var photo Photo
	if err := r.db.GetContext(ctx, &photo, selectPhotos+` WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &photo, nil
}

func (r *repository) ListByPhotographer(ctx context.Context, photographerID uuid.UUID) ([]*Photo, error) {
	photos := []*Photo{}
	err := r.db.SelectContext(ctx, &photos,
		selectPhotos+` WHERE photographer_id = $1 ORDER BY created_at DESC`, photographerID)
	return photos, err
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM portfolio_photos WHERE id = $1`, id)
	return err
}
