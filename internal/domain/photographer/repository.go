package photographer

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository reads the photographer directory.
type Repository interface {
	List(ctx context.Context) ([]*Photographer, error)
	ListFeatured(ctx context.Context, limit int) ([]*Photographer, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Photographer, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates photographer repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const selectPhotographers = `
	SELECT p.id, p.user_id, p.name, p.avatar_url, p.rating, p.review_count, p.specialties,
		p.location, p.price_range, p.bio, p.gender, p.featured, p.created_at,
		COALESCE(
			array_agg(DISTINCT pp.category) FILTER (WHERE pp.category <> ''),
			'{}'
		) AS portfolio_categories
	FROM photographers p
	LEFT JOIN portfolio_photos pp ON pp.photographer_id = p.id
`

func (r *repository) List(ctx context.Context) ([]*Photographer, error) {
	query := selectPhotographers + `
		GROUP BY p.id
		ORDER BY p.featured DESC, p.rating DESC, p.name ASC
	`
	photographers := []*Photographer{}
	err := r.db.SelectContext(ctx, &photographers, query)
	return photographers, err
}

func (r *repository) ListFeatured(ctx context.Context, limit int) ([]*Photographer, error) {
	query := selectPhotographers + `
		WHERE p.featured = true
		GROUP BY p.id
		ORDER BY p.rating DESC, p.review_count DESC
		LIMIT $1
	`
	photographers := []*Photographer{}
	err := r.db.SelectContext(ctx, &photographers, query, limit)
	return photographers, err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Photographer, error) {
	query := selectPhotographers + `
		WHERE p.id = $1
		GROUP BY p.id
	`
	var p Photographer
	if err := r.db.GetContext(ctx, &p, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPhotographerNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM photographers WHERE id = $1)`, id)
	return exists, err
}
