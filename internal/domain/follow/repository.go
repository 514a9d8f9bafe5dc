package follow

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository stores follow relations. Follow and Unfollow are idempotent.
type Repository interface {
	Follow(ctx context.Context, userID, photographerID uuid.UUID, at time.Time) error
	Unfollow(ctx context.Context, userID, photographerID uuid.UUID) error
	Exists(ctx context.Context, userID, photographerID uuid.UUID) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Follow, error)
	CountByPhotographer(ctx context.Context, photographerID uuid.UUID) (int, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates follow repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Follow inserts the relation unless it already exists.
func (r *repository) Follow(ctx context.Context, userID, photographerID uuid.UUID, at time.Time) error {
	query := `
		INSERT INTO photographer_follows (id, user_id, photographer_id, followed_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, photographer_id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, uuid.New(), userID, photographerID, at)
	return err
}

// Unfollow deletes the relation if present.
func (r *repository) Unfollow(ctx context.Context, userID, photographerID uuid.UUID) error {
	query := `DELETE FROM photographer_follows WHERE user_id = $1 AND photographer_id = $2`
	_, err := r.db.ExecContext(ctx, query, userID, photographerID)
	return err
}

func (r *repository) Exists(ctx context.Context, userID, photographerID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM photographer_follows WHERE user_id = $1 AND photographer_id = $2)`
	err := r.db.GetContext(ctx, &exists, query, userID, photographerID)
	return exists, err
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Follow, error) {
	follows := []*Follow{}
	query := `
		SELECT id, user_id, photographer_id, followed_at
		FROM photographer_follows
		WHERE user_id = $1
		ORDER BY followed_at DESC
	`
	err := r.db.SelectContext(ctx, &follows, query, userID)
	return follows, err
}

func (r *repository) CountByPhotographer(ctx context.Context, photographerID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM photographer_follows WHERE photographer_id = $1`, photographerID)
	return count, err
}
