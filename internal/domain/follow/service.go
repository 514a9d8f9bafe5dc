package follow

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pandalens/pandalens-api/internal/pkg/logger"
	"github.com/pandalens/pandalens-api/internal/pkg/metrics"
	"github.com/pandalens/pandalens-api/internal/pkg/session"
)

// PhotographerChecker reports whether a photographer exists.
type PhotographerChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// Service handles follow business logic
type Service struct {
	repo          Repository
	photographers PhotographerChecker
	now           func() time.Time
}

// NewService creates follow service
func NewService(repo Repository, photographers PhotographerChecker) *Service {
	return &Service{repo: repo, photographers: photographers, now: time.Now}
}

// Toggle follows the photographer when sess does not follow them yet and
// unfollows otherwise. Guests get ErrAuthRequired and nothing is written.
func (s *Service) Toggle(ctx context.Context, sess *session.Session, photographerID uuid.UUID) (*Status, error) {
	if sess.IsGuest() {
		return nil, ErrAuthRequired
	}

	following, err := s.repo.Exists(ctx, sess.UserID, photographerID)
	if err != nil {
		return nil, err
	}
	if following {
		return s.Unfollow(ctx, sess, photographerID)
	}
	return s.Follow(ctx, sess, photographerID)
}

// Follow makes sess follow the photographer. Following twice is a no-op.
func (s *Service) Follow(ctx context.Context, sess *session.Session, photographerID uuid.UUID) (*Status, error) {
	if sess.IsGuest() {
		return nil, ErrAuthRequired
	}
	if err := s.ensurePhotographer(ctx, photographerID); err != nil {
		return nil, err
	}

	if err := s.repo.Follow(ctx, sess.UserID, photographerID, s.now().UTC()); err != nil {
		return nil, err
	}
	metrics.FollowToggled("follow")
	logger.FromContext(ctx).Debug().Str("photographer_id", photographerID.String()).Msg("Photographer followed")

	return s.status(ctx, photographerID, true)
}

// Unfollow removes the relation. Unfollowing twice is a no-op.
func (s *Service) Unfollow(ctx context.Context, sess *session.Session, photographerID uuid.UUID) (*Status, error) {
	if sess.IsGuest() {
		return nil, ErrAuthRequired
	}

	if err := s.repo.Unfollow(ctx, sess.UserID, photographerID); err != nil {
		return nil, err
	}
	metrics.FollowToggled("unfollow")
	logger.FromContext(ctx).Debug().Str("photographer_id", photographerID.String()).Msg("Photographer unfollowed")

	return s.status(ctx, photographerID, false)
}

// IsFollowing reports the follow state. Guests never follow anyone.
func (s *Service) IsFollowing(ctx context.Context, sess *session.Session, photographerID uuid.UUID) (*Status, error) {
	following := false
	if !sess.IsGuest() {
		var err error
		following, err = s.repo.Exists(ctx, sess.UserID, photographerID)
		if err != nil {
			return nil, err
		}
	}
	return s.status(ctx, photographerID, following)
}

// ListMine returns the photographers sess follows, most recent first.
func (s *Service) ListMine(ctx context.Context, sess *session.Session) ([]*Follow, error) {
	if sess.IsGuest() {
		return nil, ErrAuthRequired
	}
	return s.repo.ListByUser(ctx, sess.UserID)
}

// CountFollowers returns how many users follow the photographer.
func (s *Service) CountFollowers(ctx context.Context, photographerID uuid.UUID) (int, error) {
	return s.repo.CountByPhotographer(ctx, photographerID)
}

func (s *Service) ensurePhotographer(ctx context.Context, id uuid.UUID) error {
	if s.photographers == nil {
		return nil
	}
	ok, err := s.photographers.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPhotographerNotFound
	}
	return nil
}

func (s *Service) status(ctx context.Context, photographerID uuid.UUID, following bool) (*Status, error) {
	count, err := s.repo.CountByPhotographer(ctx, photographerID)
	if err != nil {
		return nil, err
	}
	return &Status{PhotographerID: photographerID, Following: following, Followers: count}, nil
}
