package photographer

import (
	"context"

	"github.com/google/uuid"
)

const featuredLimit = 6

// Service handles photographer directory logic
type Service struct {
	repo Repository
}

// NewService creates photographer service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Search filters the directory and adds recommendations for thin results.
func (s *Service) Search(ctx context.Context, f Filter) (*SearchResult, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return Search(all, f), nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Photographer, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListFeatured(ctx context.Context) ([]*Photographer, error) {
	return s.repo.ListFeatured(ctx, featuredLimit)
}

// Exists reports whether id names a photographer.
func (s *Service) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.repo.Exists(ctx, id)
}

// IsManagedBy reports whether userID manages the photographer's profile.
func (s *Service) IsManagedBy(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return p.ManagedBy(userID), nil
}
