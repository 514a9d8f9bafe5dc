package portfolio

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/pandalens/pandalens-api/internal/domain/photographer"
	"github.com/pandalens/pandalens-api/internal/pkg/imaging"
	"github.com/pandalens/pandalens-api/internal/pkg/logger"
	"github.com/pandalens/pandalens-api/internal/pkg/session"
	"github.com/pandalens/pandalens-api/internal/pkg/storage"
)

// OwnerChecker answers whether a user manages a photographer profile.
type OwnerChecker interface {
	IsManagedBy(ctx context.Context, photographerID, userID uuid.UUID) (bool, error)
}

// Service handles portfolio business logic
type Service struct {
	repo      Repository
	owners    OwnerChecker
	store     storage.Store
	processor *imaging.Processor
}

// NewService creates portfolio service
func NewService(repo Repository, owners OwnerChecker, store storage.Store, processor *imaging.Processor) *Service {
	return &Service{
		repo:      repo,
		owners:    owners,
		store:     store,
		processor: processor,
	}
}

// Upload validates and resizes file, stores the display image and its
// thumbnail, then records the photo. Objects are removed again if a later
// step fails.
func (s *Service) Upload(ctx context.Context, sess *session.Session, photographerID uuid.UUID, file io.Reader, details Details) (*Photo, error) {
	if err := s.authorize(ctx, sess, photographerID); err != nil {
		return nil, err
	}

	data, _, err := storage.ReadValidated(file, imaging.MaxFileSize, storage.ImageMimeTypes)
	if err != nil {
		return nil, err
	}
	processed, err := s.processor.Process(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	photo := &Photo{
		ID:             uuid.New(),
		PhotographerID: photographerID,
		Title:          strings.TrimSpace(details.Title),
		Category:       strings.TrimSpace(details.Category),
		Description:    strings.TrimSpace(details.Description),
		TakenOn:        sql.NullString{String: details.TakenOn, Valid: details.TakenOn != ""},
		Location:       strings.TrimSpace(details.Location),
		Camera:         strings.TrimSpace(details.Camera),
		Lens:           strings.TrimSpace(details.Lens),
		Settings:       strings.TrimSpace(details.Settings),
		Width:          processed.Display.Width,
		Height:         processed.Display.Height,
		SizeBytes:      int64(len(processed.Display.Data)),
	}
	photo.Key, photo.ThumbKey = imaging.Keys(photographerID.String(), photo.ID.String(), processed.Display.ContentType)

	if err := s.put(ctx, photo.Key, processed.Display); err != nil {
		return nil, err
	}
	if err := s.put(ctx, photo.ThumbKey, processed.Thumbnail); err != nil {
		s.removeObjects(ctx, photo.Key)
		return nil, err
	}
	photo.URL = s.store.URL(photo.Key)
	photo.ThumbURL = s.store.URL(photo.ThumbKey)

	if err := s.repo.Create(ctx, photo); err != nil {
		s.removeObjects(ctx, photo.Key, photo.ThumbKey)
		return nil, err
	}

	logger.FromContext(ctx).Info().
		Str("photographer_id", photographerID.String()).
		Str("photo_id", photo.ID.String()).
		Int("width", photo.Width).
		Int("height", photo.Height).
		Msg("Portfolio photo uploaded")

	return photo, nil
}

// List returns the photographer's portfolio, newest first.
func (s *Service) List(ctx context.Context, photographerID uuid.UUID) ([]*Photo, error) {
	return s.repo.ListByPhotographer(ctx, photographerID)
}

// Delete removes a photo and its stored objects.
func (s *Service) Delete(ctx context.Context, sess *session.Session, photographerID, photoID uuid.UUID) error {
	if err := s.authorize(ctx, sess, photographerID); err != nil {
		return err
	}

	photo, err := s.repo.GetByID(ctx, photoID)
	if err != nil {
		return err
	}
	if photo == nil || photo.PhotographerID != photographerID {
		return ErrPhotoNotFound
	}

	if err := s.repo.Delete(ctx, photoID); err != nil {
		return err
	}
	s.removeObjects(ctx, photo.Key, photo.ThumbKey)
	return nil
}

func (s *Service) authorize(ctx context.Context, sess *session.Session, photographerID uuid.UUID) error {
	if sess.IsGuest() {
		return ErrAuthRequired
	}

	managed, err := s.owners.IsManagedBy(ctx, photographerID, sess.UserID)
	if err != nil {
		if errors.Is(err, photographer.ErrPhotographerNotFound) {
			return ErrPhotographerNotFound
		}
		return err
	}
	if !managed {
		return ErrNotOwner
	}
	return nil
}

func (s *Service) put(ctx context.Context, key string, v imaging.Variant) error {
	if err := s.store.Put(ctx, key, bytes.NewReader(v.Data), int64(len(v.Data)), v.ContentType); err != nil {
		return fmt.Errorf("failed to store %s: %w", key, err)
	}
	return nil
}

// removeObjects deletes keys best-effort. Missing objects are fine.
func (s *Service) removeObjects(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if err := s.store.Delete(ctx, key); err != nil && !storage.IsNotFound(err) {
			logger.FromContext(ctx).Warn().Err(err).Str("key", key).Msg("Failed to delete portfolio object")
		}
	}
}
