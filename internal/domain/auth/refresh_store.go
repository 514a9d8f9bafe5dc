package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const refreshKeyPrefix = "refresh:"

// RefreshStore keeps hashed refresh tokens in Redis, keyed by hash and
// holding the owner's user id. Raw tokens are never stored.
type RefreshStore struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewRefreshStore creates the store. Without Redis, Save is a no-op and
// every lookup fails, so refresh is unavailable but sign-in still works.
func NewRefreshStore(client *redis.Client, ttl time.Duration) *RefreshStore {
	return &RefreshStore{redis: client, ttl: ttl}
}

func (s *RefreshStore) Save(ctx context.Context, tokenHash string, userID uuid.UUID) error {
	if s.redis == nil {
		return nil
	}
	return s.redis.Set(ctx, refreshKeyPrefix+tokenHash, userID.String(), s.ttl).Err()
}

// Lookup returns the token owner or ErrInvalidRefreshToken.
func (s *RefreshStore) Lookup(ctx context.Context, tokenHash string) (uuid.UUID, error) {
	if s.redis == nil {
		return uuid.Nil, ErrInvalidRefreshToken
	}
	val, err := s.redis.Get(ctx, refreshKeyPrefix+tokenHash).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, ErrInvalidRefreshToken
		}
		return uuid.Nil, err
	}
	id, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, ErrInvalidRefreshToken
	}
	return id, nil
}

// Take looks the token up and deletes it in one step, so a refresh token
// can be redeemed once.
func (s *RefreshStore) Take(ctx context.Context, tokenHash string) (uuid.UUID, error) {
	if s.redis == nil {
		return uuid.Nil, ErrInvalidRefreshToken
	}
	val, err := s.redis.GetDel(ctx, refreshKeyPrefix+tokenHash).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, ErrInvalidRefreshToken
		}
		return uuid.Nil, err
	}
	id, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, ErrInvalidRefreshToken
	}
	return id, nil
}

func (s *RefreshStore) Delete(ctx context.Context, tokenHash string) error {
	if s.redis == nil {
		return nil
	}
	return s.redis.Del(ctx, refreshKeyPrefix+tokenHash).Err()
}
