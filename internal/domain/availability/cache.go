package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const cacheKeyPrefix = "availability:"

// WeekCache caches open slots per photographer and week in Redis.
// A nil *WeekCache, or one without a client, never hits and never fails.
type WeekCache struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewWeekCache creates the cache; client may be nil.
func NewWeekCache(client *redis.Client, ttl time.Duration) *WeekCache {
	return &WeekCache{redis: client, ttl: ttl}
}

func cacheKey(photographerID uuid.UUID, week Week) string {
	return fmt.Sprintf("%s%s:%s", cacheKeyPrefix, photographerID, week.Start.Format(DateLayout))
}

func (c *WeekCache) enabled() bool {
	return c != nil && c.redis != nil && c.ttl > 0
}

// Get returns the cached slots and whether there was a hit.
func (c *WeekCache) Get(ctx context.Context, photographerID uuid.UUID, week Week) ([]*Slot, bool) {
	if !c.enabled() {
		return nil, false
	}

	raw, err := c.redis.Get(ctx, cacheKey(photographerID, week)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Msg("Availability cache read failed")
		}
		return nil, false
	}

	var slots []*Slot
	if err := json.Unmarshal(raw, &slots); err != nil {
		log.Warn().Err(err).Msg("Availability cache entry corrupt")
		return nil, false
	}
	return slots, true
}

// Set stores slots for the week.
func (c *WeekCache) Set(ctx context.Context, photographerID uuid.UUID, week Week, slots []*Slot) {
	if !c.enabled() {
		return
	}

	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, cacheKey(photographerID, week), raw, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Msg("Availability cache write failed")
	}
}

// Invalidate drops the cached week containing date.
func (c *WeekCache) Invalidate(ctx context.Context, photographerID uuid.UUID, date time.Time) {
	if !c.enabled() {
		return
	}
	if err := c.redis.Del(ctx, cacheKey(photographerID, WeekOf(date))).Err(); err != nil {
		log.Warn().Err(err).Msg("Availability cache invalidation failed")
	}
}
