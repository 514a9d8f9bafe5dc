package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const holdKeyPrefix = "slot:hold:"

// releaseScript deletes the hold only if it still carries our token, so an
// expired hold re-acquired by another request is left alone.
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`

// SlotHold is a short Redis lease taken on a slot while a booking is written.
// Competing submissions for the same slot fail fast instead of queueing on
// the row lock. The database transaction stays the source of truth.
type SlotHold struct {
	redis *redis.Client
	ttl   time.Duration
	token func() string
}

// NewSlotHold creates the hold; with a nil client every Acquire succeeds.
func NewSlotHold(client *redis.Client, ttl time.Duration) *SlotHold {
	return &SlotHold{redis: client, ttl: ttl, token: uuid.NewString}
}

func holdKey(slotID uuid.UUID) string {
	return holdKeyPrefix + slotID.String()
}

// Acquire takes the hold for slotID. The returned release func is always
// non-nil. ErrSlotUnavailable means another submission holds the slot.
// Redis errors are logged and the submission continues without a hold.
func (h *SlotHold) Acquire(ctx context.Context, slotID uuid.UUID) (func(), error) {
	noop := func() {}
	if h == nil || h.redis == nil || h.ttl <= 0 {
		return noop, nil
	}

	key := holdKey(slotID)
	token := h.token()

	ok, err := h.redis.SetNX(ctx, key, token, h.ttl).Result()
	if err != nil {
		log.Warn().Err(err).Str("slot_id", slotID.String()).Msg("Slot hold unavailable, relying on row lock")
		return noop, nil
	}
	if !ok {
		return noop, ErrSlotUnavailable
	}

	return func() {
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		defer cancel()
		if err := h.redis.Eval(releaseCtx, releaseScript, []string{key}, token).Err(); err != nil {
			log.Warn().Err(err).Str("slot_id", slotID.String()).Msg("Failed to release slot hold")
		}
	}, nil
}
