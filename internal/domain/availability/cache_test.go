package availability

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekCacheServesHitWithoutDatabase(t *testing.T) {
	client, mock := redismock.NewClientMock()
	defer client.Close()

	photographerID := uuid.New()
	week := WeekOf(date("2026-03-04"))
	cached := []*Slot{slot("2026-03-05", "11:00:00", false)}
	raw, err := json.Marshal(cached)
	require.NoError(t, err)

	mock.ExpectGet(cacheKey(photographerID, week)).SetVal(string(raw))

	repo := &fakeRepo{err: errors.New("must not be called")}
	svc := newTestService(repo)
	svc.cache = NewWeekCache(client, 30*time.Second)

	view, err := svc.ListWeek(context.Background(), photographerID, week.Start)
	require.NoError(t, err)
	assert.Equal(t, 0, repo.calls)
	assert.False(t, view.Degraded)
	require.Len(t, view.Slots, 1)
	assert.Equal(t, cached[0].ID, view.Slots[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWeekCacheMissLoadsAndStores(t *testing.T) {
	client, mock := redismock.NewClientMock()
	defer client.Close()

	photographerID := uuid.New()
	week := WeekOf(date("2026-03-04"))
	loaded := []*Slot{slot("2026-03-06", "09:00:00", false)}
	raw, err := json.Marshal(loaded)
	require.NoError(t, err)

	key := cacheKey(photographerID, week)
	mock.ExpectGet(key).RedisNil()
	mock.ExpectSet(key, raw, 30*time.Second).SetVal("OK")

	repo := &fakeRepo{slots: loaded}
	svc := newTestService(repo)
	svc.cache = NewWeekCache(client, 30*time.Second)

	view, err := svc.ListWeek(context.Background(), photographerID, week.Start)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls)
	assert.Len(t, view.Slots, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWeekCacheReadErrorFallsBackToDatabase(t *testing.T) {
	client, mock := redismock.NewClientMock()
	defer client.Close()

	photographerID := uuid.New()
	week := WeekOf(date("2026-03-04"))
	key := cacheKey(photographerID, week)
	mock.ExpectGet(key).SetErr(errors.New("redis down"))
	mock.ExpectSet(key, []byte("[]"), 30*time.Second).SetErr(errors.New("redis down"))

	repo := &fakeRepo{slots: []*Slot{}}
	svc := newTestService(repo)
	svc.cache = NewWeekCache(client, 30*time.Second)

	view, err := svc.ListWeek(context.Background(), photographerID, week.Start)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls)
	assert.False(t, view.Degraded)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWeekCacheInvalidateDeletesWeekKey(t *testing.T) {
	client, mock := redismock.NewClientMock()
	defer client.Close()

	photographerID := uuid.New()
	cache := NewWeekCache(client, time.Minute)
	mock.ExpectDel("availability:" + photographerID.String() + ":2026-03-02").SetVal(1)

	cache.Invalidate(context.Background(), photographerID, date("2026-03-07"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNilWeekCacheIsInert(t *testing.T) {
	var cache *WeekCache
	_, hit := cache.Get(context.Background(), uuid.New(), WeekOf(date("2026-03-04")))
	assert.False(t, hit)
	cache.Set(context.Background(), uuid.New(), WeekOf(date("2026-03-04")), nil)
	cache.Invalidate(context.Background(), uuid.New(), date("2026-03-04"))
}
