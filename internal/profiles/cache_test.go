package profiles

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"loan-saarthi/internal/common/logger"
	"loan-saarthi/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

type countingStore struct {
	Store
	finds int
	lists int
}

func (c *countingStore) Find(ctx context.Context, sel models.Selector) (models.ApplicantProfile, error) {
	c.finds++
	return c.Store.Find(ctx, sel)
}

func (c *countingStore) List(ctx context.Context) ([]models.ApplicantProfile, error) {
	c.lists++
	return c.Store.List(ctx)
}

func setupMiniRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	return mr, redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

var byPhone = models.Selector{Kind: models.SelectByPhone, Key: "9876543210"}

// ==========================
// Read-through Tests
// ==========================

func TestCachedStore_FindReadsThrough(t *testing.T) {
	mr, rdb := setupMiniRedis(t)
	backend := &countingStore{Store: NewSeededDirectory()}
	store := NewCachedStore(backend, rdb, time.Minute, logger.NewTestLogger(t))
	ctx := context.Background()

	first, err := store.Find(ctx, byPhone)
	require.NoError(t, err)
	second, err := store.Find(ctx, byPhone)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, backend.finds)
	assert.True(t, mr.Exists("saarthi:profile:phone:9876543210"))

	mr.FastForward(2 * time.Minute)
	_, err = store.Find(ctx, byPhone)
	require.NoError(t, err)
	assert.Equal(t, 2, backend.finds)
}

func TestCachedStore_NotFoundIsNotCached(t *testing.T) {
	mr, rdb := setupMiniRedis(t)
	store := NewCachedStore(NewSeededDirectory(), rdb, time.Minute, logger.NewNoOpLogger())

	_, err := store.Find(context.Background(), models.Selector{Kind: models.SelectByPhone, Key: "0000000000"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, mr.Keys())
}

func TestCachedStore_ListReadsThrough(t *testing.T) {
	_, rdb := setupMiniRedis(t)
	backend := &countingStore{Store: NewSeededDirectory()}
	store := NewCachedStore(backend, rdb, time.Minute, logger.NewNoOpLogger())
	ctx := context.Background()

	first, err := store.List(ctx)
	require.NoError(t, err)
	second, err := store.List(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, backend.lists)
}

func TestCachedStore_CorruptEntryFallsBack(t *testing.T) {
	mr, rdb := setupMiniRedis(t)
	backend := &countingStore{Store: NewSeededDirectory()}
	store := NewCachedStore(backend, rdb, time.Minute, logger.NewNoOpLogger())

	require.NoError(t, mr.Set("saarthi:profile:phone:9876543210", "{not json"))

	p, err := store.Find(context.Background(), byPhone)
	require.NoError(t, err)
	assert.Equal(t, "Rohan Sharma", p.DisplayName)
	assert.Equal(t, 1, backend.finds)
}

func TestCachedStore_Invalidate(t *testing.T) {
	mr, rdb := setupMiniRedis(t)
	store := NewCachedStore(NewSeededDirectory(), rdb, time.Minute, logger.NewNoOpLogger())
	ctx := context.Background()

	p, err := store.Find(ctx, byPhone)
	require.NoError(t, err)
	_, err = store.List(ctx)
	require.NoError(t, err)

	require.NoError(t, store.Invalidate(ctx, p))
	assert.Empty(t, mr.Keys())
}

// ==========================
// Redis Failure Tests
// ==========================

func TestCachedStore_RedisDownFallsBackToBackend(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	store := NewCachedStore(NewSeededDirectory(), rdb, 5*time.Minute, logger.NewNoOpLogger())

	key := "saarthi:profile:phone:9876543210"
	mock.ExpectGet(key).SetErr(errors.New("connection refused"))

	expected, _ := NewSeededDirectory().Find(context.Background(), byPhone)
	data, _ := json.Marshal(expected)
	mock.ExpectSet(key, data, 5*time.Minute).SetErr(errors.New("connection refused"))

	p, err := store.Find(context.Background(), byPhone)
	require.NoError(t, err)
	assert.Equal(t, expected, p)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachedStore_CacheHitSkipsBackend(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	backend := &countingStore{Store: NewSeededDirectory()}
	store := NewCachedStore(backend, rdb, 5*time.Minute, logger.NewNoOpLogger())

	cached := models.ApplicantProfile{ID: "1", DisplayName: "Cached Rohan", Phone: "9876543210"}
	data, _ := json.Marshal(cached)
	mock.ExpectGet("saarthi:profile:phone:9876543210").SetVal(string(data))

	p, err := store.Find(context.Background(), byPhone)
	require.NoError(t, err)
	assert.Equal(t, "Cached Rohan", p.DisplayName)
	assert.Equal(t, 0, backend.finds)
	assert.NoError(t, mock.ExpectationsWereMet())
}
