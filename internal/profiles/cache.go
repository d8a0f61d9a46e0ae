package profiles

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"loan-saarthi/internal/common/logger"
	"loan-saarthi/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	cacheKeyPrefix = "saarthi:profile:"
	cacheListKey   = "saarthi:profiles:all"
)

// CachedStore is a read-through Redis cache in front of another Store.
// Cache faults are logged and the backend is consulted instead.
type CachedStore struct {
	backend Store
	redis   redis.Cmdable
	ttl     time.Duration
	logger  logger.Logger
}

func NewCachedStore(backend Store, rdb redis.Cmdable, ttl time.Duration, log logger.Logger) *CachedStore {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &CachedStore{
		backend: backend,
		redis:   rdb,
		ttl:     ttl,
		logger:  log.WithFields(map[string]interface{}{"component": "profile-cache"}),
	}
}

func (c *CachedStore) Find(ctx context.Context, sel models.Selector) (models.ApplicantProfile, error) {
	key := cacheKeyPrefix + sel.String()

	var cached models.ApplicantProfile
	if c.get(ctx, key, &cached) {
		return cached, nil
	}

	p, err := c.backend.Find(ctx, sel)
	if err != nil {
		return models.ApplicantProfile{}, err
	}

	c.set(ctx, key, p)
	return p, nil
}

func (c *CachedStore) List(ctx context.Context) ([]models.ApplicantProfile, error) {
	var cached []models.ApplicantProfile
	if c.get(ctx, cacheListKey, &cached) {
		return cached, nil
	}

	list, err := c.backend.List(ctx)
	if err != nil {
		return nil, err
	}

	c.set(ctx, cacheListKey, list)
	return list, nil
}

// Invalidate drops every cached entry for p.
func (c *CachedStore) Invalidate(ctx context.Context, p models.ApplicantProfile) error {
	keys := []string{
		cacheKeyPrefix + models.Selector{Kind: models.SelectByID, Key: p.ID}.String(),
		cacheKeyPrefix + models.Selector{Kind: models.SelectByPhone, Key: p.Phone}.String(),
		cacheListKey,
	}
	return c.redis.Del(ctx, keys...).Err()
}

func (c *CachedStore) get(ctx context.Context, key string, dest interface{}) bool {
	val, err := c.redis.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("profile cache read failed", map[string]interface{}{"key": key, "error": err})
		}
		return false
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		c.logger.Warn("discarding corrupt cache entry", map[string]interface{}{"key": key, "error": err})
		return false
	}
	return true
}

func (c *CachedStore) set(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("profile cache write failed", map[string]interface{}{"key": key, "error": err})
	}
}
