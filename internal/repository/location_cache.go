package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/servineo/backend/internal/domain"
	"github.com/servineo/backend/pkg/logger"
)

const (
	fixersCacheKey      = "geo:fixers"
	ubicacionesCacheKey = "geo:ubicaciones"
)

// CachedLocationSource is a read-through Redis cache in front of the fixer
// repository. Proximity search fetches the full candidate set on every
// request; caching the set keeps that from hammering the store. Cache
// failures degrade to direct reads.
type CachedLocationSource struct {
	repo  FixerRepository
	redis *redis.Client
	ttl   time.Duration

	// OnMiss, when set, is called for every read that falls through to the
	// store.
	OnMiss func()
}

func NewCachedLocationSource(repo FixerRepository, rdb *redis.Client, ttl time.Duration) *CachedLocationSource {
	return &CachedLocationSource{repo: repo, redis: rdb, ttl: ttl}
}

func (c *CachedLocationSource) ListFixers(ctx context.Context) ([]domain.Fixer, error) {
	var fixers []domain.Fixer
	if c.cacheGet(ctx, fixersCacheKey, &fixers) {
		return fixers, nil
	}
	c.recordMiss()

	fixers, err := c.repo.ListFixers(ctx)
	if err != nil {
		return nil, err
	}

	c.cacheSet(ctx, fixersCacheKey, fixers)
	return fixers, nil
}

func (c *CachedLocationSource) ListUbicaciones(ctx context.Context) ([]domain.Ubicacion, error) {
	var ubicaciones []domain.Ubicacion
	if c.cacheGet(ctx, ubicacionesCacheKey, &ubicaciones) {
		return ubicaciones, nil
	}
	c.recordMiss()

	ubicaciones, err := c.repo.ListUbicaciones(ctx)
	if err != nil {
		return nil, err
	}

	c.cacheSet(ctx, ubicacionesCacheKey, ubicaciones)
	return ubicaciones, nil
}

// Invalidate drops the cached sets. Called after seed loading.
func (c *CachedLocationSource) Invalidate(ctx context.Context) {
	if err := c.redis.Del(ctx, fixersCacheKey, ubicacionesCacheKey).Err(); err != nil {
		logger.WarnContext(ctx, "Failed to invalidate location cache", "error", err)
	}
}

func (c *CachedLocationSource) recordMiss() {
	if c.OnMiss != nil {
		c.OnMiss()
	}
}

func (c *CachedLocationSource) cacheGet(ctx context.Context, key string, dest any) bool {
	data, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.WarnContext(ctx, "Location cache read failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		logger.WarnContext(ctx, "Location cache decode failed", "key", key, "error", err)
		return false
	}
	return true
}

func (c *CachedLocationSource) cacheSet(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		logger.WarnContext(ctx, "Location cache write failed", "key", key, "error", err)
	}
}
