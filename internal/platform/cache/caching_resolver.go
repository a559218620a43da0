// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"portfolio_backend/internal/feature/enrichment/domain/entity"
	"portfolio_backend/internal/feature/enrichment/usecase"
)

// CachingResolver decorates a ClassificationResolver with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying resolver, so pipeline reruns do not repeat
// profile API or LLM calls for already-seen holdings.
type CachingResolver struct {
	inner     usecase.ClassificationResolver
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.ClassificationResolver = (*CachingResolver)(nil)

// NewCachingResolver decorates a ClassificationResolver with Redis caching.
// If ttl is 0, it defaults to 30 days. If namespace is empty, it uses
// "classifications".
func NewCachingResolver(rdb *redis.Client, ttl time.Duration, inner usecase.ClassificationResolver, namespace string) *CachingResolver {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	if namespace == "" {
		namespace = "classifications"
	}
	return &CachingResolver{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Resolve returns a cached classification when present, otherwise resolves
// through the chain and stores the answer. Cache writes are best effort.
func (c *CachingResolver) Resolve(ctx context.Context, symbol, name, product string) (entity.Classification, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.Resolve(ctx, symbol, name, product)
	}

	key := c.cacheKey(symbol, name)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.Classification
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fall back to the chain
	out, err := c.inner.Resolve(ctx, symbol, name, product)
	if err != nil {
		return entity.Classification{}, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// Invalidate removes the cached classification for a holding, forcing the
// next Resolve to hit the chain again.
func (c *CachingResolver) Invalidate(ctx context.Context, symbol, name string) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, c.cacheKey(symbol, name)).Err()
}

// cacheKey generates the cache key for one holding. The name is part of the
// key because brokers reuse symbols across products.
func (c *CachingResolver) cacheKey(symbol, name string) string {
	return fmt.Sprintf("%s:%s:%s", c.namespace, safe(symbol), safe(name))
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
