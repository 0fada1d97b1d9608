package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/cloudmarket/marketplace-api/internal/core/ports"
)

// DefaultCacheTTL matches the freshness window of the entity caches.
const DefaultCacheTTL = 5 * time.Minute

// readThrough wraps one entity type's cache. Values are stored JSON encoded so
// that callers never share mutable state with the cache. Cache failures are
// logged and otherwise ignored: the cache only accelerates reads.
type readThrough[T any] struct {
	cache  ports.Cache
	ttl    time.Duration
	entity string
	log    zerolog.Logger
}

func newReadThrough[T any](cache ports.Cache, ttl time.Duration, entity string, log zerolog.Logger) readThrough[T] {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return readThrough[T]{cache: cache, ttl: ttl, entity: entity, log: log}
}

// get returns the cached value under key or, on a miss, calls load and stores
// its result before returning it. Errors from load are never cached.
func (r readThrough[T]) get(ctx context.Context, key string, load func(context.Context) (T, error)) (T, error) {
	if v, ok := r.lookup(ctx, key); ok {
		return v, nil
	}

	v, err := load(ctx)
	if err != nil {
		return v, err
	}
	r.put(ctx, key, v)
	return v, nil
}

func (r readThrough[T]) lookup(ctx context.Context, key string) (T, bool) {
	var zero T
	raw, ok, err := r.cache.Get(ctx, key)
	if err != nil {
		r.log.Warn().Err(err).Str("entity", r.entity).Str("key", key).Msg("cache get failed")
		return zero, false
	}
	if !ok {
		return zero, false
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		r.log.Warn().Err(err).Str("entity", r.entity).Str("key", key).Msg("cache entry undecodable")
		return zero, false
	}
	return v, true
}

// put replaces a single slot.
func (r readThrough[T]) put(ctx context.Context, key string, v T) {
	raw, err := json.Marshal(v)
	if err != nil {
		r.log.Warn().Err(err).Str("entity", r.entity).Msg("cache encode failed")
		return
	}
	if err := r.cache.Set(ctx, key, raw, r.ttl); err != nil {
		r.log.Warn().Err(err).Str("entity", r.entity).Str("key", key).Msg("cache set failed")
	}
}

// flush discards every cached entry for the entity type.
func (r readThrough[T]) flush(ctx context.Context) {
	if err := r.cache.Flush(ctx); err != nil {
		r.log.Warn().Err(err).Str("entity", r.entity).Msg("cache flush failed")
	}
}
