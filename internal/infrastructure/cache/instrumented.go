package cache

import (
	"context"
	"time"

	"github.com/cloudmarket/marketplace-api/internal/core/ports"
)

// Instrumented counts hits, misses and flushes of an entity cache.
type Instrumented struct {
	next   ports.Cache
	entity string
}

func NewInstrumented(next ports.Cache, entity string) *Instrumented {
	return &Instrumented{next: next, entity: entity}
}

func (c *Instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, ok, err := c.next.Get(ctx, key)
	switch {
	case err != nil:
		cacheRequestsTotal.WithLabelValues(c.entity, "error").Inc()
	case ok:
		cacheRequestsTotal.WithLabelValues(c.entity, "hit").Inc()
	default:
		cacheRequestsTotal.WithLabelValues(c.entity, "miss").Inc()
	}
	return v, ok, err
}

func (c *Instrumented) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.next.Set(ctx, key, value, ttl)
}

func (c *Instrumented) Delete(ctx context.Context, key string) error {
	return c.next.Delete(ctx, key)
}

func (c *Instrumented) Flush(ctx context.Context) error {
	cacheFlushesTotal.WithLabelValues(c.entity).Inc()
	return c.next.Flush(ctx)
}
