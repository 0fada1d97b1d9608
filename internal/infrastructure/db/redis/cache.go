package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const flushScanCount = 500

// Cache implements ports.Cache on Redis. Every key lives under
// cache:<namespace>:, which lets Flush drop one entity type without touching
// the others.
type Cache struct {
	client *redis.Client
	prefix string
}

// NewCache creates a Cache for one namespace, e.g. "product".
func NewCache(client *redis.Client, namespace string) *Cache {
	return &Cache{client: client, prefix: fmt.Sprintf("cache:%s:", namespace)}
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get: %w", err)
	}
	return v, true, nil
}

func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.key(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.key(key)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// Flush unlinks every key of the namespace. Keys written concurrently with
// the scan may survive; they still expire with their TTL.
func (c *Cache) Flush(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, c.prefix+"*", flushScanCount).Iterator()
	batch := make([]string, 0, flushScanCount)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == flushScanCount {
			if err := c.client.Unlink(ctx, batch...).Err(); err != nil {
				return fmt.Errorf("cache flush: %w", err)
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("cache flush: scan: %w", err)
	}
	if len(batch) > 0 {
		if err := c.client.Unlink(ctx, batch...).Err(); err != nil {
			return fmt.Errorf("cache flush: %w", err)
		}
	}
	return nil
}

func (c *Cache) key(k string) string {
	return c.prefix + k
}
