package ports

import (
	"context"
	"time"
)

// Cache is a namespaced key/value store with per-entry TTL. Each entity
// service owns one instance; Flush discards every entry in that namespace
// and nothing else.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Flush(ctx context.Context) error
}
