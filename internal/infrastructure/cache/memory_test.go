package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestMemory_SetGetExpire(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewMemory(clock.Now)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 5*time.Minute))

	v, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), v)

	clock.Advance(5*time.Minute - time.Second)
	_, ok, _ = c.Get(ctx, "k")
	assert.True(t, ok, "entry must be live inside the TTL")

	clock.Advance(time.Second)
	_, ok, _ = c.Get(ctx, "k")
	assert.False(t, ok, "entry must expire at the TTL")
	assert.Equal(t, 0, c.Len())
}

func TestMemory_ReturnsCopies(t *testing.T) {
	c := NewMemory(nil)
	ctx := context.Background()

	src := []byte("abc")
	require.NoError(t, c.Set(ctx, "k", src, time.Minute))
	src[0] = 'z'

	v, _, _ := c.Get(ctx, "k")
	assert.Equal(t, "abc", string(v))
	v[1] = 'z'

	again, _, _ := c.Get(ctx, "k")
	assert.Equal(t, "abc", string(again))
}

func TestMemory_FlushAndDelete(t *testing.T) {
	c := NewMemory(nil)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		require.NoError(t, c.Set(ctx, fmt.Sprintf("k%d", i), []byte("v"), time.Minute))
	}

	require.NoError(t, c.Delete(ctx, "k0"))
	assert.Equal(t, 4, c.Len())

	require.NoError(t, c.Flush(ctx))
	assert.Equal(t, 0, c.Len())
	_, ok, _ := c.Get(ctx, "k1")
	assert.False(t, ok)
}

func TestMemory_Sweep(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	c := NewMemory(clock.Now)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "short", []byte("1"), time.Second))
	require.NoError(t, c.Set(ctx, "long", []byte("2"), time.Hour))
	clock.Advance(time.Minute)

	assert.Equal(t, 1, c.Sweep())
	assert.Equal(t, 1, c.Len())
}

func TestMemory_ConcurrentAccess(t *testing.T) {
	c := NewMemory(nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("k%d", i%10)
				_ = c.Set(ctx, key, []byte{byte(g)}, time.Minute)
				_, _, _ = c.Get(ctx, key)
				if i%50 == 0 {
					_ = c.Flush(ctx)
				}
			}
		}(g)
	}
	wg.Wait()
	assert.LessOrEqual(t, c.Len(), 10)
}
