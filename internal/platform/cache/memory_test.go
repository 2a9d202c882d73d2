package cache_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/MichalMitros/price-tracker/internal/platform/cache"
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
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestUnitMemoryStore(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)}
	store := cache.NewMemoryStore(cache.WithClock(clock))

	t.Run("missing key", func(t *testing.T) {
		value, found, err := store.Get(ctx, "missing")

		require.NoError(t, err, "shouldn't return any error")
		assert.False(t, found, "shouldn't find missing key")
		assert.Nil(t, value, "shouldn't return value")
	})

	t.Run("value expires after ttl", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "search:galaxy", []byte("listings"), time.Hour))

		clock.Advance(59 * time.Minute)
		value, found, err := store.Get(ctx, "search:galaxy")
		require.NoError(t, err, "shouldn't return any error")
		assert.True(t, found, "should find value before ttl passed")
		assert.Equal(t, []byte("listings"), value, "should return stored value")

		clock.Advance(time.Minute)
		_, found, err = store.Get(ctx, "search:galaxy")
		require.NoError(t, err, "shouldn't return any error")
		assert.False(t, found, "shouldn't find value once ttl passed")
	})

	t.Run("value without ttl never expires", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "forever", []byte("value"), 0))

		clock.Advance(24 * 365 * time.Hour)
		_, found, err := store.Get(ctx, "forever")

		require.NoError(t, err, "shouldn't return any error")
		assert.True(t, found, "should keep value without ttl")
	})

	t.Run("set overrides value and ttl", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "trending", []byte("old"), time.Minute))
		require.NoError(t, store.Set(ctx, "trending", []byte("new"), time.Hour))

		clock.Advance(30 * time.Minute)
		value, found, err := store.Get(ctx, "trending")

		require.NoError(t, err, "shouldn't return any error")
		assert.True(t, found, "should use new ttl")
		assert.Equal(t, []byte("new"), value, "should return new value")
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "deleted", []byte("value"), time.Hour))
		require.NoError(t, store.Delete(ctx, "deleted"))
		require.NoError(t, store.Delete(ctx, "deleted"), "deleting missing key shouldn't fail")

		_, found, err := store.Get(ctx, "deleted")

		require.NoError(t, err, "shouldn't return any error")
		assert.False(t, found, "shouldn't find deleted key")
	})

	t.Run("stored value is copied", func(t *testing.T) {
		value := []byte("value")
		require.NoError(t, store.Set(ctx, "copied", value, time.Hour))
		value[0] = 'X'

		got, _, err := store.Get(ctx, "copied")
		require.NoError(t, err, "shouldn't return any error")
		got[1] = 'X'

		again, _, err := store.Get(ctx, "copied")
		require.NoError(t, err, "shouldn't return any error")
		assert.Equal(t, []byte("value"), again, "shouldn't share memory with callers")
	})
}

func TestUnitMemoryStoreConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryStore()

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", i%5)
			_ = store.Set(ctx, key, []byte(key), time.Minute)
			_, _, _ = store.Get(ctx, key)
			_ = store.Delete(ctx, key)
		}()
	}
	wg.Wait()

	for i := range 5 {
		_, found, err := store.Get(ctx, fmt.Sprintf("key-%d", i))
		require.NoError(t, err, "shouldn't return any error")
		assert.False(t, found, "every key should be deleted")
	}
}

func TestUnitNewStore(t *testing.T) {
	t.Run("memory store without redis url", func(t *testing.T) {
		store, err := cache.NewStore("")

		require.NoError(t, err, "shouldn't return any error")
		assert.IsType(t, &cache.MemoryStore{}, store, "should use memory store")
	})

	t.Run("redis store with redis url", func(t *testing.T) {
		store, err := cache.NewStore("redis://localhost:6379/0")

		require.NoError(t, err, "shouldn't return any error")
		assert.IsType(t, &cache.RedisStore{}, store, "should use redis store")
	})

	t.Run("bad redis url", func(t *testing.T) {
		_, err := cache.NewStore("http://localhost:6379")

		assert.Error(t, err, "should reject url with unknown scheme")
	})
}
