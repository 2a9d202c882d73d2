package cache

import (
	"context"
	"sync"
	"time"
)

// Clock provides times.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// MemoryOption is custom configuration of MemoryStore.
type MemoryOption func(s *MemoryStore)

type memoryItem struct {
	value   []byte
	expires time.Time
}

func (i memoryItem) expired(now time.Time) bool {
	return !i.expires.IsZero() && !now.Before(i.expires)
}

// MemoryStore is process local Store. Expired values are dropped lazily on read.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]memoryItem
	clock Clock
}

// NewMemoryStore returns new empty MemoryStore.
func NewMemoryStore(ops ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		items: make(map[string]memoryItem),
		clock: systemClock{},
	}

	for _, op := range ops {
		op(s)
	}

	return s
}

// Get returns copy of value stored under key.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	item, ok := s.items[key]
	s.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}

	if item.expired(s.clock.Now()) {
		s.mu.Lock()
		// value could be replaced since read lock was released.
		if current, ok := s.items[key]; ok && current.expired(s.clock.Now()) {
			delete(s.items, key)
		}
		s.mu.Unlock()
		return nil, false, nil
	}

	return clone(item.value), true, nil
}

// Set stores copy of value under key.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	item := memoryItem{value: clone(value)}
	if ttl > 0 {
		item.expires = s.clock.Now().Add(ttl)
	}

	s.mu.Lock()
	s.items[key] = item
	s.mu.Unlock()

	return nil
}

// Delete removes key. Deleting missing key is not an error.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.items, key)
	s.mu.Unlock()

	return nil
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// WithClock sets MemoryStore's custom Clock.
func WithClock(c Clock) MemoryOption {
	return func(s *MemoryStore) {
		s.clock = c
	}
}
