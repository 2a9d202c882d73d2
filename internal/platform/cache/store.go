package cache

import (
	"context"
	"time"
)

//go:generate mockery --name Store --filename store.go

// Store keeps values for limited time.
type Store interface {
	// Get returns value stored under key. Missing or expired key is reported with found set to false.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	// Set stores value under key for ttl. Non-positive ttl keeps the value until deleted.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// NewStore returns RedisStore connected to redisURL or MemoryStore when redisURL is empty.
func NewStore(redisURL string) (Store, error) {
	if redisURL == "" {
		return NewMemoryStore(), nil
	}
	return NewRedisStore(redisURL)
}
