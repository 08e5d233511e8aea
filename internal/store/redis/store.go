package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// DefaultNameTTL is the default TTL for reverse-geocoded names (7 days)
	DefaultNameTTL = 7 * 24 * time.Hour
)

// Store is the Redis key-value backend for the bookmark blob and the
// localized city name cache.
type Store struct {
	client  *redis.Client
	nameTTL time.Duration
}

// NewStore creates a new Redis store. A non-positive nameTTL falls back to
// DefaultNameTTL.
func NewStore(client *redis.Client, nameTTL time.Duration) *Store {
	if nameTTL <= 0 {
		nameTTL = DefaultNameTTL
	}
	return &Store{
		client:  client,
		nameTTL: nameTTL,
	}
}

// ReadRaw returns the raw value stored under key. ok is false when the key
// does not exist.
func (s *Store) ReadRaw(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.Get(ctx, KVKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return val, true, nil
}

// WriteRaw replaces the value under key. Blobs never expire.
func (s *Store) WriteRaw(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, KVKey(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Ping reports whether Redis answers.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.client.Close()
}
