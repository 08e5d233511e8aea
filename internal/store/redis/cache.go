package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// SetName caches a localized city name
func (s *Store) SetName(ctx context.Context, key, name string) error {
	if err := s.client.Set(ctx, NameKey(key), name, s.nameTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache name: %w", err)
	}
	return nil
}

// GetName retrieves a cached name, "" on a miss
func (s *Store) GetName(ctx context.Context, key string) (string, error) {
	name, err := s.client.Get(ctx, NameKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil // Cache miss
		}
		return "", fmt.Errorf("failed to get cached name: %w", err)
	}
	return name, nil
}
