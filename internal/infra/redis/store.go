package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces the widget's keys inside a shared Redis.
const DefaultPrefix = "quiz:"

// Store is a Redis-backed implementation of app.KeyValueStore.
// Keys are stored as plain strings under prefix+key with no expiry:
// the high score must outlive every session.
type Store struct {
	client *redis.Client
	prefix string
}

func NewStore(client *redis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{client: client, prefix: prefix}
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, s.key(key), value, 0).Err()
}

// Ping checks connectivity at startup.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) key(key string) string {
	return s.prefix + key
}
