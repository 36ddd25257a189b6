package lookupcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "lookup:"

// RedisStore persists cache entries as JSON values with a server-side TTL.
// This is the recommended store when multiple instances share a cache.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore constructs a Redis-backed cache store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) (Entry, error) {
	raw, err := s.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, fmt.Errorf("redis get: %w", err)
	}
	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return Entry{}, fmt.Errorf("decode cache entry: %w", err)
	}
	return entry, nil
}

func (s *RedisStore) Put(ctx context.Context, entry Entry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}
	// The server-side TTL mirrors ValidUntil so Redis reclaims entries even
	// if the sweep never runs against this backend.
	ttl := time.Until(entry.ValidUntil)
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, redisKeyPrefix+entry.Key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) Touch(ctx context.Context, key string) error {
	entry, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	entry.AccessCount++
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}
	// KEEPTTL preserves the remaining validity window.
	if err := s.client.Set(ctx, redisKeyPrefix+key, raw, redis.KeepTTL).Err(); err != nil {
		return fmt.Errorf("redis touch: %w", err)
	}
	return nil
}

// DeleteExpired is a no-op for Redis: the server-side TTL set in Put already
// reclaims expired entries.
func (s *RedisStore) DeleteExpired(context.Context, time.Time) (int, error) {
	return 0, nil
}
