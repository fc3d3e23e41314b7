package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "skillhub:flash:"

// RedisStore keeps each session's queue in a Redis list that expires after ttl.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed store
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) key(session string) string {
	return redisKeyPrefix + session
}

// Push implements Store
func (s *RedisStore) Push(ctx context.Context, session string, f Flash) error {
	if session == "" {
		return ErrNoSession
	}
	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("flash marshal error: %w", err)
	}

	key := s.key(session)
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, data)
		pipe.LTrim(ctx, key, -MaxQueued, -1)
		pipe.Expire(ctx, key, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("flash push error: %w", err)
	}
	return nil
}

// Pop implements Store
func (s *RedisStore) Pop(ctx context.Context, session string) ([]Flash, error) {
	if session == "" {
		return nil, nil
	}

	key := s.key(session)
	var items *redis.StringSliceCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		items = pipe.LRange(ctx, key, 0, -1)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("flash pop error: %w", err)
	}

	raw := items.Val()
	flashes := make([]Flash, 0, len(raw))
	for _, item := range raw {
		var f Flash
		if err := json.Unmarshal([]byte(item), &f); err != nil {
			continue
		}
		flashes = append(flashes, f)
	}
	return flashes, nil
}

// Ping checks the connection
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
