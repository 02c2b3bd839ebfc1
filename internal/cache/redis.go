//go:generate mockgen -source ./redis.go -destination=./mocks/redis.go -package=mock_cache
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "milkrun:subscription:"

// RedisCommands is the part of the go-redis client the snapshot store uses.
type RedisCommands interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisSubscriptionStore keeps subscription snapshots in Redis so every API
// replica reads the same documents.
type RedisSubscriptionStore struct {
	client RedisCommands
	ttl    time.Duration
}

func NewRedisSubscriptionStore(client RedisCommands, ttl time.Duration) *RedisSubscriptionStore {
	return &RedisSubscriptionStore{client: client, ttl: ttl}
}

func NewRedisClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}
	return client, nil
}

func (s *RedisSubscriptionStore) Get(ctx context.Context, userID string) ([]byte, bool, error) {
	doc, err := s.client.Get(ctx, keyPrefix+userID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read snapshot of %s: %w", userID, err)
	}
	return doc, true, nil
}

func (s *RedisSubscriptionStore) Put(ctx context.Context, userID string, doc []byte) error {
	if err := s.client.Set(ctx, keyPrefix+userID, doc, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write snapshot of %s: %w", userID, err)
	}
	return nil
}

func (s *RedisSubscriptionStore) Delete(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, keyPrefix+userID).Err(); err != nil {
		return fmt.Errorf("failed to delete snapshot of %s: %w", userID, err)
	}
	return nil
}
