// file: repository/redis_token_store.go

package repository

import (
	"context"
	"errors"
	"fmt"
	"tailorpro/logger"
	"tailorpro/model"
	"time"

	"github.com/redis/go-redis/v9"
)

// IRedisClient is the subset of *redis.Client used by RedisTokenStore.
type IRedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	MSet(ctx context.Context, values ...interface{}) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisTokenStore keeps the session in Redis under "<prefix><key>" so that
// several client processes can share one login.
type RedisTokenStore struct {
	client IRedisClient
	prefix string
}

func NewRedisTokenStore(client IRedisClient, prefix string) *RedisTokenStore {
	return &RedisTokenStore{client: client, prefix: prefix}
}

func (s *RedisTokenStore) key(k string) string {
	return s.prefix + k
}

func (s *RedisTokenStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		logger.Log.WithError(err).WithField("key", key).Error("Failed to read session key from Redis")
		return "", fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, nil
}

func (s *RedisTokenStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		logger.Log.WithError(err).WithField("key", key).Error("Failed to write session key to Redis")
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *RedisTokenStore) SetCredential(ctx context.Context, cred model.Credential) error {
	if cred.RefreshToken == "" {
		if err := s.client.Set(ctx, s.key(KeyAuthToken), cred.AccessToken, 0).Err(); err != nil {
			return fmt.Errorf("redis set credential: %w", err)
		}
		if err := s.client.Del(ctx, s.key(KeyRefreshToken)).Err(); err != nil {
			return fmt.Errorf("redis drop refresh token: %w", err)
		}
		return nil
	}

	err := s.client.MSet(ctx,
		s.key(KeyAuthToken), cred.AccessToken,
		s.key(KeyRefreshToken), cred.RefreshToken,
	).Err()
	if err != nil {
		logger.Log.WithError(err).Error("Failed to write credential to Redis")
		return fmt.Errorf("redis set credential: %w", err)
	}
	return nil
}

func (s *RedisTokenStore) Clear(ctx context.Context) error {
	keys := make([]string, 0, len(SessionKeys))
	for _, k := range SessionKeys {
		keys = append(keys, s.key(k))
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		logger.Log.WithError(err).Error("Failed to clear session keys in Redis")
		return fmt.Errorf("redis clear session: %w", err)
	}
	return nil
}
