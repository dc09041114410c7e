package session

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrCacheMiss is returned by TokenCache.Get when no entry exists.
var ErrCacheMiss = errors.New("session cache miss")

// TokenCache stores the hash of each member's active session token.
type TokenCache interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, key string) error
}

type redisTokenCache struct {
	client *redis.Client
}

// NewRedisTokenCache backs a TokenCache with the auth Redis database.
func NewRedisTokenCache(client *redis.Client) TokenCache {
	return &redisTokenCache{client: client}
}

func (r *redisTokenCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisTokenCache) Get(ctx context.Context, key string) (string, error) {
	v, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", ErrCacheMiss
	}
	return v, err
}

func (r *redisTokenCache) Del(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}
