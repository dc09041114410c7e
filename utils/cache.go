package utils

import (
	"context"
	"fmt"
	"sync"
	"time"

	"itufk/config"

	"github.com/go-redis/redis/v8"
)

var (
	authCache     *redis.Client
	authCacheOnce sync.Once
	authCacheErr  error
)

// NewAuthCache connects to the Redis database holding session token hashes.
func NewAuthCache(ctx context.Context) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisAuthDB,
	})

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("auth cache: failed to reach redis at %s: %w", config.AppConfig.RedisAddr, err)
	}
	return client, nil
}

// GetAuthCacheClient returns the shared session cache client, connecting on first use.
func GetAuthCacheClient() (*redis.Client, error) {
	authCacheOnce.Do(func() {
		authCache, authCacheErr = NewAuthCache(context.Background())
	})
	return authCache, authCacheErr
}
