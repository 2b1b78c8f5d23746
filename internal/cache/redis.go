package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dkim/authapi-backend/config"
	"github.com/dkim/authapi-backend/pkg/logger"
)

// RedisCache implements TokenCache on top of a redis client. The client is
// opened once at boot and closed at shutdown; callers receive it injected.
type RedisCache struct {
	client *redis.Client
}

var _ TokenCache = (*RedisCache)(nil)

// NewRedisCache connects to redis and verifies the connection with a ping.
func NewRedisCache(cfg *config.RedisConfig) (*RedisCache, error) {
	logger.Info("Initializing Redis connection", map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"host": cfg.Host,
			"port": cfg.Port,
		})
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established successfully", nil)
	return &RedisCache{client: client}, nil
}

// Close closes the underlying redis connection
func (c *RedisCache) Close() error {
	logger.Info("Closing Redis connection", nil)
	return c.client.Close()
}

func (c *RedisCache) SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache key: %w", err)
	}
	return nil
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", ErrCacheMiss
	}
	if err != nil {
		return "", fmt.Errorf("failed to get cache key: %w", err)
	}
	return val, nil
}

// GetDel fetches and deletes the key atomically (redis GETDEL). A concurrent
// caller racing for the same key gets ErrCacheMiss.
func (c *RedisCache) GetDel(ctx context.Context, key string) (string, error) {
	val, err := c.client.GetDel(ctx, key).Result()
	if err == redis.Nil {
		return "", ErrCacheMiss
	}
	if err != nil {
		return "", fmt.Errorf("failed to get-delete cache key: %w", err)
	}
	return val, nil
}

func (c *RedisCache) Delete(ctx context.Context, key string) (bool, error) {
	n, err := c.client.Del(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to delete cache key: %w", err)
	}
	return n > 0, nil
}
