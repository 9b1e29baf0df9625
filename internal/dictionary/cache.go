package dictionary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("cache miss")

const DefaultCacheTTL = 24 * time.Hour

// Cache stores raw dictionary responses by word.
type Cache interface {
	Get(ctx context.Context, word string) ([]byte, error)
	Set(ctx context.Context, word string, body []byte) error
}

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) Cache {
	return &redisCache{
		client: client,
		ttl:    ttl,
	}
}

// ConnectRedis opens a client for addr and checks it answers.
func ConnectRedis(ctx context.Context, addr string) (*redis.Client, error) {
	conn := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if err := conn.Ping(ctx).Err(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return conn, nil
}

func (that *redisCache) Get(ctx context.Context, word string) ([]byte, error) {
	body, err := that.client.Get(ctx, cacheKey(word)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %q from cache: %w", word, err)
	}

	return body, nil
}

func (that *redisCache) Set(ctx context.Context, word string, body []byte) error {
	if err := that.client.Set(ctx, cacheKey(word), body, that.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache %q: %w", word, err)
	}

	return nil
}

func cacheKey(word string) string {
	return "dictionary:" + word
}
