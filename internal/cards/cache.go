package cards

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache keeps the raw catalog payload under a single key with a TTL.
type RedisCache struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisCache returns a cache keyed by the catalog's base URL.
func NewRedisCache(client *redis.Client, baseURL string, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, key: "deckbuilder:catalog:" + baseURL, ttl: ttl}
}

func (r *RedisCache) Get(ctx context.Context) ([]byte, bool, error) {
	b, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (r *RedisCache) Set(ctx context.Context, payload []byte) error {
	return r.client.Set(ctx, r.key, payload, r.ttl).Err()
}
