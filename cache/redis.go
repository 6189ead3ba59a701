package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/meenmo/zerocurve/curve"
)

// RedisCache stores curves as JSON strings.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects to addr. A zero ttl keeps entries until evicted.
func NewRedisCache(addr, password string, db int, ttl time.Duration) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisCache{client: rdb, ttl: ttl}
}

// NewRedisCacheFromClient wraps an existing client.
func NewRedisCacheFromClient(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisCache) Get(ctx context.Context, key string) (curve.ZeroCurve, bool, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return curve.ZeroCurve{}, false, nil
	}
	if err != nil {
		return curve.ZeroCurve{}, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	var c curve.ZeroCurve
	if err := json.Unmarshal(val, &c); err != nil {
		return curve.ZeroCurve{}, false, fmt.Errorf("decode cached curve %s: %w", key, err)
	}
	return c, true, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, c curve.ZeroCurve) error {
	val, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode curve: %w", err)
	}
	if err := r.client.Set(ctx, key, val, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}
