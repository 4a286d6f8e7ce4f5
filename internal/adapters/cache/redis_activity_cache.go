package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"group-trip-planner/internal/domain"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const activityKeyPrefix = "trip-planner:activities:"

// RedisActivityCache stores activity lists as JSON values with a TTL so that
// several API replicas share one cache.
type RedisActivityCache struct {
	rdb *goredis.Client
	ttl time.Duration
}

func NewRedisActivityCache(rdb *goredis.Client, ttl time.Duration) *RedisActivityCache {
	return &RedisActivityCache{rdb: rdb, ttl: ttl}
}

// DialRedis connects to addr and verifies it with a ping.
func DialRedis(ctx context.Context, addr string) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

func (c *RedisActivityCache) Get(ctx context.Context, key string) ([]domain.Activity, bool, error) {
	raw, err := c.rdb.Get(ctx, activityKeyPrefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("activity cache get %q: %w", key, err)
	}

	var acts []domain.Activity
	if err := json.Unmarshal(raw, &acts); err != nil {
		return nil, false, fmt.Errorf("activity cache decode %q: %w", key, err)
	}
	return acts, true, nil
}

func (c *RedisActivityCache) Set(ctx context.Context, key string, activities []domain.Activity) error {
	raw, err := json.Marshal(activities)
	if err != nil {
		return fmt.Errorf("activity cache encode %q: %w", key, err)
	}
	if err := c.rdb.Set(ctx, activityKeyPrefix+key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("activity cache set %q: %w", key, err)
	}
	return nil
}
