// Package redis is the read-through cache for the public catalog lists.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ohmfruit/fruitstore-service/config"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const scanBatch = 100

type Cache interface {
	// Get decodes the cached value into dest and reports whether it was found.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	// InvalidatePrefix removes every key starting with prefix.
	InvalidatePrefix(ctx context.Context, prefix string) error
	Close() error
}

type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// CreateCache connects to the configured Redis, or returns a cache that never
// hits when no address is configured.
func CreateCache(ctx context.Context, conf config.RedisConfig) (Cache, error) {
	if conf.Address == "" {
		log.Warn().Str("component", "CreateCache").Msg("REDIS_ADDRESS is empty, catalog cache is disabled")
		return NoopCache{}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     conf.Address,
		Password: conf.Password,
		DB:       conf.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	return &RedisCache{rdb: rdb, ttl: conf.TTL}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("component", "Cache.Get").Str("key", key).Msg("dropping undecodable entry")
		_ = c.rdb.Del(ctx, key).Err()
		return false, nil
	}

	return true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.rdb.Set(ctx, key, raw, c.ttl).Err()
}

func (c *RedisCache) InvalidatePrefix(ctx context.Context, prefix string) error {
	iter := c.rdb.Scan(ctx, 0, prefix+"*", scanBatch).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}

	if len(keys) == 0 {
		return nil
	}

	return c.rdb.Del(ctx, keys...).Err()
}

func (c *RedisCache) Close() error {
	return c.rdb.Close()
}

type NoopCache struct{}

func (NoopCache) Get(context.Context, string, interface{}) (bool, error) { return false, nil }

func (NoopCache) Set(context.Context, string, interface{}) error { return nil }

func (NoopCache) InvalidatePrefix(context.Context, string) error { return nil }

func (NoopCache) Close() error { return nil }
