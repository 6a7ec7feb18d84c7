package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"macro-parity/internal/model"

	"github.com/go-redis/redis/v8"
)

const DefaultRedisPrefix = "macro-parity:series:"

// RedisCache shares fetched series between processes (CLI runs, API replicas).
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, prefix string, ttl time.Duration) *RedisCache {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisCache{client: client, prefix: prefix, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]model.Observation, bool, error) {
	raw, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	var obs []model.Observation
	if err := json.Unmarshal(raw, &obs); err != nil {
		return nil, false, fmt.Errorf("decode cached series %s: %w", key, err)
	}
	return obs, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, obs []model.Observation) error {
	payload, err := json.Marshal(obs)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, c.prefix+key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
