package config

import (
	"context"
	"fmt"

	"macro-parity/internal/data"
	"macro-parity/internal/metrics"
	"macro-parity/internal/model"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
)

// NewCache builds the series cache selected by d.Cache. The returned close
// func releases the Redis connection pool and is never nil.
func (d DataConfig) NewCache() (data.SeriesCache, func() error, error) {
	noop := func() error { return nil }
	switch d.Cache {
	case CacheNone:
		return nil, noop, nil
	case CacheRedis:
		client := redis.NewClient(&redis.Options{Addr: d.RedisAddr})
		return data.NewRedisCache(client, data.DefaultRedisPrefix, d.CacheTTL), client.Close, nil
	case CacheMemory, "":
		return data.NewMemoryCache(d.CacheTTL), noop, nil
	default:
		return nil, noop, fmt.Errorf("unsupported data.cache: %q", d.Cache)
	}
}

// NewClient builds an Alpha Vantage client with d's endpoint, pacing and cache.
func (d DataConfig) NewClient(apiKey string, log zerolog.Logger, rec *metrics.Recorder) (*data.AlphaVantageClient, func() error, error) {
	cache, closeFn, err := d.NewCache()
	if err != nil {
		return nil, closeFn, err
	}
	c := data.NewAlphaVantageClient(apiKey, d.BaseURL, log)
	c.Limiter = data.NewLimiter(d.RequestsPerMinute)
	c.Cache = cache
	c.Metrics = rec
	return c, closeFn, nil
}

// LoadIndicators returns the indicator series for a run: from d.Path when the
// source is file, otherwise fetched live with apiKey.
func (d DataConfig) LoadIndicators(ctx context.Context, apiKey string, log zerolog.Logger, rec *metrics.Recorder) ([]model.EconomicIndicator, error) {
	if d.Source == SourceFile {
		f, err := data.LoadIndicatorsJSON(d.Path)
		if err != nil {
			return nil, err
		}
		return f.Indicators, nil
	}

	client, closeFn, err := d.NewClient(apiKey, log, rec)
	if err != nil {
		return nil, err
	}
	defer closeFn()
	return data.FetchIndicators(ctx, client, data.DefaultIndicators(), log)
}
