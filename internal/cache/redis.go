// Package cache provides a small redis-backed cache used for the
// analytics read model. The cache is best effort: every method degrades
// to a miss when redis is unreachable, so the API keeps working without
// a cache server.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/campustrack/campustrack/internal/pkg/logger"
)

// Redis wraps a redis client.
type Redis struct {
	Client *redis.Client
	ttl    time.Duration
}

// NewRedis connects to redis with short timeouts.
func NewRedis(addr string, ttl time.Duration) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  1 * time.Second,
		WriteTimeout: 1 * time.Second,
	})
	return &Redis{Client: client, ttl: ttl}
}

// Healthy verifies redis connectivity.
func (r *Redis) Healthy(ctx context.Context) bool {
	if r == nil || r.Client == nil {
		return false
	}
	return r.Client.Ping(ctx).Err() == nil
}

// GetJSON loads key into out. Returns false on a miss, a redis failure
// or a decode failure.
func (r *Redis) GetJSON(ctx context.Context, key string, out interface{}) bool {
	if r == nil || r.Client == nil {
		return false
	}
	raw, err := r.Client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn().Err(err).Str("key", key).Msg("Cache read failed")
		}
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("Cache entry corrupt")
		return false
	}
	return true
}

// SetJSON stores value under key with the configured TTL. Failures are
// logged and swallowed.
func (r *Redis) SetJSON(ctx context.Context, key string, value interface{}) {
	if r == nil || r.Client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("Cache encode failed")
		return
	}
	if err := r.Client.Set(ctx, key, raw, r.ttl).Err(); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("Cache write failed")
	}
}

// Invalidate drops the given keys.
func (r *Redis) Invalidate(ctx context.Context, keys ...string) {
	if r == nil || r.Client == nil || len(keys) == 0 {
		return
	}
	if err := r.Client.Del(ctx, keys...).Err(); err != nil {
		logger.Warn().Err(err).Msg("Cache invalidation failed")
	}
}
