package cache

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"skill-exchange/internal/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const verdictPrefix = "skillmatch:verdict:"

var errUnavailable = errors.New("redis unavailable")

// Redis is a shared verdict store for the compatibility oracle. When the
// server cannot be reached at startup every call becomes a no-op miss.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger

	warnedUnavailable atomic.Bool
}

func NewRedis(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) *Redis {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Redis{ttl: cfg.TTL, logger: logger}
	if !cfg.Enabled {
		return r
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       0,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unavailable, bypassing verdict cache", zap.Error(err))
		_ = client.Close()
		return r
	}

	r.client = client
	return r
}

func (r *Redis) isUnavailable() bool {
	return r == nil || r.client == nil
}

func (r *Redis) warnUnavailableOnce(err error) {
	if r == nil || r.logger == nil {
		return
	}
	if r.warnedUnavailable.CompareAndSwap(false, true) {
		r.logger.Warn("redis call failed, verdict cache degraded", zap.Error(err))
	}
}

func (r *Redis) Available() bool {
	return !r.isUnavailable()
}

func (r *Redis) Ping(ctx context.Context) error {
	if r.isUnavailable() {
		return errUnavailable
	}
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	if r.isUnavailable() {
		return nil
	}
	return r.client.Close()
}

func (r *Redis) GetVerdict(ctx context.Context, key string) (bool, bool, error) {
	if r.isUnavailable() {
		return false, false, nil
	}
	raw, err := r.client.Get(ctx, verdictPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, false, nil
		}
		r.warnUnavailableOnce(err)
		return false, false, err
	}
	switch raw {
	case "1":
		return true, true, nil
	case "0":
		return false, true, nil
	}
	return false, false, nil
}

func (r *Redis) SetVerdict(ctx context.Context, key string, verdict bool) error {
	if r.isUnavailable() {
		return nil
	}
	value := "0"
	if verdict {
		value = "1"
	}
	if err := r.client.Set(ctx, verdictPrefix+key, value, r.ttl).Err(); err != nil {
		r.warnUnavailableOnce(err)
		return err
	}
	return nil
}
