package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Layered reads through memory, then redis, then a loader. Concurrent misses
// for the same key share one loader call.
type Layered struct {
	mem          Cache
	redis        redis.UniversalClient // optional
	memTTL       time.Duration
	redisTTL     time.Duration
	redisTimeout time.Duration
	loadTimeout  time.Duration
	group        singleflight.Group
}

type LayeredOption func(*Layered)

func WithRedis(client redis.UniversalClient, ttl time.Duration) LayeredOption {
	return func(l *Layered) {
		l.redis = client
		l.redisTTL = ttl
	}
}

func WithTimeouts(redisTimeout, loadTimeout time.Duration) LayeredOption {
	return func(l *Layered) {
		l.redisTimeout = redisTimeout
		l.loadTimeout = loadTimeout
	}
}

func NewLayered(mem Cache, memTTL time.Duration, opts ...LayeredOption) *Layered {
	l := &Layered{
		mem:          mem,
		memTTL:       memTTL,
		redisTimeout: 50 * time.Millisecond,
		loadTimeout:  5 * time.Second,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Invalidate drops key from every layer.
func (l *Layered) Invalidate(ctx context.Context, key string) {
	l.mem.Delete(key)
	if l.redis != nil {
		if err := l.redis.Del(ctx, key).Err(); err != nil {
			zap.L().Warn("Failed to invalidate redis key", zap.String("key", key), zap.Error(err))
		}
	}
}

// GetOrLoad returns the cached T for key or calls load and fills every layer.
// Values travel through redis as JSON, so T must round-trip through encoding/json.
func GetOrLoad[T any](ctx context.Context, l *Layered, key string, load func(ctx context.Context) (T, error)) (T, error) {
	if v, ok := l.mem.Get(key); ok {
		if t, ok := v.(T); ok {
			return t, nil
		}
	}

	v, err, _ := l.group.Do(key, func() (any, error) {
		if v, ok := l.mem.Get(key); ok {
			if t, ok := v.(T); ok {
				return t, nil
			}
		}

		if l.redis != nil {
			redisCtx, cancel := context.WithTimeout(ctx, l.redisTimeout)
			raw, err := l.redis.Get(redisCtx, key).Bytes()
			cancel()
			if err == nil {
				var t T
				if err := json.Unmarshal(raw, &t); err == nil {
					l.mem.SetWithTTL(key, t, l.memTTL)
					return t, nil
				}
			} else if err != redis.Nil {
				zap.L().Debug("Redis layer unavailable", zap.String("key", key), zap.Error(err))
			}
		}

		loadCtx, cancel := context.WithTimeout(ctx, l.loadTimeout)
		defer cancel()
		t, err := load(loadCtx)
		if err != nil {
			return nil, err
		}

		l.mem.SetWithTTL(key, t, l.memTTL)
		if l.redis != nil {
			if data, err := json.Marshal(t); err == nil {
				l.redis.Set(ctx, key, data, l.redisTTL)
			}
		}
		return t, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
