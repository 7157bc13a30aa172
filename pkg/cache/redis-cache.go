package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/duccv/bank-web/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedisClient connects to a single node or a sentinel-managed master and pings it.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (redis.UniversalClient, error) {
	var client redis.UniversalClient

	switch strings.ToUpper(cfg.Type) {
	case "", "NORMAL":
		client = redis.NewClient(&redis.Options{
			Addr:     cfg.Addrs,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
	case "SENTINEL":
		client = redis.NewFailoverClient(&redis.FailoverOptions{
			SentinelAddrs: strings.Fields(cfg.Addrs),
			MasterName:    cfg.MasterName,
			Password:      cfg.Password,
			DB:            cfg.DB,
			ReadTimeout:   100 * time.Millisecond,
		})
	default:
		return nil, fmt.Errorf("invalid redis type %q, must be NORMAL or SENTINEL", cfg.Type)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	zap.L().Info("Connected to Redis", zap.String("addrs", cfg.Addrs))
	return client, nil
}
