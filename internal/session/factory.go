package session

import (
	"context"
	"fmt"
	"time"

	"github.com/duccv/bank-web/config"
	"github.com/duccv/bank-web/pkg/cache"
	"github.com/duccv/bank-web/pkg/database"
	"go.uber.org/zap"
)

// NewStore builds the session store selected by session.store. The returned
// closer releases whatever connection the store holds.
func NewStore(ctx context.Context, env *config.Env) (Store, func(context.Context) error, error) {
	cfg := env.SessionConfig
	ttl := time.Duration(cfg.TTL) * time.Second
	logger := zap.L().With(zap.String("component", "session"), zap.String("store", cfg.Store))

	switch cfg.Store {
	case "", "memory":
		s := NewMemoryStore(cfg.Capacity, ttl)
		logger.Info("Using in-memory session store", zap.Int("capacity", cfg.Capacity))
		return s, func(context.Context) error { s.Close(); return nil }, nil

	case "redis":
		client, err := cache.NewRedisClient(ctx, env.RedisConfig)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Using redis session store", zap.String("prefix", cfg.KeyPrefix))
		return NewRedisStore(client, cfg.KeyPrefix, ttl), func(context.Context) error { return client.Close() }, nil

	case "postgres":
		db := database.NewPostgresDB(env.PostgresConfig)
		if err := db.Connect(ctx); err != nil {
			return nil, nil, err
		}
		s := NewPostgresStore(db.Pool(), ttl)
		if err := s.Migrate(ctx); err != nil {
			_ = db.Close(ctx)
			return nil, nil, err
		}
		logger.Info("Using postgres session store")
		stop := purgeEvery(s, 10*time.Minute, logger)
		return s, func(ctx context.Context) error { stop(); return db.Close(ctx) }, nil

	case "mongo":
		db := database.NewMongoDB(env.MongoConfig)
		if err := db.Connect(ctx); err != nil {
			return nil, nil, err
		}
		s := NewMongoStore(db.Database().Collection(env.MongoConfig.Collection), ttl)
		if err := s.EnsureIndexes(ctx); err != nil {
			_ = db.Close(ctx)
			return nil, nil, err
		}
		logger.Info("Using mongo session store", zap.String("collection", env.MongoConfig.Collection))
		return s, db.Close, nil
	}
	return nil, nil, fmt.Errorf("unsupported session store %q", cfg.Store)
}

// purgeEvery deletes expired postgres sessions until the returned func is called.
func purgeEvery(s *PostgresStore, interval time.Duration, logger *zap.Logger) func() {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := s.PurgeExpired(ctx)
				if err != nil {
					logger.Warn("Failed to purge expired sessions", zap.Error(err))
					continue
				}
				if n > 0 {
					logger.Debug("Purged expired sessions", zap.Int64("count", n))
				}
			}
		}
	}()
	return cancel
}
