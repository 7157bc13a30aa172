// Package server assembles the bank-web BFF: session store, backend clients,
// middleware chain and HTTP views.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/duccv/bank-web/config"
	"github.com/duccv/bank-web/internal/auth"
	"github.com/duccv/bank-web/internal/backend"
	"github.com/duccv/bank-web/internal/handler"
	"github.com/duccv/bank-web/internal/middleware"
	"github.com/duccv/bank-web/internal/session"
	"github.com/duccv/bank-web/pkg/cache"
	"github.com/duccv/bank-web/pkg/metrics"
	httpserver "github.com/duccv/bank-web/pkg/server/http"
	"go.uber.org/zap"
)

type App struct {
	HTTP    *httpserver.Server
	closers []func(context.Context) error
}

// Options tweak what New builds; tests use them to avoid real backends.
type Options struct {
	Store     session.Store
	Transport http.RoundTripper
}

// New wires every component from env.
func New(ctx context.Context, env *config.Env, o Options) (*App, error) {
	app := &App{}

	store := o.Store
	if store == nil {
		s, closeStore, err := session.NewStore(ctx, env)
		if err != nil {
			return nil, fmt.Errorf("session store: %w", err)
		}
		store = s
		app.closers = append(app.closers, closeStore)
	}

	roles, err := app.roleCache(ctx, env)
	if err != nil {
		app.Close(ctx)
		return nil, err
	}

	backendTimeout := time.Duration(env.BackendConfig.Timeout) * time.Second
	backends := handler.NewBackends(
		backend.EndpointsFromConfig(env.BackendConfig),
		backendTimeout,
		o.Transport,
		auth.WithRefreshHook(metrics.ObserveRefresh),
		auth.WithRefreshTimeout(backendTimeout),
	)

	mwCfg := middleware.NewMiddlewareConfig(env)
	guard := middleware.NewGuard(mwCfg)
	logging := middleware.NewLoggingMiddleware(mwCfg)
	sessions := middleware.NewSessionMiddleware(store, mwCfg)

	app.HTTP = httpserver.New(env,
		httpserver.Port(env.AppConfig.Port),
		httpserver.Timeout(time.Duration(env.AppConfig.RequestTimeout)*time.Second),
		httpserver.Middleware(middleware.CorrelationIDMiddleware(), logging.RequestLogger()),
	)

	api := app.HTTP.API
	api.Use(sessions.Load())
	handler.New(backends, guard, handler.NewAdminRoles(backends, roles)).RegisterRoutes(api)

	return app, nil
}

// roleCache builds the admin role cache, with a redis level when cache.use_redis is set.
func (a *App) roleCache(ctx context.Context, env *config.Env) (*cache.Layered, error) {
	mem := cache.NewCache(env.CacheConfig)
	a.closers = append(a.closers, func(context.Context) error { mem.Stop(); return nil })

	ttl := time.Duration(env.CacheConfig.DefaultTTL) * time.Second
	if !env.CacheConfig.UseRedis {
		return cache.NewLayered(mem, ttl), nil
	}

	client, err := cache.NewRedisClient(ctx, env.RedisConfig)
	if err != nil {
		return nil, fmt.Errorf("cache redis: %w", err)
	}
	a.closers = append(a.closers, func(context.Context) error { return client.Close() })
	return cache.NewLayered(mem, ttl,
		cache.WithRedis(client, time.Duration(env.CacheConfig.RedisTTL)*time.Second),
	), nil
}

// Close releases the store and cache connections in reverse order.
func (a *App) Close(ctx context.Context) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			zap.L().Warn("Failed to release resource", zap.Error(err))
		}
	}
	a.closers = nil
}

// Run serves until SIGINT/SIGTERM or a listener error, then shuts down gracefully.
func (a *App) Run() error {
	a.HTTP.Start()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	var err error
	select {
	case s := <-interrupt:
		zap.L().Info("Shutting down", zap.String("signal", s.String()))
	case err = <-a.HTTP.Notify():
		if err != nil {
			zap.L().Error("HTTP server stopped", zap.Error(err))
		}
	}

	if serr := a.HTTP.Shutdown(); serr != nil {
		zap.L().Error("Graceful shutdown failed", zap.Error(serr))
	}
	a.Close(context.Background())
	return err
}

// StartServer builds the app from env and serves until shutdown.
func StartServer(env *config.Env) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	app, err := New(ctx, env, Options{})
	cancel()
	if err != nil {
		return err
	}
	return app.Run()
}
