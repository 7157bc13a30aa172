package database

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/duccv/bank-web/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type PostgresDB struct {
	config config.PostgresConfig
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgresDB(cfg config.PostgresConfig) *PostgresDB {
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = 30
	}
	return &PostgresDB{
		config: cfg,
		logger: zap.L().With(zap.String("component", "postgres")),
	}
}

func (p *PostgresDB) Connect(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(p.config.ConnectTimeout)*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(p.DSN())
	if err != nil {
		return fmt.Errorf("failed to parse pool config: %w", err)
	}
	p.configurePool(poolConfig)

	p.logger.Info("Connecting to PostgreSQL",
		zap.String("host", p.config.Host),
		zap.Int("port", p.config.Port),
		zap.String("database", p.config.Database))

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return fmt.Errorf("failed to create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("failed to ping: %w", err)
	}

	p.pool = pool
	p.logger.Info("Successfully connected to PostgreSQL")
	return nil
}

// DSN returns the configured connection string, or one built from the discrete fields.
func (p *PostgresDB) DSN() string {
	if p.config.ConnectionString != "" {
		return p.config.ConnectionString
	}

	sslMode := p.config.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.config.Username, p.config.Password),
		Host:     fmt.Sprintf("%s:%d", p.config.Host, p.config.Port),
		Path:     "/" + p.config.Database,
		RawQuery: url.Values{"sslmode": {sslMode}}.Encode(),
	}
	return u.String()
}

func (p *PostgresDB) configurePool(cfg *pgxpool.Config) {
	if p.config.MaxConns > 0 {
		cfg.MaxConns = int32(p.config.MaxConns)
	}
	if p.config.MinConns > 0 {
		cfg.MinConns = int32(p.config.MinConns)
	}
	if p.config.ConnMaxIdleTime > 0 {
		cfg.MaxConnIdleTime = time.Duration(p.config.ConnMaxIdleTime) * time.Minute
	}
	if p.config.ConnMaxLifetime > 0 {
		cfg.MaxConnLifetime = time.Duration(p.config.ConnMaxLifetime) * time.Minute
	}
}

func (p *PostgresDB) Ping(ctx context.Context) error {
	if p.pool == nil {
		return fmt.Errorf("postgres pool not initialized")
	}
	return p.pool.Ping(ctx)
}

// Pool exposes the pgx pool; nil before Connect.
func (p *PostgresDB) Pool() *pgxpool.Pool {
	return p.pool
}

func (p *PostgresDB) GetType() DatabaseType {
	return PostgreSQL
}

func (p *PostgresDB) Close(context.Context) error {
	if p.pool != nil {
		p.pool.Close()
		p.logger.Info("PostgreSQL pool closed")
	}
	return nil
}
