package database

import (
	"context"
	"fmt"
	"time"

	"github.com/duccv/bank-web/config"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.uber.org/zap"
)

type MongoDB struct {
	config config.MongoConfig
	client *mongo.Client
	db     *mongo.Database
	logger *zap.Logger
}

func NewMongoDB(cfg config.MongoConfig) *MongoDB {
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = 30
	}
	return &MongoDB{
		config: cfg,
		logger: zap.L().With(zap.String("component", "mongo")),
	}
}

// ClientOptions translates the configuration into driver options.
func (m *MongoDB) ClientOptions() *options.ClientOptions {
	opts := options.Client().
		ApplyURI(m.config.URI).
		SetConnectTimeout(time.Duration(m.config.ConnectTimeout) * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetRetryReads(true).
		SetRetryWrites(true)

	if m.config.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(uint64(m.config.MaxPoolSize))
	}
	if m.config.MinPoolSize > 0 {
		opts.SetMinPoolSize(uint64(m.config.MinPoolSize))
	}
	if m.config.Username != "" {
		opts.SetAuth(options.Credential{
			AuthSource: m.config.AuthSource,
			Username:   m.config.Username,
			Password:   m.config.Password,
		})
	}
	return opts
}

func (m *MongoDB) Connect(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(m.config.ConnectTimeout)*time.Second)
	defer cancel()

	m.logger.Info("Connecting to MongoDB", zap.String("database", m.config.Database))

	client, err := mongo.Connect(m.ClientOptions())
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("failed to ping: %w", err)
	}

	m.client = client
	m.db = client.Database(m.config.Database)
	m.logger.Info("Successfully connected to MongoDB")
	return nil
}

func (m *MongoDB) Ping(ctx context.Context) error {
	if m.client == nil {
		return fmt.Errorf("mongo client not initialized")
	}
	return m.client.Ping(ctx, readpref.Primary())
}

// Database exposes the configured database; nil before Connect.
func (m *MongoDB) Database() *mongo.Database {
	return m.db
}

func (m *MongoDB) GetType() DatabaseType {
	return MongoDBNoSQL
}

func (m *MongoDB) Close(ctx context.Context) error {
	if m.client == nil {
		return nil
	}
	if err := m.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect: %w", err)
	}
	m.logger.Info("MongoDB connection closed")
	return nil
}
