// Package database opens the connection pools the persistent session stores run on.
package database

import (
	"context"
	"fmt"

	"github.com/duccv/bank-web/config"
)

type DatabaseType string

const (
	PostgreSQL   DatabaseType = "postgres"
	MongoDBNoSQL DatabaseType = "mongo"
)

// Database is a connected pool that can be health checked and closed.
type Database interface {
	Connect(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
	GetType() DatabaseType
}

// Open builds and connects the database of the given type from env.
func Open(ctx context.Context, kind DatabaseType, env *config.Env) (Database, error) {
	var db Database
	switch kind {
	case PostgreSQL:
		db = NewPostgresDB(env.PostgresConfig)
	case MongoDBNoSQL:
		db = NewMongoDB(env.MongoConfig)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", kind)
	}

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", kind, err)
	}
	return db, nil
}
