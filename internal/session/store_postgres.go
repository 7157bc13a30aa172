package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	createSessionTable = `CREATE TABLE IF NOT EXISTS web_sessions (
	id         TEXT PRIMARY KEY,
	data       JSONB NOT NULL,
	expires_at TIMESTAMPTZ NOT NULL
)`
	selectSession = `SELECT data FROM web_sessions WHERE id = $1 AND expires_at > now()`
	upsertSession = `INSERT INTO web_sessions (id, data, expires_at) VALUES ($1, $2, $3)
ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, expires_at = EXCLUDED.expires_at`
	deleteSession = `DELETE FROM web_sessions WHERE id = $1`
	purgeSessions = `DELETE FROM web_sessions WHERE expires_at <= now()`
)

// pgxConn is the subset of *pgxpool.Pool the store needs.
type pgxConn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore keeps sessions as JSONB rows with an expiry column.
type PostgresStore struct {
	conn pgxConn
	ttl  time.Duration
	now  func() time.Time
}

func NewPostgresStore(conn pgxConn, ttl time.Duration) *PostgresStore {
	return &PostgresStore{conn: conn, ttl: ttl, now: time.Now}
}

// Migrate creates the sessions table when missing.
func (p *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := p.conn.Exec(ctx, createSessionTable); err != nil {
		return fmt.Errorf("create web_sessions: %w", err)
	}
	return nil
}

func (p *PostgresStore) Load(ctx context.Context, id string) (*Session, error) {
	var raw []byte
	err := p.conn.QueryRow(ctx, selectSession, id).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &s, nil
}

func (p *PostgresStore) Save(ctx context.Context, id string, s *Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if _, err := p.conn.Exec(ctx, upsertSession, id, string(raw), p.now().Add(p.ttl)); err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

func (p *PostgresStore) Delete(ctx context.Context, id string) error {
	if _, err := p.conn.Exec(ctx, deleteSession, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// PurgeExpired removes expired rows and reports how many were dropped.
func (p *PostgresStore) PurgeExpired(ctx context.Context) (int64, error) {
	tag, err := p.conn.Exec(ctx, purgeSessions)
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
