package session

import (
	"context"
	"time"

	"github.com/duccv/bank-web/pkg/cache"
)

// MemoryStore keeps sessions in a bounded LRU cache. Sessions are lost on restart.
type MemoryStore struct {
	cache *cache.Bounded
	ttl   time.Duration
}

func NewMemoryStore(capacity int, ttl time.Duration) *MemoryStore {
	return &MemoryStore{cache: cache.New(cache.LRU, capacity, ttl), ttl: ttl}
}

func (m *MemoryStore) Load(_ context.Context, id string) (*Session, error) {
	v, ok := m.cache.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return v.(*Session).clone(), nil
}

func (m *MemoryStore) Save(_ context.Context, id string, s *Session) error {
	m.cache.SetWithTTL(id, s.clone(), m.ttl)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.cache.Delete(id)
	return nil
}

func (m *MemoryStore) Close() {
	m.cache.Stop()
}
