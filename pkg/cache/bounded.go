package cache

import (
	"container/list"
	"sync"
	"time"

	"go.uber.org/zap"
)

const sweepInterval = 3 * time.Second

type entry struct {
	key     string
	value   any
	expires time.Time // zero means no expiry
}

func (e *entry) expired(now time.Time) bool {
	return !e.expires.IsZero() && now.After(e.expires)
}

// Bounded is a thread-safe cache holding at most maxSize entries.
// The front of order is always the next eviction candidate.
type Bounded struct {
	policy     Policy
	maxSize    int
	defaultTTL time.Duration

	mu    sync.Mutex
	items map[string]*list.Element
	order *list.List

	stopOnce sync.Once
	stop     chan struct{}
}

// New starts a cache with its background sweeper. A maxSize <= 0 means unbounded.
func New(policy Policy, maxSize int, defaultTTL time.Duration) *Bounded {
	c := &Bounded{
		policy:     policy,
		maxSize:    maxSize,
		defaultTTL: defaultTTL,
		items:      make(map[string]*list.Element),
		order:      list.New(),
		stop:       make(chan struct{}),
	}
	go c.sweep()
	return c
}

func (c *Bounded) sweep() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := c.removeExpired(time.Now()); n > 0 {
				zap.L().Debug("Swept expired cache entries", zap.Int("count", n))
			}
		case <-c.stop:
			return
		}
	}
}

func (c *Bounded) removeExpired(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for e := c.order.Front(); e != nil; {
		next := e.Next()
		if ent := e.Value.(*entry); ent.expired(now) {
			c.order.Remove(e)
			delete(c.items, ent.key)
			removed++
		}
		e = next
	}
	return removed
}

func (c *Bounded) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
}

func (c *Bounded) Set(key string, value any) {
	c.SetWithTTL(key, value, c.defaultTTL)
}

func (c *Bounded) SetWithTTL(key string, value any, ttl time.Duration) {
	var expires time.Time
	if ttl > 0 {
		expires = time.Now().Add(ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		ent := el.Value.(*entry)
		ent.value = value
		ent.expires = expires
		if c.policy == LRU {
			c.order.MoveToBack(el)
		}
		return
	}

	if c.maxSize > 0 && c.order.Len() >= c.maxSize {
		if oldest := c.order.Front(); oldest != nil {
			ent := oldest.Value.(*entry)
			c.order.Remove(oldest)
			delete(c.items, ent.key)
			zap.L().Debug("Cache evicted entry", zap.String("key", ent.key))
		}
	}

	c.items[key] = c.order.PushBack(&entry{key: key, value: value, expires: expires})
}

func (c *Bounded) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		return nil, false
	}
	ent := el.Value.(*entry)
	if ent.expired(time.Now()) {
		c.order.Remove(el)
		delete(c.items, key)
		return nil, false
	}
	if c.policy == LRU {
		c.order.MoveToBack(el)
	}
	return ent.value, true
}

func (c *Bounded) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.order.Remove(el)
		delete(c.items, key)
	}
}

func (c *Bounded) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *Bounded) MaxSize() int {
	return c.maxSize
}

func (c *Bounded) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	c.items = make(map[string]*list.Element)
}

// Keys lists live keys in eviction order, next victim first.
func (c *Bounded) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	keys := make([]string, 0, c.order.Len())
	for e := c.order.Front(); e != nil; e = e.Next() {
		if ent := e.Value.(*entry); !ent.expired(now) {
			keys = append(keys, ent.key)
		}
	}
	return keys
}
