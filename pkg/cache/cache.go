// Package cache provides bounded in-memory caches with LRU or FIFO eviction
// and per-entry expiry, plus a memory → redis → loader read-through helper.
//
// The in-memory caches back the memory session store and the admin role
// lookups; the layered helper fronts slow backend calls.
package cache

import (
	"time"

	"github.com/duccv/bank-web/config"
)

// Cache is implemented by every in-memory cache in this package.
type Cache interface {
	// Get returns the value for key. Expired entries are reported missing.
	Get(key string) (any, bool)

	// Set stores value with the cache's default TTL.
	Set(key string, value any)

	// SetWithTTL stores value for ttl. A non-positive ttl never expires.
	SetWithTTL(key string, value any, ttl time.Duration)

	Delete(key string)

	// Size counts entries, including expired ones not yet swept.
	Size() int

	MaxSize() int

	Clear()

	// Stop ends the background sweeper. It is safe to call more than once.
	Stop()
}

// Policy selects which entry is evicted when a cache is full.
type Policy int

const (
	// LRU evicts the least recently read or written entry.
	LRU Policy = iota
	// FIFO evicts the oldest inserted entry; reads do not reorder.
	FIFO
)

// ParsePolicy maps the configuration value to a Policy, defaulting to LRU.
func ParsePolicy(s string) Policy {
	if s == "FIFO" {
		return FIFO
	}
	return LRU
}

// NewCache builds a cache from configuration.
func NewCache(cfg config.CacheConfig) Cache {
	return New(ParsePolicy(cfg.Type), cfg.Capacity, time.Duration(cfg.DefaultTTL)*time.Second)
}
