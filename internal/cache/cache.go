// Reelscope - Short-Form Video Analytics and Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscope

// Package cache provides a bounded in-memory response cache with TTL
// expiration and LRU eviction. It is used by the API layer to memoize
// assembled response payloads for hot endpoints (explore, trending,
// suggestions), which are pure functions of the loaded dataset and the
// request parameters.
package cache

import (
	"container/list"
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reelscope/internal/metrics"
)

// entry is a single cached payload. Entries live on the LRU list; the
// list element's Value points back at the entry.
type entry struct {
	key       string
	data      interface{}
	expiresAt time.Time
}

// Cache is a thread-safe in-memory cache with per-entry TTL and a hard
// capacity bound enforced by least-recently-used eviction.
//
// Expired entries are removed lazily on access and swept periodically by
// a background goroutine. All operations are O(1).
type Cache struct {
	mu         sync.Mutex
	name       string
	ttl        time.Duration
	maxEntries int
	entries    map[string]*list.Element
	lru        *list.List // front = most recently used
	done       chan struct{}
	closeOnce  sync.Once
}

// New creates a cache with the given default TTL and capacity.
//
// The name labels the cache in Prometheus metrics (hits, misses,
// evictions, entry count). A maxEntries of zero or less disables the
// capacity bound; TTL expiration still applies. A background sweeper
// removes expired entries every sweepInterval until Close is called.
func New(name string, ttl time.Duration, maxEntries int) *Cache {
	c := &Cache{
		name:       name,
		ttl:        ttl,
		maxEntries: maxEntries,
		entries:    make(map[string]*list.Element),
		lru:        list.New(),
		done:       make(chan struct{}),
	}

	go c.sweepLoop()

	return c
}

const sweepInterval = time.Minute

// Get retrieves a value by key. An expired entry counts as a miss and is
// removed. A hit promotes the entry to most recently used.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		metrics.RecordCacheMiss(c.name)
		return nil, false
	}

	ent := el.Value.(*entry)
	if time.Now().After(ent.expiresAt) {
		c.removeElement(el, "expired")
		metrics.RecordCacheMiss(c.name)
		return nil, false
	}

	c.lru.MoveToFront(el)
	metrics.RecordCacheHit(c.name)
	return ent.data, true
}

// Set stores a value with the cache's default TTL.
func (c *Cache) Set(key string, value interface{}) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a value with a custom TTL, evicting the LRU entry if
// the cache is at capacity.
func (c *Cache) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if el, ok := c.entries[key]; ok {
		ent := el.Value.(*entry)
		ent.data = value
		ent.expiresAt = now.Add(ttl)
		c.lru.MoveToFront(el)
		return
	}

	if c.maxEntries > 0 && c.lru.Len() >= c.maxEntries {
		if oldest := c.lru.Back(); oldest != nil {
			c.removeElement(oldest, "capacity")
		}
	}

	el := c.lru.PushFront(&entry{
		key:       key,
		data:      value,
		expiresAt: now.Add(ttl),
	})
	c.entries[key] = el
	metrics.SetCacheEntries(c.name, len(c.entries))
}

// Delete removes a specific entry. It is a no-op for unknown keys.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		c.removeElement(el, "manual")
	}
}

// Clear removes all entries, typically after the dataset is reloaded.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, el := range c.entries {
		delete(c.entries, key)
		c.lru.Remove(el)
		metrics.RecordCacheEviction(c.name, "clear")
	}
	metrics.SetCacheEntries(c.name, 0)
}

// Len returns the current number of entries, including any that have
// expired but not yet been swept.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Close stops the background sweeper. The cache remains usable.
func (c *Cache) Close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// removeElement deletes an entry and records the eviction. Caller holds
// the lock.
func (c *Cache) removeElement(el *list.Element, reason string) {
	ent := el.Value.(*entry)
	delete(c.entries, ent.key)
	c.lru.Remove(el)
	metrics.RecordCacheEviction(c.name, reason)
	metrics.SetCacheEntries(c.name, len(c.entries))
}

// sweepLoop periodically removes expired entries.
func (c *Cache) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.sweep()
		case <-c.done:
			return
		}
	}
}

// sweep walks the LRU list from the back and drops expired entries.
func (c *Cache) sweep() {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()

	var next *list.Element
	for el := c.lru.Back(); el != nil; el = next {
		next = el.Prev()
		if now.After(el.Value.(*entry).expiresAt) {
			c.removeElement(el, "expired")
		}
	}
}

// GenerateKey builds a stable cache key from an endpoint name and its
// request parameters. Parameters are serialized to JSON and hashed so
// keys stay compact regardless of parameter size.
func GenerateKey(endpoint string, params interface{}) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", endpoint, params)
	}
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", endpoint, hash[:16])
}
