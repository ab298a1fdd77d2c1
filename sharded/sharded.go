// Package sharded adds concurrency-safe access on top of s3fifo.Cache,
// whose core is intentionally single-threaded: callers that need concurrent
// access either wrap a Cache in their own mutex or shard by key hash across
// multiple independent caches. Cache here does the latter: N independent
// single-threaded s3fifo.Cache instances, each guarded by its own lock and
// selected by the low bits of the key's hash.
//
// The shard count is a power of two, one lock per shard, using
// github.com/puzpuzpuz/xsync/v4's RBMutex for that lock. Each shard owns a
// whole s3fifo.Cache rather than a duplicated copy of the queue logic, so
// the eviction state machine has exactly one implementation.
package sharded

import (
	"log/slog"
	"math/bits"
	"runtime"

	"github.com/puzpuzpuz/xsync/v4"

	"github.com/s3fifocache/s3fifo"
)

// maxShards bounds shard fan-out so a huge GOMAXPROCS on a small cache
// doesn't fragment it into shards too small to hold a useful
// Small/Main/Ghost split.
const maxShards = 256

// Cache is a concurrency-safe S3-FIFO cache built from independent
// per-shard s3fifo.Cache instances.
type Cache[K comparable, V any] struct {
	shards    []shard[K, V]
	shardMask uint64
	hasher    s3fifo.Hasher[K]
}

type shard[K comparable, V any] struct {
	mu    *xsync.RBMutex
	cache *s3fifo.Cache[K, V]
}

// New creates a Cache with total capacity split evenly across shards. The
// shard count is chosen from GOMAXPROCS, capped at maxShards and at one
// shard per 256 entries of capacity so small caches don't get sharded into
// uselessly tiny queues.
func New[K comparable, V any](capacity int, opts ...s3fifo.Option[K]) *Cache[K, V] {
	if capacity < 0 {
		capacity = 0
	}

	n := shardCount(capacity)
	perShard := (capacity + n - 1) / n

	c := &Cache[K, V]{
		shards:    make([]shard[K, V], n),
		shardMask: uint64(n - 1), //nolint:gosec // n is a positive power of two
		hasher:    s3fifo.HasherFrom(opts...),
	}

	for i := range c.shards {
		c.shards[i] = shard[K, V]{
			mu:    xsync.NewRBMutex(),
			cache: s3fifo.New[K, V](perShard, opts...),
		}
	}

	slog.Debug("sharded cache created", "capacity", capacity, "shards", n, "per_shard_capacity", perShard)

	return c
}

// shardCount picks a power-of-two shard count bounded by GOMAXPROCS*4,
// capacity/256, and maxShards, balancing contention reduction against
// per-shard queue usefulness.
func shardCount(capacity int) int {
	n := runtime.GOMAXPROCS(0) * 4
	if byCap := capacity / 256; byCap < n {
		n = byCap
	}
	if n > maxShards {
		n = maxShards
	}
	if n < 1 {
		n = 1
	}
	return 1 << (bits.Len(uint(n)) - 1) //nolint:gosec // n bounded to [1, maxShards]
}

func (c *Cache[K, V]) shardFor(key K) *shard[K, V] {
	idx := c.hasher(key) & c.shardMask
	return &c.shards[idx]
}

// Get retrieves a value, bumping its shard-local frequency counter on hit.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	s := c.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Get(key)
}

// Put inserts or replaces key's value, returning the prior value if any.
func (c *Cache[K, V]) Put(key K, value V) (prior V, hadPrior bool) {
	s := c.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Put(key, value)
}

// Len sums the length of every shard. Under concurrent mutation this is a
// benign race on the total: each shard's own count is always accurate at
// the instant it's read, but the sum may reflect no single global instant.
func (c *Cache[K, V]) Len() int {
	total := 0
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.Lock()
		total += s.cache.Len()
		s.mu.Unlock()
	}
	return total
}

// Capacity returns the sum of per-shard capacities, which may exceed the
// requested total by up to shards-1 due to ceiling division.
func (c *Cache[K, V]) Capacity() int {
	total := 0
	for i := range c.shards {
		total += c.shards[i].cache.Capacity()
	}
	return total
}

// Shards returns the number of independent s3fifo.Cache instances backing
// this wrapper.
func (c *Cache[K, V]) Shards() int {
	return len(c.shards)
}
