// Package s3fifo implements the S3-FIFO cache eviction algorithm described
// in "FIFO queues are all you need for cache eviction" (Yang et al.,
// SOSP '23): three bounded FIFO queues, a small probationary queue, a
// large main queue, and a keys-only ghost queue, plus a 2-bit per-entry
// frequency counter, replacing the list-splice reordering LRU/LFU need on
// every hit.
//
// Cache is single-threaded and non-reentrant: every operation must
// complete before the next begins, and nothing here synchronizes access
// across goroutines. Callers that need concurrent access should wrap a
// Cache in their own mutex, or use the s3fifocache/s3fifo/sharded package,
// which shards by key hash across independent Cache instances.
package s3fifo

// Cache is an in-memory key-value cache using the S3-FIFO eviction policy.
// It is safe for single-threaded use only; see the package doc.
type Cache[K comparable, V any] struct {
	hasher Hasher[K]

	small *fifoQueue[K, V]
	main  *fifoQueue[K, V]
	ghost *ghostFIFO
	idx   *index[K, V]

	capacity int
}

// New creates a Cache with the given total entry capacity C. Small gets
// floor(C/10), Main gets floor(9C/10) (C minus Small's share when
// WithSmallRatio is used), and Ghost defaults to
// Main's size, unless overridden via WithSmallRatio / WithGhostRatio. The
// default Hasher is NewXXHasher[K](); supply WithHasher to use a different
// one.
//
// C == 0 is legal: the cache accepts Get/Put as permanent misses/no-ops.
func New[K comparable, V any](capacity int, opts ...Option[K]) *Cache[K, V] {
	if capacity < 0 {
		capacity = 0
	}

	cfg := defaultConfig(capacity)
	for _, opt := range opts {
		opt(cfg)
	}

	small := cfg.smallCapacity()
	main := cfg.mainCapacity(small)
	ghost := cfg.ghostCapacity(main)

	return &Cache[K, V]{
		hasher:   resolveHasher[K](cfg),
		small:    newFIFOQueue[K, V](small),
		main:     newFIFOQueue[K, V](main),
		ghost:    newGhostFIFO(ghost),
		idx:      newIndex[K, V](capacity),
		capacity: capacity,
	}
}

// Get retrieves the value stored for key. On a hit, the entry's frequency
// counter is incremented (saturating at 3); on a miss, it returns the zero
// value and false.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	e, ok := c.idx.find(key)
	if !ok {
		var zero V
		return zero, false
	}
	e.bump()
	return e.value, true
}

// Put inserts or replaces the value for key.
//
// If key is already present, its value is replaced in place and the prior
// value is returned with hadPrior true; freq is left untouched, so read
// traffic alone still drives promotion regardless of how often a value is
// overwritten.
//
// If key is absent, Put admits it: a Ghost hit sends it straight to Main
// (evicting from Main first if full); otherwise it enters Small (evicting
// from Small first if full, which may cascade into Main and Ghost).
// hadPrior is always false in this path.
//
// C == 0 makes Put a permanent no-op: the value is dropped and hadPrior is
// always false.
func (c *Cache[K, V]) Put(key K, value V) (prior V, hadPrior bool) {
	if e, ok := c.idx.find(key); ok {
		prior = e.value
		e.value = value
		return prior, true
	}

	if c.capacity == 0 {
		var zero V
		return zero, false
	}

	hash := c.hasher(key)

	if c.ghost.contains(hash) {
		if c.main.isFull() {
			c.evictMain()
		}
		e := newEntry[K, V](key, value, hash)
		e.inSmall = false
		c.main.pushTail(e)
		c.idx.insert(key, e)
	} else {
		if c.small.isFull() {
			c.evictSmall()
		}
		e := newEntry[K, V](key, value, hash)
		e.inSmall = true
		c.small.pushTail(e)
		c.idx.insert(key, e)
	}

	var zero V
	return zero, false
}

// Len returns the number of entries across Small and Main.
func (c *Cache[K, V]) Len() int {
	return c.idx.len()
}

// Capacity returns the configured total capacity C.
func (c *Cache[K, V]) Capacity() int {
	return c.capacity
}

// evictSmall frees a slot in Small by repeatedly popping its head. A warm
// entry (freq>0 after decay) is promoted to Main's tail, cascading into
// evictMain if Main is full; a cold entry (freq==0 after decay) is dropped
// from Index, its hash recorded in Ghost, and the loop returns: exactly one
// Small slot has been freed. Each iteration decays a bounded counter, so
// the loop is bounded by 4*len(small)+1 passes; exceeding that is an
// invariant violation.
func (c *Cache[K, V]) evictSmall() {
	limit := 4*c.small.len() + 1
	for i := 0; ; i++ {
		invariant(i < limit, "evictSmall: exceeded %d iterations without freeing a slot", limit)

		e := c.small.popHead()
		if e == nil {
			return
		}

		if f := e.decay(); f > 0 {
			if c.main.isFull() {
				c.evictMain()
			}
			e.inSmall = false
			c.main.pushTail(e)
			continue
		}

		c.idx.remove(e.key)
		c.ghost.insert(e.hash)
		return
	}
}

// evictMain frees a slot in Main by repeatedly popping its head. A warm
// entry is recycled onto Main's tail with its freq decremented; a cold
// entry is dropped from Index and the loop returns. Unlike evictSmall, a
// cold Main entry's hash is not added to Ghost: Ghost only tracks keys
// evicted out of Small with zero reuse.
func (c *Cache[K, V]) evictMain() {
	limit := 4*c.main.len() + 1
	for i := 0; ; i++ {
		invariant(i < limit, "evictMain: exceeded %d iterations without freeing a slot", limit)

		e := c.main.popHead()
		if e == nil {
			return
		}

		if f := e.decay(); f > 0 {
			c.main.pushTail(e)
			continue
		}

		c.idx.remove(e.key)
		return
	}
}
