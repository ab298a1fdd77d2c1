package sharded_test

import (
	"sync"
	"testing"

	"github.com/s3fifocache/s3fifo"
	"github.com/s3fifocache/s3fifo/sharded"
)

func TestSharded_GetPutRoundTrip(t *testing.T) {
	c := sharded.New[string, int](1000)

	c.Put("a", 1)
	c.Put("b", 2)

	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("Get(a) = %d, %v; want 1, true", v, ok)
	}
	if v, ok := c.Get("b"); !ok || v != 2 {
		t.Fatalf("Get(b) = %d, %v; want 2, true", v, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Fatal("Get(missing) should miss")
	}
}

func TestSharded_CapacitySplitAcrossShards(t *testing.T) {
	c := sharded.New[int, int](1000)

	if c.Shards() < 1 {
		t.Fatal("expected at least one shard")
	}
	if c.Capacity() < 1000 {
		t.Errorf("Capacity() = %d; want at least 1000", c.Capacity())
	}
}

func TestSharded_LenTracksInsertions(t *testing.T) {
	c := sharded.New[int, int](1000)
	// With no reads, new keys stay in each shard's Small queue (a tenth of
	// the shard's capacity), so 50 keys fit without any eviction.
	for i := range 50 {
		c.Put(i, i)
	}
	if c.Len() != 50 {
		t.Errorf("Len() = %d; want 50", c.Len())
	}
}

// TestSharded_ConcurrentAccess exercises the per-shard locking under the
// race detector: many goroutines hammering overlapping key ranges must
// never corrupt a shard's underlying s3fifo.Cache.
func TestSharded_ConcurrentAccess(t *testing.T) {
	c := sharded.New[int, int](2000)

	const goroutines = 32
	const opsPerGoroutine = 2000

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func(seed int) {
			defer wg.Done()
			for i := 0; i < opsPerGoroutine; i++ {
				k := (seed*opsPerGoroutine + i) % 500
				c.Put(k, k)
				c.Get(k)
			}
		}(g)
	}
	wg.Wait()

	if c.Len() > c.Capacity() {
		t.Errorf("Len() = %d exceeds Capacity() = %d", c.Len(), c.Capacity())
	}
}

func TestSharded_WithHasherOptionPropagates(t *testing.T) {
	calls := 0
	h := func(k int) uint64 {
		calls++
		return uint64(k) //nolint:gosec // test hasher
	}

	c := sharded.New[int, int](100, s3fifo.WithHasher[int](h))
	c.Put(1, 1)
	c.Get(1)

	if calls == 0 {
		t.Error("custom hasher should have been used for shard routing and cache hashing")
	}
}
