package s3fifo

// ghostNode is a fingerprint-only node in the GhostFIFO list. Ghost never
// stores keys or values (spec.md section 3: "Ghost contains fingerprints
// (not keys)"); membership is checked by hash equality alone, which admits
// rare false positives on collision (spec.md section 4.3) that this
// implementation accepts.
type ghostNode struct {
	hash       uint64
	prev, next *ghostNode
}

// ghostFIFO is a bounded FIFO of 64-bit hash fingerprints with O(1)
// membership testing.
//
// Ghost must evict its oldest fingerprint in strict FIFO order for S3-FIFO's
// admission policy to work (spec.md section 9): a key that was evicted from
// Small long enough ago has to stop being recognized as a ghost hit, so a
// newly-admitted key gets the usual one-hit-wonder treatment again rather
// than skipping straight to Main. A Bloom filter can only grow or be cleared
// wholesale, never age out its oldest member, so it cannot provide this.
// This implementation backs Ghost with a doubly linked list plus a
// map[uint64]*ghostNode for O(1) membership, deliberately not a
// probabilistic structure.
type ghostFIFO struct {
	head, tail *ghostNode
	length     int
	capacity   int
	index      map[uint64]*ghostNode
}

func newGhostFIFO(capacity int) *ghostFIFO {
	return &ghostFIFO{
		capacity: capacity,
		index:    make(map[uint64]*ghostNode, capacity),
	}
}

func (g *ghostFIFO) len() int { return g.length }

func (g *ghostFIFO) contains(hash uint64) bool {
	_, ok := g.index[hash]
	return ok
}

// insert records hash as recently evicted. Idempotent: re-inserting a hash
// already present is a no-op (spec.md section 4.3).
func (g *ghostFIFO) insert(hash uint64) {
	if g.capacity == 0 {
		return
	}
	if _, ok := g.index[hash]; ok {
		return
	}

	if g.length >= g.capacity {
		g.evictHead()
	}

	n := &ghostNode{hash: hash, prev: g.tail}
	if g.tail != nil {
		g.tail.next = n
	} else {
		g.head = n
	}
	g.tail = n
	g.length++
	g.index[hash] = n
}

func (g *ghostFIFO) evictHead() {
	n := g.head
	if n == nil {
		return
	}
	g.head = n.next
	if g.head != nil {
		g.head.prev = nil
	} else {
		g.tail = nil
	}
	delete(g.index, n.hash)
	g.length--
}
