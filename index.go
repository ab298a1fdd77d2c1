package s3fifo

// index is the primary key-to-entry lookup table covering Small union Main
// (spec.md section 4.1). spec.md models Index as a hash-directed probe
// (`find(hash, key_eq)`) filtered by a caller-supplied equality, mirroring
// the original Rust implementation's open-addressed hashbrown::HashTable
// keyed by a raw u64 hash with manual equality checks. Go's built-in map
// already performs that hash-directed probe plus equality check natively
// for any comparable K, so this type is a thin, directly-keyed wrapper
// around map[K]*entry[K,V] rather than a reimplementation of open
// addressing: the hash is computed at most once per Put and cached on
// the entry (entry.hash) for Ghost lookups, but Index itself never needs it
// to resolve a key.
type index[K comparable, V any] struct {
	m map[K]*entry[K, V]
}

func newIndex[K comparable, V any](capacity int) *index[K, V] {
	return &index[K, V]{m: make(map[K]*entry[K, V], capacity)}
}

func (ix *index[K, V]) len() int { return len(ix.m) }

// find returns the entry stored for key, if any. The returned pointer is
// only valid transiently: callers must not retain it across a mutation of
// a different key (spec.md section 4.1).
func (ix *index[K, V]) find(key K) (*entry[K, V], bool) {
	e, ok := ix.m[key]
	return e, ok
}

// insert adds key -> e. The caller guarantees key is absent (spec.md
// section 4.1); violating that is an invariant failure.
func (ix *index[K, V]) insert(key K, e *entry[K, V]) {
	if _, exists := ix.m[key]; exists {
		invariant(false, "index: insert called for key already present")
	}
	ix.m[key] = e
}

// remove deletes key's entry. No-op if key is absent.
func (ix *index[K, V]) remove(key K) {
	delete(ix.m, key)
}
