package s3fifo

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Hasher computes a 64-bit digest for a key. Callers may supply their own
// (spec.md section 6: "a factory-supplied function K -> u64 with the usual
// hash contract"); New uses a default built on xxhash.
type Hasher[K comparable] func(K) uint64

// NewXXHasher returns the default Hasher used by New: it dispatches on the
// concrete key type once, at construction, to avoid an allocation per call
// for the common cases (string, the fixed-width integers) and falls back to
// hashing a fmt.Sprintf representation for everything else. All paths hash
// through github.com/cespare/xxhash/v2 rather than a hand-rolled mixing
// function.
func NewXXHasher[K comparable]() Hasher[K] {
	var zero K
	switch any(zero).(type) {
	case string:
		return func(k K) uint64 {
			s := any(k).(string) //nolint:forcetypeassert // guarded by the type switch above
			return xxhash.Sum64String(s)
		}
	case []byte:
		return func(k K) uint64 {
			b := any(k).([]byte) //nolint:forcetypeassert // guarded by the type switch above
			return xxhash.Sum64(b)
		}
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, uintptr:
		return func(k K) uint64 {
			return hashFixedWidth(k)
		}
	default:
		return func(k K) uint64 {
			return xxhash.Sum64String(fmt.Sprintf("%v", k))
		}
	}
}

// hashFixedWidth hashes any fixed-width integer key by widening it to
// uint64 and hashing its little-endian bytes through xxhash, so every
// integer key type shares one code path instead of one per width.
func hashFixedWidth[K comparable](k K) uint64 {
	var v uint64
	switch n := any(k).(type) {
	case int:
		v = uint64(n) //nolint:gosec // intentional bit reinterpretation for hashing
	case int8:
		v = uint64(n) //nolint:gosec
	case int16:
		v = uint64(n) //nolint:gosec
	case int32:
		v = uint64(n) //nolint:gosec
	case int64:
		v = uint64(n) //nolint:gosec
	case uint:
		v = uint64(n)
	case uint8:
		v = uint64(n)
	case uint16:
		v = uint64(n)
	case uint32:
		v = uint64(n)
	case uint64:
		v = n
	case uintptr:
		v = uint64(n)
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return xxhash.Sum64(buf[:])
}
