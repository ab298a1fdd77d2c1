package s3fifo

// config holds construction-time settings for Cache, built from functional
// options and shared by New and WithHasher.
type config struct {
	capacity int

	// smallRatio and ghostRatio override the default 1/10, 9/10 capacity
	// split from spec.md section 3 (S = floor(C/10), M = floor(9C/10),
	// G = M). Zero means "use the spec default"; behavior never changes
	// unless a caller opts in.
	smallRatio float64
	ghostRatio float64

	hasher any // Hasher[K], boxed until Option is applied against a typed *config in New
}

// Option configures a Cache at construction. It is parameterized by K (not
// V) so WithHasher can be expressed without also binding V; New accepts
// Option[K] regardless of its own V.
type Option[K comparable] func(*config)

// WithSmallRatio overrides the fraction of capacity given to SmallFIFO.
// Default is 0.1 (10%), per spec.md section 3.
func WithSmallRatio[K comparable](r float64) Option[K] {
	return func(c *config) { c.smallRatio = r }
}

// WithHasher supplies a caller-defined Hasher, the with_hasher constructor
// from spec.md section 6 expressed as an option rather than a second
// constructor, since Go has no overloading.
func WithHasher[K comparable](h Hasher[K]) Option[K] {
	return func(c *config) { c.hasher = h }
}

// WithGhostRatio overrides the fraction of capacity given to GhostFIFO,
// expressed relative to total capacity C. Default is 0.9 (G = M = 9C/10),
// per spec.md section 3.
func WithGhostRatio[K comparable](r float64) Option[K] {
	return func(c *config) { c.ghostRatio = r }
}

// resolveHasher returns the Hasher a config would use: the supplied
// WithHasher option if present, otherwise NewXXHasher[K](). Exported via
// HasherFrom so collaborators like the sharded package can route keys with
// the exact same hasher a Cache built from the same options will use
// internally.
func resolveHasher[K comparable](c *config) Hasher[K] {
	hasher, _ := c.hasher.(Hasher[K])
	if hasher == nil {
		hasher = NewXXHasher[K]()
	}
	return hasher
}

// HasherFrom returns the Hasher that New would use given the same options,
// without constructing a Cache. Used by collaborators (such as
// s3fifocache/s3fifo/sharded) that need to route keys to shards with the
// identical hash function New's per-shard caches resolve internally.
func HasherFrom[K comparable](opts ...Option[K]) Hasher[K] {
	cfg := defaultConfig(0)
	for _, opt := range opts {
		opt(cfg)
	}
	return resolveHasher[K](cfg)
}

func defaultConfig(capacity int) *config {
	return &config{capacity: capacity}
}

// smallCapacity returns S per spec.md section 3's formula, or the
// overridden ratio if WithSmallRatio was used.
func (c *config) smallCapacity() int {
	ratio := c.smallRatio
	if ratio <= 0 {
		return c.capacity / 10
	}
	return int(float64(c.capacity) * ratio)
}

// mainCapacity returns M. With the default ratio M = floor(9C/10), so S+M
// can fall short of C by one when C is not a multiple of 10; with
// WithSmallRatio, M = C - S.
func (c *config) mainCapacity(small int) int {
	if c.smallRatio <= 0 {
		return c.capacity * 9 / 10
	}
	return c.capacity - small
}

// ghostCapacity returns G, defaulting to M (spec.md section 3: G = M).
func (c *config) ghostCapacity(main int) int {
	ratio := c.ghostRatio
	if ratio <= 0 {
		return main
	}
	return int(float64(c.capacity) * ratio)
}
