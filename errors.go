package s3fifo

import "fmt"

// invariant panics with a formatted message when cond is false. Every
// condition spec.md section 7 lists (Index/queue desync, an out-of-range
// freq, or an eviction loop that fails to terminate) is a logic bug, not a
// recoverable runtime error, so there is no error return to construct:
// the cache has no fallible operations on its hot path.
func invariant(cond bool, format string, args ...any) {
	if !cond {
		panic("s3fifo: invariant violation: " + fmt.Sprintf(format, args...))
	}
}
