// Package pool implements the segment pool backing the codec and envelope
// packages: a set of fixed-size byte buffers handed out to callers and
// returned for reuse. The set grows when Acquire finds the free list empty.
//
// # Segments
//
// A Segment is a byte slice leased from a Pool. Segments sized exactly at
// the pool's SegmentSize are recycled on Release; segments requested larger
// than SegmentSize are one-off allocations that are never pooled.
//
// # Concurrency
//
// The free list is guarded by a mutex, matching the rest of this codebase's
// preference for plain sync primitives over specialized lock-free
// structures. The allocated/pooled counters are tracked with sync/atomic so
// callers can observe pool pressure without taking the lock.
package pool
