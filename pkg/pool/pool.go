package pool

import (
	"sync"
	"sync/atomic"
)

// DefaultSegmentSize is the size in bytes of a pool-managed segment when the
// caller does not override it.
const DefaultSegmentSize = 8192

// DefaultPoolSize is the number of segments pre-allocated by NewPool when
// the caller does not override it.
const DefaultPoolSize = 1000

// Arena owns the raw storage backing every Segment a Pool ever hands out.
// It has no behavior of its own beyond tracking whether the pool it backs
// has been closed; Close invalidates every Segment sliced from this Arena.
type Arena struct {
	closed atomic.Bool
}

func newArena() *Arena {
	return &Arena{}
}

// Closed reports whether the arena (and therefore every segment it backs)
// has been torn down.
func (a *Arena) Closed() bool {
	return a.closed.Load()
}

// Segment is a contiguous, exclusively-owned region of bytes leased from a
// Pool. The zero value is not usable; obtain one via Pool.Acquire.
type Segment struct {
	arena    *Arena
	data     []byte
	poolable bool
}

// Bytes returns the full backing slice for this segment. The caller owns it
// exclusively until Release.
func (s *Segment) Bytes() []byte {
	return s.data
}

// Size returns the segment's length in bytes.
func (s *Segment) Size() int {
	return len(s.data)
}

// Slice returns a view into this segment sharing the same storage, with no
// copy and no effect on the owning pool's counters. It is the caller's
// responsibility to keep the parent segment alive for as long as the slice
// is in use.
func (s *Segment) Slice(off, length int) *Segment {
	return &Segment{
		arena:    s.arena,
		data:     s.data[off : off+length],
		poolable: false,
	}
}

// AcquireRecorder receives the outcome of every Acquire/AcquireSize call.
// Set via Pool.SetMetrics; a nil recorder (the default) disables
// instrumentation entirely.
type AcquireRecorder interface {
	RecordAcquire(success bool)
}

// Pool is a thread-safe free list of fixed-size Segments, backed by
// a single Arena whose lifetime governs every segment it has ever produced.
//
// Grounded on MemorySegmentPool.java: a ConcurrentLinkedQueue of available
// segments plus atomic allocated/pooled counters. Go's ecosystem (including
// every repo in this corpus) has no specialized lock-free queue library, so
// the free list here is a mutex-guarded slice acting as a stack; ordering
// of reuse is irrelevant per the pool's own contract.
type Pool struct {
	arena       *Arena
	segmentSize int

	mu        sync.Mutex
	available []*Segment

	allocated int64 // currently leased out ("in-use")
	pooled    int64 // currently sitting on the free list

	metrics AcquireRecorder
}

// SetMetrics installs a recorder notified of every subsequent Acquire call's
// outcome. Passing nil disables instrumentation.
func (p *Pool) SetMetrics(m AcquireRecorder) {
	p.metrics = m
}

func (p *Pool) recordAcquire(success bool) {
	if p.metrics != nil {
		p.metrics.RecordAcquire(success)
	}
}

// NewPool constructs a Pool with the given segment size and pre-allocates
// initialPoolSize segments onto the free list. A zero or negative
// segmentSize, or a negative initialPoolSize, falls back to the package
// defaults; an initialPoolSize of zero pre-allocates nothing.
func NewPool(segmentSize, initialPoolSize int) *Pool {
	if segmentSize <= 0 {
		segmentSize = DefaultSegmentSize
	}
	if initialPoolSize < 0 {
		initialPoolSize = DefaultPoolSize
	}

	p := &Pool{
		arena:       newArena(),
		segmentSize: segmentSize,
		available:   make([]*Segment, 0, initialPoolSize),
	}

	for i := 0; i < initialPoolSize; i++ {
		p.available = append(p.available, p.newPoolSegment())
	}
	p.pooled = int64(len(p.available))

	return p
}

// SegmentSize reports the fixed size of pool-managed segments.
func (p *Pool) SegmentSize() int {
	return p.segmentSize
}

func (p *Pool) newPoolSegment() *Segment {
	return &Segment{
		arena:    p.arena,
		data:     make([]byte, p.segmentSize),
		poolable: true,
	}
}

// Acquire returns a pool-sized segment: popped from the free list if one is
// available, otherwise freshly allocated from the arena. Either path
// increments the in-use counter.
func (p *Pool) Acquire() (*Segment, error) {
	return p.AcquireSize(p.segmentSize)
}

// AcquireSize returns a segment of at least n bytes. When n does not exceed
// the pool's segment size, behavior is identical to Acquire. Larger sizes
// bypass the free list entirely and are never recycled on Release.
func (p *Pool) AcquireSize(n int) (*Segment, error) {
	if p.arena.Closed() {
		p.recordAcquire(false)
		return nil, ErrPoolClosed
	}

	if n > p.segmentSize {
		atomic.AddInt64(&p.allocated, 1)
		p.recordAcquire(true)
		return &Segment{arena: p.arena, data: make([]byte, n), poolable: false}, nil
	}

	p.mu.Lock()
	var seg *Segment
	if n := len(p.available); n > 0 {
		seg = p.available[n-1]
		p.available = p.available[:n-1]
		atomic.AddInt64(&p.pooled, -1)
	}
	p.mu.Unlock()

	if seg == nil {
		seg = p.newPoolSegment()
	}
	atomic.AddInt64(&p.allocated, 1)
	p.recordAcquire(true)
	return seg, nil
}

// Release returns seg to the pool. Pool-sized segments are zeroed and
// pushed back onto the free list; oversize segments are dropped. A nil
// segment or one from another pool is rejected with ErrForeignSegment. The
// in-use counter is always decremented for a segment that originated from
// this pool.
func (p *Pool) Release(seg *Segment) error {
	if seg == nil {
		return ErrForeignSegment
	}
	if seg.arena != p.arena {
		return ErrForeignSegment
	}

	atomic.AddInt64(&p.allocated, -1)

	if !seg.poolable || len(seg.data) != p.segmentSize {
		return nil
	}

	for i := range seg.data {
		seg.data[i] = 0
	}

	p.mu.Lock()
	p.available = append(p.available, seg)
	p.mu.Unlock()
	atomic.AddInt64(&p.pooled, 1)
	return nil
}

// Slice returns a zero-copy view into seg, sharing the same backing storage
// without altering the pool's counters.
func (p *Pool) Slice(seg *Segment, off, length int) *Segment {
	return seg.Slice(off, length)
}

// AllocatedCount reports the number of segments currently leased out.
func (p *Pool) AllocatedCount() int {
	return int(atomic.LoadInt64(&p.allocated))
}

// AvailableCount reports the number of pool-sized segments sitting on the
// free list, ready for reuse.
func (p *Pool) AvailableCount() int {
	return int(atomic.LoadInt64(&p.pooled))
}

// Close tears down the arena. Every segment this pool has ever produced
// becomes invalid and the free list is discarded; further Acquire calls
// fail with ErrPoolClosed.
func (p *Pool) Close() error {
	p.arena.closed.Store(true)
	p.mu.Lock()
	p.available = nil
	p.mu.Unlock()
	return nil
}
