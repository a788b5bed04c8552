package pool

import "errors"

// PoolError tags programming-error conditions raised by the segment pool.
// Per the error handling design, pool errors are programming errors (use
// after close, release of a segment this pool never issued) and are meant
// to abort the caller's operation loudly rather than be recovered from.
type PoolError struct {
	Kind string
	Err  error
}

func (e *PoolError) Error() string {
	return e.Kind + ": " + e.Err.Error()
}

func (e *PoolError) Unwrap() error {
	return e.Err
}

var (
	errPoolClosed     = errors.New("pool is closed")
	errForeignSegment = errors.New("segment does not belong to this pool")
)

// ErrPoolClosed is returned by Acquire/AcquireSize once the pool has been
// closed. Matches it via errors.Is.
var ErrPoolClosed = &PoolError{Kind: "PoolClosed", Err: errPoolClosed}

// ErrForeignSegment is returned by Release when the segment was not issued
// by this pool (or is nil). Matches it via errors.Is.
var ErrForeignSegment = &PoolError{Kind: "ForeignSegment", Err: errForeignSegment}

// Is allows errors.Is(err, ErrPoolClosed) / errors.Is(err, ErrForeignSegment)
// to match on Kind rather than on the wrapped error identity, since callers
// compare against the package-level vars above.
func (e *PoolError) Is(target error) bool {
	other, ok := target.(*PoolError)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}
