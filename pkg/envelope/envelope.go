package envelope

import (
	"encoding/binary"

	"github.com/mvp-express/core/pkg/pool"
)

// HeaderSize is the fixed size, in bytes, of every envelope header.
const HeaderSize = 29

const (
	lengthOffset        = 0
	methodIDOffset       = 2
	correlationIDOffset = 4
	traceIDOffset        = 12
	flagsOffset          = 28
)

// Flag bits within the header's flags byte.
const (
	FlagHasTraceID byte = 1 << 0
	FlagIsResponse byte = 1 << 1
	FlagHasError   byte = 1 << 2
)

// Envelope is a view over a pooled Segment with the first HeaderSize bytes
// interpreted as a typed header and the remainder as payload. Envelopes are
// single-owner, non-shared, and their lifetime is bounded by the backing
// segment's lease.
type Envelope struct {
	seg     *pool.Segment
	p       *pool.Pool
	pooled  bool
	released bool
}

// Allocate acquires a segment sized HeaderSize+payloadSize from p and
// returns an Envelope that owns that lease. The caller must Release it
// exactly once.
func Allocate(payloadSize int, p *pool.Pool) (*Envelope, error) {
	seg, err := p.AcquireSize(HeaderSize + payloadSize)
	if err != nil {
		return nil, err
	}
	return &Envelope{seg: seg, p: p, pooled: true}, nil
}

// Wrap views an existing segment as an Envelope without acquiring anything
// new from a pool. Used on read paths where bytes were already placed into
// the segment by I/O. Release on a wrapped envelope is a no-op for the
// segment's pool membership.
func Wrap(seg *pool.Segment) *Envelope {
	return &Envelope{seg: seg, pooled: false}
}

// Release returns the backing segment to its owning pool. After Release,
// every header/payload accessor fails with ErrReleased. Wrapping envelopes
// (via Wrap) do not own a pool lease, so Release is a no-op for them beyond
// marking the envelope unusable.
func (e *Envelope) Release() error {
	if e.released {
		return nil
	}
	e.released = true
	if e.pooled && e.p != nil {
		return e.p.Release(e.seg)
	}
	return nil
}

func (e *Envelope) checkLive() error {
	if e.released {
		return ErrReleased
	}
	return nil
}

// Length returns the total frame size in bytes (header + payload).
func (e *Envelope) Length() (uint16, error) {
	if err := e.checkLive(); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(e.seg.Bytes()[lengthOffset:]), nil
}

// SetLength sets the total frame size in bytes (header + payload).
func (e *Envelope) SetLength(v uint16) error {
	if err := e.checkLive(); err != nil {
		return err
	}
	binary.BigEndian.PutUint16(e.seg.Bytes()[lengthOffset:], v)
	return nil
}

// MethodID returns the unsigned method selector.
func (e *Envelope) MethodID() (uint16, error) {
	if err := e.checkLive(); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(e.seg.Bytes()[methodIDOffset:]), nil
}

// SetMethodID sets the unsigned method selector.
func (e *Envelope) SetMethodID(v uint16) error {
	if err := e.checkLive(); err != nil {
		return err
	}
	binary.BigEndian.PutUint16(e.seg.Bytes()[methodIDOffset:], v)
	return nil
}

// CorrelationID returns the caller-assigned request/response match token.
func (e *Envelope) CorrelationID() (uint64, error) {
	if err := e.checkLive(); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(e.seg.Bytes()[correlationIDOffset:]), nil
}

// SetCorrelationID sets the caller-assigned request/response match token.
func (e *Envelope) SetCorrelationID(v uint64) error {
	if err := e.checkLive(); err != nil {
		return err
	}
	binary.BigEndian.PutUint64(e.seg.Bytes()[correlationIDOffset:], v)
	return nil
}

// TraceID returns the 16-byte trace id. Only meaningful when HasTraceID
// reports true.
func (e *Envelope) TraceID() ([16]byte, error) {
	var out [16]byte
	if err := e.checkLive(); err != nil {
		return out, err
	}
	copy(out[:], e.seg.Bytes()[traceIDOffset:traceIDOffset+16])
	return out, nil
}

// SetTraceID writes the 16-byte trace id and sets FlagHasTraceID.
func (e *Envelope) SetTraceID(id [16]byte) error {
	if err := e.checkLive(); err != nil {
		return err
	}
	copy(e.seg.Bytes()[traceIDOffset:traceIDOffset+16], id[:])
	return e.setFlag(FlagHasTraceID, true)
}

// Flags returns the raw flags byte.
func (e *Envelope) Flags() (byte, error) {
	if err := e.checkLive(); err != nil {
		return 0, err
	}
	return e.seg.Bytes()[flagsOffset], nil
}

// SetFlags overwrites the raw flags byte.
func (e *Envelope) SetFlags(v byte) error {
	if err := e.checkLive(); err != nil {
		return err
	}
	e.seg.Bytes()[flagsOffset] = v
	return nil
}

func (e *Envelope) setFlag(bit byte, on bool) error {
	f, err := e.Flags()
	if err != nil {
		return err
	}
	if on {
		f |= bit
	} else {
		f &^= bit
	}
	return e.SetFlags(f)
}

// HasTraceID reports whether flag bit 0 is set.
func (e *Envelope) HasTraceID() (bool, error) {
	f, err := e.Flags()
	if err != nil {
		return false, err
	}
	return f&FlagHasTraceID != 0, nil
}

// IsResponse reports whether flag bit 1 is set.
func (e *Envelope) IsResponse() (bool, error) {
	f, err := e.Flags()
	if err != nil {
		return false, err
	}
	return f&FlagIsResponse != 0, nil
}

// SetIsResponse sets or clears flag bit 1.
func (e *Envelope) SetIsResponse(v bool) error {
	return e.setFlag(FlagIsResponse, v)
}

// HasError reports whether flag bit 2 is set.
func (e *Envelope) HasError() (bool, error) {
	f, err := e.Flags()
	if err != nil {
		return false, err
	}
	return f&FlagHasError != 0, nil
}

// SetHasError sets or clears flag bit 2.
func (e *Envelope) SetHasError(v bool) error {
	return e.setFlag(FlagHasError, v)
}

// Payload returns a zero-copy view of bytes [HeaderSize, length). Requires
// length >= HeaderSize.
func (e *Envelope) Payload() ([]byte, error) {
	if err := e.checkLive(); err != nil {
		return nil, err
	}
	length, err := e.Length()
	if err != nil {
		return nil, err
	}
	if int(length) < HeaderSize {
		return nil, ErrPayloadUnderrun
	}
	return e.seg.Bytes()[HeaderSize:length], nil
}

// Buffer returns the full backing storage for this envelope, header and
// payload capacity included. Used by the codec to write directly into the
// payload region before SetLength is known.
func (e *Envelope) Buffer() ([]byte, error) {
	if err := e.checkLive(); err != nil {
		return nil, err
	}
	return e.seg.Bytes(), nil
}

// TotalSize returns the full capacity of the backing segment (header plus
// maximum payload capacity), independent of the length field.
func (e *Envelope) TotalSize() (int, error) {
	if err := e.checkLive(); err != nil {
		return 0, err
	}
	return e.seg.Size(), nil
}
