package codec

import (
	"encoding/binary"
	"math"
)

// Writer encodes primitive MYRA field values into a fixed-capacity byte
// slice, advancing its own cursor independently of any reader over the
// same bytes — mirroring the separate read/write cursor contract exercised
// by the low-level segment binary writer/reader this package's tests are
// grounded on.
type Writer struct {
	buf []byte
	pos int
}

// NewWriter wraps buf for writing. buf's full length is the writer's
// capacity; Position resets the cursor without reallocating.
func NewWriter(buf []byte) *Writer {
	return &Writer{buf: buf}
}

// Position reports the writer's current cursor offset.
func (w *Writer) Position() int {
	return w.pos
}

// SetPosition resets the cursor to n.
func (w *Writer) SetPosition(n int) {
	w.pos = n
}

// Bytes returns the slice written so far.
func (w *Writer) Bytes() []byte {
	return w.buf[:w.pos]
}

func (w *Writer) reserve(n int) ([]byte, error) {
	if w.pos+n > len(w.buf) {
		return nil, newErr(TruncatedPayload, "payload buffer too small: need %d more bytes at offset %d, capacity %d", n, w.pos, len(w.buf))
	}
	b := w.buf[w.pos : w.pos+n]
	w.pos += n
	return b, nil
}

func (w *Writer) WriteI8(v int8) error {
	b, err := w.reserve(1)
	if err != nil {
		return err
	}
	b[0] = byte(v)
	return nil
}

func (w *Writer) WriteI16(v int16) error {
	b, err := w.reserve(2)
	if err != nil {
		return err
	}
	binary.BigEndian.PutUint16(b, uint16(v))
	return nil
}

func (w *Writer) WriteI32(v int32) error {
	b, err := w.reserve(4)
	if err != nil {
		return err
	}
	binary.BigEndian.PutUint32(b, uint32(v))
	return nil
}

func (w *Writer) WriteI64(v int64) error {
	b, err := w.reserve(8)
	if err != nil {
		return err
	}
	binary.BigEndian.PutUint64(b, uint64(v))
	return nil
}

func (w *Writer) WriteU32(v uint32) error {
	b, err := w.reserve(4)
	if err != nil {
		return err
	}
	binary.BigEndian.PutUint32(b, v)
	return nil
}

func (w *Writer) WriteBool(v bool) error {
	if v {
		return w.WriteI8(1)
	}
	return w.WriteI8(0)
}

func (w *Writer) WriteF32(v float32) error {
	return w.WriteU32(math.Float32bits(v))
}

func (w *Writer) WriteF64(v float64) error {
	b, err := w.reserve(8)
	if err != nil {
		return err
	}
	binary.BigEndian.PutUint64(b, math.Float64bits(v))
	return nil
}

func (w *Writer) WriteBytes(v []byte) error {
	if err := w.WriteU32(uint32(len(v))); err != nil {
		return err
	}
	if len(v) == 0 {
		return nil
	}
	b, err := w.reserve(len(v))
	if err != nil {
		return err
	}
	copy(b, v)
	return nil
}

func (w *Writer) WriteString(v string) error {
	return w.WriteBytes([]byte(v))
}

// WritePresence writes the single presence byte preceding any nullable
// field: 0 for absent, 1 for present.
func (w *Writer) WritePresence(present bool) error {
	return w.WriteBool(present)
}
