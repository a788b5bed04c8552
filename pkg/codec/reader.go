package codec

import (
	"encoding/binary"
	"math"
	"unicode/utf8"
)

// Reader decodes primitive MYRA field values out of a byte slice, with a
// cursor independent of any Writer over the same bytes.
type Reader struct {
	buf []byte
	pos int
}

// NewReader wraps buf for reading.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Position reports the reader's current cursor offset.
func (r *Reader) Position() int {
	return r.pos
}

// SetPosition resets the cursor to n.
func (r *Reader) SetPosition(n int) {
	r.pos = n
}

// Remaining reports how many unread bytes remain.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.pos
}

func (r *Reader) take(n int) ([]byte, error) {
	if r.pos+n > len(r.buf) {
		return nil, newErr(TruncatedPayload, "need %d bytes at offset %d, only %d available", n, r.pos, len(r.buf)-r.pos)
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *Reader) ReadI8() (int8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return int8(b[0]), nil
}

func (r *Reader) ReadI16() (int16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return int16(binary.BigEndian.Uint16(b)), nil
}

func (r *Reader) ReadI32() (int32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(b)), nil
}

func (r *Reader) ReadI64() (int64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(b)), nil
}

func (r *Reader) ReadU32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (r *Reader) ReadBool() (bool, error) {
	v, err := r.ReadI8()
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

func (r *Reader) ReadF32() (float32, error) {
	v, err := r.ReadU32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

func (r *Reader) ReadF64() (float64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.BigEndian.Uint64(b)), nil
}

func (r *Reader) ReadBytes() ([]byte, error) {
	n, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return []byte{}, nil
	}
	b, err := r.take(int(n))
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

func (r *Reader) ReadString() (string, error) {
	b, err := r.ReadBytes()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", newErr(InvalidUtf8, "field is not valid UTF-8")
	}
	return string(b), nil
}

// ReadPresence reads the single presence byte preceding any nullable
// field.
func (r *Reader) ReadPresence() (bool, error) {
	return r.ReadBool()
}
