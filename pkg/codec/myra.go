package codec

import (
	"hash/crc32"
	"reflect"
	"time"

	"github.com/mvp-express/core/pkg/envelope"
)

// lengthPrefixSize and checksumSize are the fixed-size bookends around the
// field region described in §4.3.1.
const (
	lengthPrefixSize = 4
	checksumSize     = 4
)

// OperationRecorder receives the outcome and duration of every
// EncodeMessage/DecodeMessage call. Set via Codec.SetMetrics; a nil
// recorder (the default) disables instrumentation entirely.
type OperationRecorder interface {
	RecordCodecOperation(operation string, success bool, duration time.Duration)
}

// Codec encodes and decodes registered Go struct values into and out of an
// envelope's payload region using the MYRA wire format.
type Codec struct {
	registry *Registry
	layouts  *LayoutCache
	metrics  OperationRecorder
}

// NewCodec constructs a Codec with an empty registry and layout cache.
func NewCodec() *Codec {
	return &Codec{
		registry: NewRegistry(),
		layouts:  NewLayoutCache(),
	}
}

// SetMetrics installs a recorder notified of every subsequent
// EncodeMessage/DecodeMessage call's outcome. Passing nil disables
// instrumentation.
func (c *Codec) SetMetrics(m OperationRecorder) {
	c.metrics = m
}

func (c *Codec) recordOperation(operation string, start time.Time, err error) {
	if c.metrics != nil {
		c.metrics.RecordCodecOperation(operation, err == nil, time.Since(start))
	}
}

// Register associates methodId with the type of zeroValue under name. See
// Registry.Register.
func (c *Codec) Register(methodID uint16, zeroValue any, name string) error {
	return c.registry.Register(methodID, zeroValue, name)
}

// CacheSize reports how many distinct types currently have a cached
// layout — exposed for diagnostics and tests verifying the "one
// introspection per type" performance contract.
func (c *Codec) CacheSize() int {
	return c.layouts.Size()
}

// ClearCache empties the layout cache. Diagnostic use only; never called
// in steady state.
func (c *Codec) ClearCache() {
	c.layouts.Clear()
}

// EncodeMessage implements the seven-step encode algorithm from §4.3.2:
// resolve the message id, stamp the envelope header, reserve the length
// prefix, encode fields, backfill the length, append the checksum, and
// finally set the envelope's total length.
func (c *Codec) EncodeMessage(env *envelope.Envelope, msg any) (err error) {
	start := time.Now()
	defer func() { c.recordOperation("encode", start, err) }()

	id, err := c.registry.IDFor(msg)
	if err != nil {
		return err
	}
	if err := env.SetMethodID(id); err != nil {
		return err
	}

	v := reflect.ValueOf(msg)
	layout, err := c.layouts.GetOrBuild(v.Type())
	if err != nil {
		return err
	}

	buf, err := env.Buffer()
	if err != nil {
		return err
	}
	payloadCap := buf[envelope.HeaderSize:]

	w := NewWriter(payloadCap)
	w.SetPosition(lengthPrefixSize) // reserve payload_length slot

	for _, fd := range layout.Fields {
		if err := encodeField(w, v.Field(fd.Index), fd); err != nil {
			return err
		}
	}

	fieldsEnd := w.Position()
	payloadLength := uint32(fieldsEnd - lengthPrefixSize)

	checksum := crc32.ChecksumIEEE(payloadCap[lengthPrefixSize:fieldsEnd])
	w.SetPosition(fieldsEnd)
	if err := w.WriteU32(checksum); err != nil {
		return err
	}

	// Backfill payload_length now that the region it covers is known.
	lw := NewWriter(payloadCap[:lengthPrefixSize])
	if err := lw.WriteU32(payloadLength); err != nil {
		return err
	}

	totalWritten := fieldsEnd + checksumSize
	return env.SetLength(uint16(envelope.HeaderSize + totalWritten))
}

// DecodeMessage resolves the type from methodId, validates payload_length
// against the available bytes, validates the checksum over the field
// region, decodes fields per the cached layout, and constructs the result.
// The checksum is checked before any field is read, so a corrupted byte
// inside a length prefix is reported as CorruptedPayload.
func (c *Codec) DecodeMessage(env *envelope.Envelope) (_ any, err error) {
	start := time.Now()
	defer func() { c.recordOperation("decode", start, err) }()

	methodID, err := env.MethodID()
	if err != nil {
		return nil, err
	}
	typ, err := c.registry.TypeFor(methodID)
	if err != nil {
		return nil, err
	}

	payload, err := env.Payload()
	if err != nil {
		return nil, err
	}
	if len(payload) < lengthPrefixSize+checksumSize {
		return nil, newErr(TruncatedPayload, "payload shorter than length prefix + checksum")
	}

	lr := NewReader(payload[:lengthPrefixSize])
	payloadLength, err := lr.ReadU32()
	if err != nil {
		return nil, err
	}
	if int(payloadLength)+checksumSize > len(payload)-lengthPrefixSize {
		return nil, newErr(TruncatedPayload, "payload_length %d exceeds available bytes", payloadLength)
	}

	fieldsRegion := payload[lengthPrefixSize : lengthPrefixSize+int(payloadLength)]
	checksumRegion := payload[lengthPrefixSize+int(payloadLength) : lengthPrefixSize+int(payloadLength)+checksumSize]

	wantChecksum := crc32.ChecksumIEEE(fieldsRegion)
	gotChecksum := NewReader(checksumRegion)
	checksum, err := gotChecksum.ReadU32()
	if err != nil {
		return nil, err
	}
	if checksum != wantChecksum {
		return nil, newErr(CorruptedPayload, "checksum mismatch: got %x want %x", checksum, wantChecksum)
	}

	layout, err := c.layouts.GetOrBuild(typ)
	if err != nil {
		return nil, err
	}

	r := NewReader(fieldsRegion)
	out := reflect.New(typ).Elem()
	for _, fd := range layout.Fields {
		val, err := decodeField(r, fd)
		if err != nil {
			return nil, err
		}
		out.Field(fd.Index).Set(val)
	}

	return out.Interface(), nil
}

func encodeField(w *Writer, fv reflect.Value, fd FieldDescriptor) error {
	if fd.Optional {
		if fv.IsNil() {
			return w.WritePresence(false)
		}
		if err := w.WritePresence(true); err != nil {
			return err
		}
		fv = fv.Elem()
	}

	switch fd.Kind {
	case KindI32:
		return w.WriteI32(int32(fv.Int()))
	case KindI64:
		return w.WriteI64(fv.Int())
	case KindI16:
		return w.WriteI16(int16(fv.Int()))
	case KindI8:
		return w.WriteI8(int8(fv.Int()))
	case KindBool:
		return w.WriteBool(fv.Bool())
	case KindF32:
		return w.WriteF32(float32(fv.Float()))
	case KindF64:
		return w.WriteF64(fv.Float())
	case KindBytes:
		return w.WriteBytes(fv.Bytes())
	case KindString:
		return w.WriteString(fv.String())
	default:
		return newErr(UnsupportedField, "field %s has unhandled kind %v", fd.Name, fd.Kind)
	}
}

func decodeField(r *Reader, fd FieldDescriptor) (reflect.Value, error) {
	if fd.Optional {
		present, err := r.ReadPresence()
		if err != nil {
			return reflect.Value{}, err
		}
		if !present {
			return reflect.Zero(pointerTypeFor(fd.Kind)), nil
		}
		val, err := decodeScalar(r, fd)
		if err != nil {
			return reflect.Value{}, err
		}
		ptr := reflect.New(val.Type())
		ptr.Elem().Set(val)
		return ptr, nil
	}
	return decodeScalar(r, fd)
}

func decodeScalar(r *Reader, fd FieldDescriptor) (reflect.Value, error) {
	switch fd.Kind {
	case KindI32:
		v, err := r.ReadI32()
		return reflect.ValueOf(v), err
	case KindI64:
		v, err := r.ReadI64()
		return reflect.ValueOf(v), err
	case KindI16:
		v, err := r.ReadI16()
		return reflect.ValueOf(v), err
	case KindI8:
		v, err := r.ReadI8()
		return reflect.ValueOf(v), err
	case KindBool:
		v, err := r.ReadBool()
		return reflect.ValueOf(v), err
	case KindF32:
		v, err := r.ReadF32()
		return reflect.ValueOf(v), err
	case KindF64:
		v, err := r.ReadF64()
		return reflect.ValueOf(v), err
	case KindBytes:
		v, err := r.ReadBytes()
		return reflect.ValueOf(v), err
	case KindString:
		v, err := r.ReadString()
		return reflect.ValueOf(v), err
	default:
		return reflect.Value{}, newErr(UnsupportedField, "unhandled kind %v", fd.Kind)
	}
}

func pointerTypeFor(kind FieldKind) reflect.Type {
	switch kind {
	case KindI32:
		return reflect.TypeOf((*int32)(nil))
	case KindI64:
		return reflect.TypeOf((*int64)(nil))
	case KindI16:
		return reflect.TypeOf((*int16)(nil))
	case KindI8:
		return reflect.TypeOf((*int8)(nil))
	case KindBool:
		return reflect.TypeOf((*bool)(nil))
	case KindF32:
		return reflect.TypeOf((*float32)(nil))
	case KindF64:
		return reflect.TypeOf((*float64)(nil))
	case KindBytes:
		return reflect.TypeOf((*[]byte)(nil))
	case KindString:
		return reflect.TypeOf((*string)(nil))
	default:
		return nil
	}
}
