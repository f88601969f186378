package codec

import (
	"math"

	"github.com/jonx-format/jonx/catalog"
	"github.com/jonx-format/jonx/endian"
	"github.com/jonx-format/jonx/errs"
	"github.com/jonx-format/jonx/internal/pool"
)

var le = endian.GetLittleEndianEngine()

// encodeNumeric packs a fixed-width binary-packed column (every integer
// width, every float width, bool, timestamp_ms) into its little-endian
// block per spec.md §4.3: no length prefix, decoder asserts
// len(bytes) = N * width.
//
// Grounded on the teacher's blob/numeric_encoder.go little-endian packing
// loop, minus the delta/Gorilla transforms (spec.md mandates plain packing
// with no transform for these types).
func encodeNumeric(kind catalog.Kind, values []any) ([]byte, error) {
	width := kind.Width()
	buf := pool.NewByteBuffer(width * len(values))

	for i, v := range values {
		switch kind {
		case catalog.KindBool:
			b, ok := v.(bool)
			if !ok {
				return nil, errs.NewEncodef("", errs.ErrValueOutOfRange, "element %d is not a bool", i)
			}
			if b {
				buf.MustWrite([]byte{1})
			} else {
				buf.MustWrite([]byte{0})
			}

		case catalog.KindInt8, catalog.KindInt16, catalog.KindInt32, catalog.KindInt64:
			n, ok := toInt64(v)
			if !ok {
				return nil, errs.NewEncodef("", errs.ErrValueOutOfRange, "element %d is not an integer", i)
			}
			if err := checkSignedRange(kind, n); err != nil {
				return nil, err
			}
			buf.B = appendSigned(buf.B, kind, n)

		case catalog.KindUint8, catalog.KindUint16, catalog.KindUint32, catalog.KindUint64:
			n, ok := toUint64(v)
			if !ok {
				return nil, errs.NewEncodef("", errs.ErrValueOutOfRange, "element %d is not an unsigned integer", i)
			}
			if err := checkUnsignedRange(kind, n); err != nil {
				return nil, err
			}
			buf.B = appendUnsigned(buf.B, kind, n)

		case catalog.KindTimestampMs:
			n, ok := toInt64(v)
			if !ok {
				return nil, errs.NewEncodef("", errs.ErrValueOutOfRange, "element %d is not a timestamp_ms integer", i)
			}
			buf.B = le.AppendUint64(buf.B, uint64(n))

		case catalog.KindFloat16:
			f, ok := toFloat64(v)
			if !ok {
				return nil, errs.NewEncodef("", errs.ErrValueOutOfRange, "element %d is not a float", i)
			}
			buf.B = le.AppendUint16(buf.B, float16ToBits(f))

		case catalog.KindFloat32:
			f, ok := toFloat64(v)
			if !ok {
				return nil, errs.NewEncodef("", errs.ErrValueOutOfRange, "element %d is not a float", i)
			}
			buf.B = le.AppendUint32(buf.B, math.Float32bits(float32(f)))

		case catalog.KindFloat64:
			f, ok := toFloat64(v)
			if !ok {
				return nil, errs.NewEncodef("", errs.ErrValueOutOfRange, "element %d is not a float", i)
			}
			buf.B = le.AppendUint64(buf.B, math.Float64bits(f))

		default:
			return nil, errs.NewEncode("", errs.ErrCodecAssertion)
		}
	}

	return buf.Bytes(), nil
}

// decodeNumeric unpacks a fixed-width binary-packed block back into N
// generic values, the counterpart of encodeNumeric.
func decodeNumeric(kind catalog.Kind, data []byte, n int) ([]any, error) {
	width := kind.Width()
	if len(data) != width*n {
		return nil, errs.NewDecodef("", errs.ErrBlockLengthMismatch, "want %d bytes for %d elements of width %d, got %d", width*n, n, width, len(data))
	}

	out := make([]any, n)
	for i := 0; i < n; i++ {
		chunk := data[i*width : (i+1)*width]

		switch kind {
		case catalog.KindBool:
			out[i] = chunk[0] != 0
		case catalog.KindInt8:
			out[i] = int64(int8(chunk[0]))
		case catalog.KindInt16:
			out[i] = int64(int16(le.Uint16(chunk)))
		case catalog.KindInt32:
			out[i] = int64(int32(le.Uint32(chunk)))
		case catalog.KindInt64:
			out[i] = int64(le.Uint64(chunk))
		case catalog.KindUint8:
			out[i] = uint64(chunk[0])
		case catalog.KindUint16:
			out[i] = uint64(le.Uint16(chunk))
		case catalog.KindUint32:
			out[i] = uint64(le.Uint32(chunk))
		case catalog.KindUint64:
			out[i] = le.Uint64(chunk)
		case catalog.KindTimestampMs:
			out[i] = int64(le.Uint64(chunk))
		case catalog.KindFloat16:
			out[i] = float16FromBits(le.Uint16(chunk))
		case catalog.KindFloat32:
			out[i] = float64(math.Float32frombits(le.Uint32(chunk)))
		case catalog.KindFloat64:
			out[i] = math.Float64frombits(le.Uint64(chunk))
		default:
			return nil, errs.NewDecode("", errs.ErrCodecAssertion)
		}
	}

	return out, nil
}

func checkSignedRange(kind catalog.Kind, n int64) error {
	for _, w := range catalog.SignedWidths {
		if w.Kind == kind {
			if n < w.Min || n > w.Max {
				return errs.NewEncodef("", errs.ErrValueOutOfRange, "value %d does not fit %s", n, kind)
			}

			return nil
		}
	}

	return nil
}

func checkUnsignedRange(kind catalog.Kind, n uint64) error {
	for _, w := range catalog.UnsignedWidths {
		if w.Kind == kind {
			if n > w.Max {
				return errs.NewEncodef("", errs.ErrValueOutOfRange, "value %d does not fit %s", n, kind)
			}

			return nil
		}
	}

	return nil
}

func appendSigned(buf []byte, kind catalog.Kind, n int64) []byte {
	switch kind {
	case catalog.KindInt8:
		return append(buf, byte(int8(n)))
	case catalog.KindInt16:
		return le.AppendUint16(buf, uint16(int16(n)))
	case catalog.KindInt32:
		return le.AppendUint32(buf, uint32(int32(n)))
	default:
		return le.AppendUint64(buf, uint64(n))
	}
}

func appendUnsigned(buf []byte, kind catalog.Kind, n uint64) []byte {
	switch kind {
	case catalog.KindUint8:
		return append(buf, byte(n))
	case catalog.KindUint16:
		return le.AppendUint16(buf, uint16(n))
	case catalog.KindUint32:
		return le.AppendUint32(buf, uint32(n))
	default:
		return le.AppendUint64(buf, n)
	}
}
