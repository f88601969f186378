package codec

import (
	"encoding/base64"

	"github.com/jonx-format/jonx/catalog"
	"github.com/jonx-format/jonx/errs"
	"github.com/jonx-format/jonx/jsoncodec"
)

// rawJSON passes a pre-encoded JSON value through Marshal/Unmarshal
// verbatim, the same role encoding/json.RawMessage plays in the standard
// library. It lets nullablePayload embed an already-encoded inner block
// (a JSON array/object for text-like kinds, a base64 string for
// binary-packed kinds) without double-encoding it.
type rawJSON []byte

func (r rawJSON) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("null"), nil
	}

	return r, nil
}

func (r *rawJSON) UnmarshalJSON(data []byte) error {
	*r = append((*r)[0:0], data...)
	return nil
}

// nullablePayload is the on-disk shape of a nullable<T> block (spec.md
// §4.3): a per-row null bitmap plus the dense (non-null) value block for
// the wrapped type T.
type nullablePayload struct {
	Nulls  []bool  `json:"nulls"`
	Values rawJSON `json:"values"`
}

// encodeNullable packs a column of a nullable type: it separates the null
// positions from the dense values, encodes the dense values with the
// wrapped kind's own encoder, and wraps the result per spec.md §4.3.
// Binary-packed inner kinds (every numeric/bool/timestamp_ms kind) have
// no JSON shape of their own, so their raw bytes are carried as a base64
// string inside the wrapper; text-like and dict kinds already produce
// JSON text and are embedded as-is.
func encodeNullable(innerKind catalog.Kind, values []any, jc jsoncodec.JsonCodec) ([]byte, error) {
	nulls := make([]bool, len(values))
	dense := make([]any, 0, len(values))

	for i, v := range values {
		if v == nil {
			nulls[i] = true
			continue
		}
		dense = append(dense, v)
	}

	inner, err := encodeKind(innerKind, dense, jc)
	if err != nil {
		return nil, err
	}

	var raw rawJSON
	if innerKind.IsBinaryPacked() {
		b64, err := jc.Marshal(inner)
		if err != nil {
			return nil, errs.NewEncodef("", errs.ErrCodecAssertion, "marshal inner base64: %v", err)
		}
		raw = rawJSON(b64)
	} else {
		raw = rawJSON(inner)
	}

	b, err := jc.Marshal(&nullablePayload{Nulls: nulls, Values: raw})
	if err != nil {
		return nil, errs.NewEncodef("", errs.ErrCodecAssertion, "marshal nullable payload: %v", err)
	}

	return b, nil
}

func decodeNullable(innerKind catalog.Kind, data []byte, n int, jc jsoncodec.JsonCodec) ([]any, error) {
	var payload nullablePayload
	if err := jc.Unmarshal(data, &payload); err != nil {
		return nil, errs.NewDecodef("", errs.ErrInvalidPayload, "unmarshal nullable payload: %v", err)
	}
	if len(payload.Nulls) != n {
		return nil, errs.NewDecodef("", errs.ErrBlockLengthMismatch, "want %d null flags, got %d", n, len(payload.Nulls))
	}

	denseN := 0
	for _, isNull := range payload.Nulls {
		if !isNull {
			denseN++
		}
	}

	var innerBytes []byte
	if innerKind.IsBinaryPacked() {
		var b64 string
		if err := jc.Unmarshal(payload.Values, &b64); err != nil {
			return nil, errs.NewDecodef("", errs.ErrInvalidPayload, "unmarshal inner base64: %v", err)
		}
		raw, err := base64.StdEncoding.DecodeString(b64)
		if err != nil {
			return nil, errs.NewDecodef("", errs.ErrInvalidPayload, "decode inner base64: %v", err)
		}
		innerBytes = raw
	} else {
		innerBytes = []byte(payload.Values)
	}

	dense, err := decodeKind(innerKind, innerBytes, denseN, jc)
	if err != nil {
		return nil, err
	}

	out := make([]any, n)
	di := 0
	for i, isNull := range payload.Nulls {
		if isNull {
			out[i] = nil
			continue
		}
		out[i] = dense[di]
		di++
	}

	return out, nil
}
