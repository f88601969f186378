package codec

import (
	"encoding/base64"

	"github.com/jonx-format/jonx/errs"
	"github.com/jonx-format/jonx/jsoncodec"
)

// encodeJSONList encodes a str/date/datetime/uuid/json column as a JSON
// array (spec.md §4.3: "the block is the JSON text of the value list").
//
// Grounded on the teacher's blob/text_encoder.go variable-length text
// path, generalized from mebo's tag-string payloads to an arbitrary JSON
// value list via jsoncodec rather than a length-prefixed string table.
func encodeJSONList(values []any, jc jsoncodec.JsonCodec) ([]byte, error) {
	b, err := jc.Marshal(values)
	if err != nil {
		return nil, errs.NewEncodef("", errs.ErrCodecAssertion, "marshal json list: %v", err)
	}

	return b, nil
}

// decodeJSONList decodes a JSON array block back into N generic values
// using the column's data model: strings for str/date/datetime/uuid,
// and the generic JSON data model (numbers as json.Number, nested
// maps/slices) for the json fallback kind.
func decodeJSONList(data []byte, n int, jc jsoncodec.JsonCodec) ([]any, error) {
	v, err := jc.DecodeAny(data)
	if err != nil {
		return nil, errs.NewDecodef("", errs.ErrInvalidPayload, "unmarshal json list: %v", err)
	}

	arr, ok := v.([]any)
	if !ok {
		return nil, errs.NewDecode("", errs.ErrInvalidPayload)
	}
	if len(arr) != n {
		return nil, errs.NewDecodef("", errs.ErrBlockLengthMismatch, "want %d elements, got %d", n, len(arr))
	}

	return arr, nil
}

// encodeBinary encodes a binary column as a JSON array of base64 strings
// (spec.md §4.3). jc.Marshal applies the standard library's base64-string
// convention for []byte elements, so no bespoke base64 handling is needed
// on the encode side.
func encodeBinary(values []any, jc jsoncodec.JsonCodec) ([]byte, error) {
	for i, v := range values {
		if _, ok := v.([]byte); !ok {
			return nil, errs.NewEncodef("", errs.ErrValueOutOfRange, "element %d is not bytes", i)
		}
	}

	return encodeJSONList(values, jc)
}

func decodeBinary(data []byte, n int, jc jsoncodec.JsonCodec) ([]any, error) {
	var strs []string
	if err := jc.Unmarshal(data, &strs); err != nil {
		return nil, errs.NewDecodef("", errs.ErrInvalidPayload, "unmarshal base64 list: %v", err)
	}
	if len(strs) != n {
		return nil, errs.NewDecodef("", errs.ErrBlockLengthMismatch, "want %d elements, got %d", n, len(strs))
	}

	out := make([]any, n)
	for i, s := range strs {
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, errs.NewDecodef("", errs.ErrInvalidPayload, "element %d: %v", i, err)
		}
		out[i] = b
	}

	return out, nil
}
