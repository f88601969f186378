// Package codec implements the per-column block encoding contract from
// spec.md §4.3: binary-packed little-endian blocks for fixed-width
// numeric/bool/timestamp_ms kinds, JSON-array text blocks for
// str/date/datetime/uuid/json, a dictionary object for enum/string_dict,
// and a null-bitmap wrapper for nullable<T>.
//
// Grounded on the teacher's blob/numeric_encoder.go and
// blob/text_encoder.go column codecs, adapted from mebo's delta/Gorilla
// metric encoding to jonx's plain typed block contract.
package codec

import (
	"github.com/jonx-format/jonx/catalog"
	"github.com/jonx-format/jonx/errs"
	"github.com/jonx-format/jonx/jsoncodec"
)

// Encode packs a column's values into its on-disk block per typ. values
// must already be homogeneous with typ (the caller runs them through
// infer.Column first); Encode does not re-infer, only validates shape.
func Encode(typ catalog.Type, values []any, jc jsoncodec.JsonCodec) ([]byte, error) {
	if typ.Nullable {
		return encodeNullable(typ.Kind, values, jc)
	}

	return encodeKind(typ.Kind, values, jc)
}

// Decode unpacks a column block back into N generic values per typ.
func Decode(typ catalog.Type, data []byte, n int, jc jsoncodec.JsonCodec) ([]any, error) {
	if typ.Nullable {
		return decodeNullable(typ.Kind, data, n, jc)
	}

	return decodeKind(typ.Kind, data, n, jc)
}

func encodeKind(kind catalog.Kind, values []any, jc jsoncodec.JsonCodec) ([]byte, error) {
	switch {
	case kind.IsBinaryPacked():
		return encodeNumeric(kind, values)
	case kind == catalog.KindBinary:
		return encodeBinary(values, jc)
	case kind == catalog.KindEnum || kind == catalog.KindStringDict:
		return encodeDict(values, jc)
	case kind == catalog.KindStr, kind == catalog.KindDate, kind == catalog.KindDatetime,
		kind == catalog.KindUUID, kind == catalog.KindJSON:
		return encodeJSONList(values, jc)
	default:
		return nil, errs.NewEncodef("", errs.ErrCodecAssertion, "unsupported kind %s", kind)
	}
}

func decodeKind(kind catalog.Kind, data []byte, n int, jc jsoncodec.JsonCodec) ([]any, error) {
	switch {
	case kind.IsBinaryPacked():
		return decodeNumeric(kind, data, n)
	case kind == catalog.KindBinary:
		return decodeBinary(data, n, jc)
	case kind == catalog.KindEnum || kind == catalog.KindStringDict:
		return decodeDict(data, n, jc)
	case kind == catalog.KindStr, kind == catalog.KindDate, kind == catalog.KindDatetime,
		kind == catalog.KindUUID, kind == catalog.KindJSON:
		return decodeJSONList(data, n, jc)
	default:
		return nil, errs.NewDecodef("", errs.ErrCodecAssertion, "unsupported kind %s", kind)
	}
}
