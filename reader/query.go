package reader

import (
	"bytes"

	"github.com/jonx-format/jonx/catalog"
	"github.com/jonx-format/jonx/codec"
	"github.com/jonx-format/jonx/errs"
	"github.com/jonx-format/jonx/jsoncodec"
)

// columnDecode decodes a column's raw (decompressed) block. expectedN is
// the row count already established by some other column in the file, or
// -1 if this is the first column decoded this session — in which case N
// is recovered from the block's own self-describing shape (spec.md §4.3:
// every per-type payload carries its own length, whether that is
// len(bytes)/width, a JSON array length, or a nulls-bitmap length).
func columnDecode(typ catalog.Type, raw []byte, expectedN int, jc jsoncodec.JsonCodec) ([]any, error) {
	n := expectedN
	if n < 0 {
		discovered, err := discoverRowCount(typ, raw, jc)
		if err != nil {
			return nil, err
		}
		n = discovered
	}

	return codec.Decode(typ, raw, n, jc)
}

type nullsOnly struct {
	Nulls []bool `json:"nulls"`
}

type idxOnly struct {
	Idx []int `json:"idx"`
}

func discoverRowCount(typ catalog.Type, raw []byte, jc jsoncodec.JsonCodec) (int, error) {
	if typ.Nullable {
		var payload nullsOnly
		if err := jc.Unmarshal(raw, &payload); err != nil {
			return 0, errs.NewDecodef("", errs.ErrInvalidPayload, "discovering row count: %v", err)
		}

		return len(payload.Nulls), nil
	}

	switch typ.Kind {
	case catalog.KindEnum, catalog.KindStringDict:
		var payload idxOnly
		if err := jc.Unmarshal(raw, &payload); err != nil {
			return 0, errs.NewDecodef("", errs.ErrInvalidPayload, "discovering row count: %v", err)
		}

		return len(payload.Idx), nil

	case catalog.KindStr, catalog.KindDate, catalog.KindDatetime, catalog.KindUUID,
		catalog.KindJSON, catalog.KindBinary:
		v, err := jc.DecodeAny(raw)
		if err != nil {
			return 0, errs.NewDecodef("", errs.ErrInvalidPayload, "discovering row count: %v", err)
		}
		arr, ok := v.([]any)
		if !ok {
			return 0, errs.NewDecode("", errs.ErrInvalidPayload)
		}

		return len(arr), nil

	default:
		width := typ.Kind.Width()
		if width == 0 {
			return 0, errs.NewDecodef("", errs.ErrCodecAssertion, "kind %s has no self-describing length", typ.Kind)
		}
		if len(raw)%width != 0 {
			return 0, errs.NewDecodef("", errs.ErrBlockLengthMismatch, "block of %d bytes is not a multiple of width %d", len(raw), width)
		}

		return len(raw) / width, nil
	}
}

// linearExtremum scans col for the least (wantMin) or greatest element
// under kind's natural order: numeric comparison for numeric/temporal
// kinds, lexicographic comparison for string-shaped kinds, byte
// comparison for binary, false < true for bool. json has no natural
// order and is rejected.
func linearExtremum(kind catalog.Kind, col []any, wantMin bool) (any, error) {
	less, err := extremumLess(kind)
	if err != nil {
		return nil, err
	}

	best := col[0]
	for _, v := range col[1:] {
		if wantMin == less(v, best) {
			best = v
		}
	}

	return best, nil
}

func extremumLess(kind catalog.Kind) (func(a, b any) bool, error) {
	switch {
	case kind.IsUnsignedInteger():
		return func(a, b any) bool { return a.(uint64) < b.(uint64) }, nil
	case kind.IsSignedInteger() || kind == catalog.KindTimestampMs:
		return func(a, b any) bool { return a.(int64) < b.(int64) }, nil
	case kind.IsFloat():
		return func(a, b any) bool { return a.(float64) < b.(float64) }, nil
	case kind == catalog.KindBool:
		return func(a, b any) bool { return !a.(bool) && b.(bool) }, nil
	case kind == catalog.KindBinary:
		return func(a, b any) bool { return bytes.Compare(a.([]byte), b.([]byte)) < 0 }, nil
	case kind == catalog.KindDate, kind == catalog.KindDatetime, kind == catalog.KindUUID,
		kind == catalog.KindStr, kind == catalog.KindEnum, kind == catalog.KindStringDict:
		return func(a, b any) bool { return a.(string) < b.(string) }, nil
	default:
		return nil, errs.NewValidationf("", errs.ErrNotNumeric, "kind %s has no natural order", kind)
	}
}

// sumColumn computes an exact integer sum (widened to avoid overflow) for
// integer kinds, or a float64 sum otherwise (spec.md §4.6).
func sumColumn(kind catalog.Kind, col []any) (any, error) {
	switch {
	case kind.IsUnsignedInteger():
		var sum uint64
		for _, v := range col {
			sum += v.(uint64)
		}

		return sum, nil

	case kind.IsSignedInteger() || kind == catalog.KindTimestampMs:
		var sum int64
		for _, v := range col {
			sum += v.(int64)
		}

		return sum, nil

	case kind.IsFloat():
		var sum float64
		for _, v := range col {
			sum += v.(float64)
		}

		return sum, nil

	default:
		return nil, errs.NewValidation("", errs.ErrNotNumeric)
	}
}

func toFloat64(v any) float64 {
	switch n := v.(type) {
	case int64:
		return float64(n)
	case uint64:
		return float64(n)
	case float64:
		return n
	default:
		return 0
	}
}
