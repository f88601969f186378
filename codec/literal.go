package codec

import (
	"strconv"

	json "github.com/goccy/go-json"
)

// numberLiteral renders v as its decimal text form, accepting the same
// shapes infer.Column does: the json.Number produced by
// jsoncodec.DecodeAny, and native Go numeric kinds a caller may construct
// records with directly. Kept as an independent, small helper here (rather
// than imported from infer) since codec has no other reason to depend on
// the inference package.
func numberLiteral(v any) (string, bool) {
	switch n := v.(type) {
	case json.Number:
		return string(n), true
	case int:
		return strconv.FormatInt(int64(n), 10), true
	case int8:
		return strconv.FormatInt(int64(n), 10), true
	case int16:
		return strconv.FormatInt(int64(n), 10), true
	case int32:
		return strconv.FormatInt(int64(n), 10), true
	case int64:
		return strconv.FormatInt(n, 10), true
	case uint:
		return strconv.FormatUint(uint64(n), 10), true
	case uint8:
		return strconv.FormatUint(uint64(n), 10), true
	case uint16:
		return strconv.FormatUint(uint64(n), 10), true
	case uint32:
		return strconv.FormatUint(uint64(n), 10), true
	case uint64:
		return strconv.FormatUint(n, 10), true
	case float32:
		return strconv.FormatFloat(float64(n), 'g', -1, 64), true
	case float64:
		return strconv.FormatFloat(n, 'g', -1, 64), true
	default:
		return "", false
	}
}

func toInt64(v any) (int64, bool) {
	lit, ok := numberLiteral(v)
	if !ok {
		return 0, false
	}

	n, err := strconv.ParseInt(lit, 10, 64)
	return n, err == nil
}

func toUint64(v any) (uint64, bool) {
	lit, ok := numberLiteral(v)
	if !ok {
		return 0, false
	}

	n, err := strconv.ParseUint(lit, 10, 64)
	return n, err == nil
}

func toFloat64(v any) (float64, bool) {
	lit, ok := numberLiteral(v)
	if !ok {
		return 0, false
	}

	n, err := strconv.ParseFloat(lit, 64)
	return n, err == nil
}
