package index

import (
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/jonx-format/jonx/errs"
	"github.com/jonx-format/jonx/internal/pool"
)

// numberLiteral renders v as decimal text, the same shapes infer.Column and
// codec accept. Duplicated here rather than imported (index has no other
// reason to depend on either package).
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

// toInt64Slice renders values as int64 for comparison during the sort in
// Build. The backing slice comes from internal/pool's sync.Pool-backed
// int64 slice pool (the same pivot-buffer pool the teacher reserves for
// row-to-column transforms); callers must invoke the returned cleanup
// once the slice is no longer read, i.e. after sort.SliceStable returns.
func toInt64Slice(values []any) ([]int64, func(), error) {
	out, cleanup := pool.GetInt64Slice(len(values))
	for i, v := range values {
		lit, ok := numberLiteral(v)
		if !ok {
			cleanup()
			return nil, nil, errs.NewValidationf("", errs.ErrNotNumeric, "element %d is not an integer", i)
		}
		n, err := strconv.ParseInt(lit, 10, 64)
		if err != nil {
			cleanup()
			return nil, nil, errs.NewValidationf("", errs.ErrNotNumeric, "element %d: %v", i, err)
		}
		out[i] = n
	}

	return out, cleanup, nil
}

// toUint64Slice renders values as uint64. internal/pool carries no
// uint64 slice pool (only int64/float64/string), so this path allocates
// directly rather than extending the pool for a single caller.
func toUint64Slice(values []any) ([]uint64, error) {
	out := make([]uint64, len(values))
	for i, v := range values {
		lit, ok := numberLiteral(v)
		if !ok {
			return nil, errs.NewValidationf("", errs.ErrNotNumeric, "element %d is not an unsigned integer", i)
		}
		n, err := strconv.ParseUint(lit, 10, 64)
		if err != nil {
			return nil, errs.NewValidationf("", errs.ErrNotNumeric, "element %d: %v", i, err)
		}
		out[i] = n
	}

	return out, nil
}

// toFloat64Slice renders values as float64, backed by internal/pool's
// float64 slice pool (see toInt64Slice).
func toFloat64Slice(values []any) ([]float64, func(), error) {
	out, cleanup := pool.GetFloat64Slice(len(values))
	for i, v := range values {
		lit, ok := numberLiteral(v)
		if !ok {
			cleanup()
			return nil, nil, errs.NewValidationf("", errs.ErrNotNumeric, "element %d is not a float", i)
		}
		n, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			cleanup()
			return nil, nil, errs.NewValidationf("", errs.ErrNotNumeric, "element %d: %v", i, err)
		}
		out[i] = n
	}

	return out, cleanup, nil
}
