// Package infer implements jonx's type inference algorithm (spec.md §4.2):
// scan a column of decoded JSON values and choose one of the ~21 physical
// types in catalog, wrapping in nullable<T> when the column carries nulls.
//
// The overall shape — detect the column's JSON kind, then dispatch to a
// per-kind constructor — follows kokes-smda's typed_column.go
// (newTypedColumnFromSchema), generalized from smda's four kinds
// (string/int/float/bool) to jonx's twenty-one, with the numeric-width
// narrowing and string-dictionary-ratio rules specified directly by
// spec.md §4.2.
package infer

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonx-format/jonx/catalog"
	"github.com/jonx-format/jonx/internal/hash"
)

var (
	dateRE = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	// RFC3339-ish with optional fractional seconds and optional offset/Z.
	datetimeRE = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})?$`)
)

// enumMaxDistinct is the ceiling on distinct values for the enum kind
// (spec.md §3 invariants: "m ≤ 256 for enum").
const enumMaxDistinct = 256

// stringDictMaxRatio is the distinct/total ratio ceiling for string_dict
// (spec.md §4.2 step 6).
const stringDictMaxRatio = 0.30

// Column infers the physical type of a column of already-decoded JSON
// values. Each element must be one of: nil, bool, a number (json.Number or
// a native Go numeric kind), string, []byte, []any, or map[string]any —
// the JSON data model spec.md §6 names, plus []byte for raw binary input.
func Column(values []any) (catalog.Type, error) {
	nullable := false

	nonNull := make([]any, 0, len(values))
	for _, v := range values {
		if v == nil {
			nullable = true
			continue
		}
		nonNull = append(nonNull, v)
	}

	kind, err := classify(nonNull)
	if err != nil {
		return catalog.Type{}, err
	}

	return catalog.Type{Kind: kind, Nullable: nullable}, nil
}

// classify implements spec.md §4.2 steps 1-7 over the non-null subset V.
func classify(v []any) (catalog.Kind, error) {
	// Step 1: empty -> json (including the all-null case, since the
	// caller strips nulls before calling classify; an all-null column
	// yields nullable<json> per spec.md §4.2).
	if len(v) == 0 {
		return catalog.KindJSON, nil
	}

	// Step 2: every element boolean -> bool.
	if every(v, func(x any) bool { _, ok := x.(bool); return ok }) {
		return catalog.KindBool, nil
	}

	// Step 3: every element bytes -> binary.
	if every(v, func(x any) bool { _, ok := x.([]byte); return ok }) {
		return catalog.KindBinary, nil
	}

	// Step 4/5: numeric columns.
	if every(v, isNumberLiteral) {
		allInt := every(v, func(x any) bool {
			lit, _ := numberLiteral(x)
			return isIntegerLiteral(lit)
		})

		if allInt {
			return classifyInteger(v)
		}

		return classifyFloat(v)
	}

	// Step 6: string columns.
	if every(v, func(x any) bool { _, ok := x.(string); return ok }) {
		return classifyString(v)
	}

	// Step 7: fallback.
	return catalog.KindJSON, nil
}

func isNumberLiteral(x any) bool {
	_, ok := numberLiteral(x)
	return ok
}

func every(v []any, pred func(any) bool) bool {
	for _, x := range v {
		if !pred(x) {
			return false
		}
	}

	return true
}

func classifyInteger(v []any) (catalog.Kind, error) {
	stats := newIntStats()
	for _, x := range v {
		lit, _ := numberLiteral(x)
		stats.observe(lit)
	}

	if err := stats.err(); err != nil {
		return catalog.KindUnknown, fmt.Errorf("infer: %w", err)
	}

	if stats.hasNeg {
		for _, w := range catalog.SignedWidths {
			if stats.loSigned >= w.Min && stats.hiSigned <= w.Max {
				return w.Kind, nil
			}
		}

		return catalog.KindInt64, nil
	}

	for _, w := range catalog.UnsignedWidths {
		if stats.hiUnsigned <= w.Max {
			return w.Kind, nil
		}
	}

	return catalog.KindUint64, nil
}

func classifyFloat(v []any) (catalog.Kind, error) {
	floats := make([]float64, 0, len(v))
	for _, x := range v {
		lit, _ := numberLiteral(x)

		f, err := parseFloat(lit)
		if err != nil {
			return catalog.KindUnknown, fmt.Errorf("infer: %w", err)
		}
		floats = append(floats, f)
	}

	if every64(floats, fitsFloat16) {
		return catalog.KindFloat16, nil
	}
	if every64(floats, fitsFloat32Range) {
		return catalog.KindFloat32, nil
	}

	return catalog.KindFloat64, nil
}

func every64(v []float64, pred func(float64) bool) bool {
	for _, f := range v {
		if !pred(f) {
			return false
		}
	}

	return true
}

func classifyString(v []any) (catalog.Kind, error) {
	strs := make([]string, len(v))
	for i, x := range v {
		strs[i] = x.(string)
	}

	if every(v, func(x any) bool { return isUUID(x.(string)) }) {
		return catalog.KindUUID, nil
	}
	if every(v, func(x any) bool { return dateRE.MatchString(x.(string)) }) {
		return catalog.KindDate, nil
	}
	if every(v, func(x any) bool { return datetimeRE.MatchString(x.(string)) }) {
		return catalog.KindDatetime, nil
	}

	set := hash.NewStringSet()
	for _, s := range strs {
		set.Add(s)
	}

	distinct := set.Len()
	if distinct <= enumMaxDistinct {
		return catalog.KindEnum, nil
	}

	ratio := float64(distinct) / float64(len(strs))
	if ratio <= stringDictMaxRatio {
		return catalog.KindStringDict, nil
	}

	return catalog.KindStr, nil
}

func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil && len(s) == 36
}

// parseFloat parses a JSON number literal as float64.
func parseFloat(lit string) (float64, error) {
	return strconv.ParseFloat(lit, 64)
}

// fitsFloat16 implements spec.md §4.2 step 5's float16 heuristic: the
// value lies in [-65504, 65504] and, formatted with three fractional
// digits, round-trips to the same float64. Documented as
// implementation-defined in spec.md §9.
func fitsFloat16(f float64) bool {
	const maxFloat16 = 65504.0
	if f < -maxFloat16 || f > maxFloat16 {
		return false
	}

	s := strconv.FormatFloat(f, 'f', 3, 64)
	back, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return false
	}

	return back == f
}

// fitsFloat32Range reports whether f's magnitude fits within binary32's
// representable range (spec.md §4.2 step 5).
func fitsFloat32Range(f float64) bool {
	const maxFloat32 = 3.40282346638528859811704183484516925440e+38
	return abs(f) <= maxFloat32
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}

	return f
}
