// Package index builds the sorted-ordinal permutation jonx stores
// alongside every indexable column (spec.md §4.4): a stable argsort letting
// reader.FindMin/FindMax resolve extrema in O(1) after one decompression
// instead of a full linear scan.
//
// Grounded on the teacher's section/numeric_index_entry.go, which carries
// the same idea (a compact index over a numeric blob) for a different
// purpose (byte offsets into a multi-metric blob rather than a value
// permutation); the stable-sort contract itself is spec.md §3/§8's, not
// the teacher's.
package index

import (
	"sort"

	"github.com/jonx-format/jonx/catalog"
	"github.com/jonx-format/jonx/errs"
	"github.com/jonx-format/jonx/internal/pool"
)

// Build computes P = argsort(values) for an indexable, non-nullable
// column: P is a permutation of [0,len(values)) such that reading values
// through P is non-decreasing, with ties broken by ascending original
// position (spec.md §4.4, §8 "Index correctness").
//
// Build returns (nil, nil) for non-indexable or nullable types — spec.md
// is explicit that nullable<T> never gets an index even when T would
// otherwise qualify, since null has no total order relative to T's values.
func Build(values []any, typ catalog.Type) ([]uint32, error) {
	if typ.Nullable || !typ.Kind.IsIndexable() {
		return nil, nil
	}

	less, cleanup, err := lessFunc(typ.Kind, values)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	perm := make([]uint32, len(values))
	for i := range perm {
		perm[i] = uint32(i)
	}

	sort.SliceStable(perm, func(a, b int) bool {
		return less(int(perm[a]), int(perm[b]))
	})

	return perm, nil
}

// lessFunc returns a comparison closure over values plus a cleanup that
// must run once the sort is done with it (the backing slice, for kinds
// that route through internal/pool, is borrowed from a sync.Pool and must
// be returned).
func lessFunc(kind catalog.Kind, values []any) (less func(a, b int) bool, cleanup func(), err error) {
	switch {
	case kind == catalog.KindDate || kind == catalog.KindDatetime:
		strs, cleanup := pool.GetStringSlice(len(values))
		for i, v := range values {
			s, ok := v.(string)
			if !ok {
				cleanup()
				return nil, nil, errs.NewValidationf("", errs.ErrNotNumeric, "element %d is not a string", i)
			}
			strs[i] = s
		}

		return func(a, b int) bool { return strs[a] < strs[b] }, cleanup, nil

	case kind.IsUnsignedInteger():
		nums, err := toUint64Slice(values)
		if err != nil {
			return nil, nil, err
		}

		return func(a, b int) bool { return nums[a] < nums[b] }, func() {}, nil

	case kind.IsSignedInteger() || kind == catalog.KindTimestampMs:
		nums, cleanup, err := toInt64Slice(values)
		if err != nil {
			return nil, nil, err
		}

		return func(a, b int) bool { return nums[a] < nums[b] }, cleanup, nil

	case kind.IsFloat():
		nums, cleanup, err := toFloat64Slice(values)
		if err != nil {
			return nil, nil, err
		}

		return func(a, b int) bool { return nums[a] < nums[b] }, cleanup, nil

	default:
		return nil, nil, errs.NewValidationf("", errs.ErrNotNumeric, "kind %s has no natural order", kind)
	}
}
