package hash

// StringSet is an insertion-ordered set of strings, bucketed by xxHash64 so
// that membership and index lookups compare a single uint64 per bucket
// before falling back to an exact string comparison on collision, rather
// than relying solely on Go's built-in map hashing.
//
// infer uses this to compute the distinct-value ratio for enum/string_dict
// classification (spec.md §4.2 step 6); codec's dictionary encoder uses it
// to build the first-seen-order dictionary for enum/string_dict columns
// (spec.md §4.3, §9 "Dictionary encoding").
type StringSet struct {
	buckets map[uint64][]entry
	order   []string
}

type entry struct {
	value string
	idx   int
}

// NewStringSet returns an empty StringSet.
func NewStringSet() *StringSet {
	return &StringSet{buckets: make(map[uint64][]entry)}
}

// Add inserts v if not already present, returning true iff it was newly
// added. First-seen order is preserved in Order().
func (s *StringSet) Add(v string) bool {
	h := ID(v)
	for _, e := range s.buckets[h] {
		if e.value == v {
			return false
		}
	}

	idx := len(s.order)
	s.buckets[h] = append(s.buckets[h], entry{value: v, idx: idx})
	s.order = append(s.order, v)

	return true
}

// IndexOf returns the first-seen position of v, or -1 if v was never added.
func (s *StringSet) IndexOf(v string) int {
	h := ID(v)
	for _, e := range s.buckets[h] {
		if e.value == v {
			return e.idx
		}
	}

	return -1
}

// Len returns the number of distinct strings added.
func (s *StringSet) Len() int { return len(s.order) }

// Order returns the strings in first-seen order. The returned slice must
// not be mutated by the caller.
func (s *StringSet) Order() []string { return s.order }
