package catalog

import (
	"cmp"
	"slices"
)

// Set is an unordered collection of filter values. The empty set places no
// constraint on its dimension.
type Set[T comparable] map[T]struct{}

func NewSet[T comparable](items ...T) Set[T] {
	s := make(Set[T], len(items))
	for _, it := range items {
		s[it] = struct{}{}
	}
	return s
}

func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}

// allows reports whether v passes the set as a filter.
func (s Set[T]) allows(v T) bool {
	return len(s) == 0 || s.Has(v)
}

// Sorted returns the members in ascending order.
func Sorted[T cmp.Ordered](s Set[T]) []T {
	out := make([]T, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}
