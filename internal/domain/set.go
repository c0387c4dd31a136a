package domain

import (
	"cmp"
	"encoding/json"
	"slices"
)

// Set is an append-only collection of unique values. It serializes as a
// sorted JSON array and rehydrates from any array, dropping duplicates.
type Set[T cmp.Ordered] struct {
	items map[T]struct{}
}

// NewSet creates a set holding the given values.
func NewSet[T cmp.Ordered](values ...T) Set[T] {
	s := Set[T]{items: make(map[T]struct{}, len(values))}
	for _, v := range values {
		s.items[v] = struct{}{}
	}
	return s
}

// Add inserts v and reports whether it was not already present.
func (s *Set[T]) Add(v T) bool {
	if s.items == nil {
		s.items = make(map[T]struct{})
	}
	if _, ok := s.items[v]; ok {
		return false
	}
	s.items[v] = struct{}{}
	return true
}

// Has reports whether v is in the set.
func (s Set[T]) Has(v T) bool {
	_, ok := s.items[v]
	return ok
}

// Len returns the number of values.
func (s Set[T]) Len() int {
	return len(s.items)
}

// Values returns the members in ascending order.
func (s Set[T]) Values() []T {
	out := make([]T, 0, len(s.items))
	for v := range s.items {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// Clone returns an independent copy.
func (s Set[T]) Clone() Set[T] {
	c := Set[T]{items: make(map[T]struct{}, len(s.items))}
	for v := range s.items {
		c.items[v] = struct{}{}
	}
	return c
}

// Equal reports whether both sets hold the same members.
func (s Set[T]) Equal(other Set[T]) bool {
	if s.Len() != other.Len() {
		return false
	}
	for v := range s.items {
		if !other.Has(v) {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the set as a sorted array.
func (s Set[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Values())
}

// UnmarshalJSON decodes an array (or null) into the set.
func (s *Set[T]) UnmarshalJSON(data []byte) error {
	var values []T
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	*s = NewSet(values...)
	return nil
}
