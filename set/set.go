package set

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"sync"
)

type Set[T comparable] struct {
	m  map[T]struct{}
	mu sync.RWMutex
}

// Ensure Set satisfies set.Interface at compile-time.
var _ Interface[string] = (*Set[string])(nil)

// NewSet returns a set initialized with the provided items. Duplicate items
// collapse into one.
func NewSet[T comparable](items ...T) Interface[T] {
	s := newSet[T](len(items))

	for _, item := range items {
		s.m[item] = struct{}{}
	}

	return s
}

func newSet[T comparable](size int) *Set[T] {
	return &Set[T]{
		m: make(map[T]struct{}, size),
	}
}

// Add an item to the set.
func (s *Set[T]) Add(item T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.m)
	s.m[item] = struct{}{}

	return before != len(s.m)
}

// Remove an item from the set.
func (s *Set[T]) Remove(item T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.m)
	delete(s.m, item)

	return before != len(s.m)
}

// Clear removes all items from the set.
func (s *Set[T]) Clear() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.m = make(map[T]struct{})

	return len(s.m) == 0
}

// Contains determines whether the provided items are in the set.
func (s *Set[T]) Contains(items ...T) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range items {
		if !s.contains(item) {
			return false
		}
	}

	return true
}

// Length returns the number of items in the set.
func (s *Set[T]) Length() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.m)
}

// ForEach iterates over a snapshot of the items and executes the provided
// function against each item until it returns true.
func (s *Set[T]) ForEach(fn func(T) bool) {
	for _, item := range s.ToSlice() {
		if fn(item) {
			break
		}
	}
}

// String provides a string representation of the set. Items are sorted by
// their printed form so equal sets print identically.
func (s *Set[T]) String() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]string, 0, len(s.m))

	for item := range s.m {
		items = append(items, fmt.Sprint(item))
	}

	slices.Sort(items)

	return fmt.Sprintf("Set{%s}", strings.Join(items, ", "))
}

// ToSlice returns the set as a slice.
func (s *Set[T]) ToSlice() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]T, 0, len(s.m))

	for item := range s.m {
		items = append(items, item)
	}

	return items
}

// Clone returns a shallow copy of the set.
func (s *Set[T]) Clone() Interface[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := newSet[T](len(s.m))

	for item := range s.m {
		result.m[item] = struct{}{}
	}

	return result
}

// IsSuperSet determines if every item in the provided set is in this set.
func (s *Set[T]) IsSuperSet(other Interface[T]) bool {
	items := other.ToSlice()

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range items {
		if !s.contains(item) {
			return false
		}
	}

	return true
}

// IsSubSet determines if every item in this set is in the provided set.
func (s *Set[T]) IsSubSet(other Interface[T]) bool {
	return other.IsSuperSet(s)
}

// Equal determines if the two sets are equal.
//
// Note: If both sets have the same number of items and contain the same
// items, they're equal. Order is irrelevant.
func (s *Set[T]) Equal(other Interface[T]) bool {
	items := other.ToSlice()

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.m) != len(items) {
		return false
	}

	for _, item := range items {
		if !s.contains(item) {
			return false
		}
	}

	return true
}

// Intersect returns a new set containing only the items that exist in both
// sets.
func (s *Set[T]) Intersect(other Interface[T]) Interface[T] {
	items := other.ToSlice()

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := newSet[T](min(len(items), len(s.m)))

	for _, item := range items {
		if s.contains(item) {
			result.m[item] = struct{}{}
		}
	}

	return result
}

// Difference returns a new set with items contained in this set that are not
// present in the provided set.
func (s *Set[T]) Difference(other Interface[T]) Interface[T] {
	exclude := members(other)

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := newSet[T](len(s.m))

	for item := range s.m {
		if _, ok := exclude[item]; !ok {
			result.m[item] = struct{}{}
		}
	}

	return result
}

// Union returns a new set with all items which are in either set.
func (s *Set[T]) Union(other Interface[T]) Interface[T] {
	items := other.ToSlice()
	result := s.Clone().(*Set[T])

	for _, item := range items {
		result.m[item] = struct{}{}
	}

	return result
}

// SymmetricDifference returns a new set with all items which are in either set,
// but not both.
func (s *Set[T]) SymmetricDifference(other Interface[T]) Interface[T] {
	others := members(other)

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := newSet[T](len(s.m) + len(others))

	for item := range s.m {
		if _, ok := others[item]; !ok {
			result.m[item] = struct{}{}
		}
	}

	for item := range others {
		if !s.contains(item) {
			result.m[item] = struct{}{}
		}
	}

	return result
}

func (s *Set[T]) contains(item T) bool {
	_, ok := s.m[item]
	return ok
}

// members copies the items of a set into a lookup table so that it can be
// consulted while another set's lock is held, including when both are the
// same set.
func members[T comparable](other Interface[T]) map[T]struct{} {
	items := other.ToSlice()
	m := make(map[T]struct{}, len(items))

	for _, item := range items {
		m[item] = struct{}{}
	}

	return m
}

// Intersection returns a new set holding the items present in every provided
// set. It returns an empty set when called without sets.
func Intersection[T comparable](sets ...Interface[T]) Interface[T] {
	if len(sets) == 0 {
		return NewSet[T]()
	}

	// Start from the smallest set so the running result only ever shrinks
	// from the smallest possible size.
	ordered := slices.Clone(sets)
	slices.SortFunc(ordered, func(a, b Interface[T]) int {
		return cmp.Compare(a.Length(), b.Length())
	})

	result := ordered[0].Clone()

	for _, s := range ordered[1:] {
		if result.Length() == 0 {
			break
		}

		result = result.Intersect(s)
	}

	return result
}

// Union returns a new set holding the items present in any provided set.
func Union[T comparable](sets ...Interface[T]) Interface[T] {
	result := newSet[T](0)

	for _, s := range sets {
		s.ForEach(func(item T) bool {
			result.m[item] = struct{}{}
			return false
		})
	}

	return result
}

// Sorted returns the items of the set in ascending order.
func Sorted[T cmp.Ordered](s Interface[T]) []T {
	items := s.ToSlice()
	slices.Sort(items)
	return items
}
