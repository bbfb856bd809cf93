// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package set

// Set is an unordered collection of unique elements
type Set[T comparable] map[T]struct{}

// Of returns a Set initialized with [elts]
func Of[T comparable](elts ...T) Set[T] {
	s := NewSet[T](len(elts))
	s.Add(elts...)
	return s
}

// NewSet returns a new set with initial capacity [size]
func NewSet[T comparable](size int) Set[T] {
	return make(Set[T], size)
}

// Add all the elements to this set.
// If the element is already in the set, nothing happens.
func (s Set[T]) Add(elts ...T) {
	for _, elt := range elts {
		s[elt] = struct{}{}
	}
}

// Insert adds [elt] and reports whether it was absent
func (s Set[T]) Insert(elt T) bool {
	if s.Contains(elt) {
		return false
	}
	s[elt] = struct{}{}
	return true
}

// Remove all the given elements from this set.
func (s Set[T]) Remove(elts ...T) {
	for _, elt := range elts {
		delete(s, elt)
	}
}

// Contains returns true iff the set contains this element.
func (s Set[T]) Contains(elt T) bool {
	_, ok := s[elt]
	return ok
}

// Len returns the number of elements in this set.
func (s Set[T]) Len() int {
	return len(s)
}

// List converts this set into a list in unspecified order
func (s Set[T]) List() []T {
	elts := make([]T, 0, len(s))
	for elt := range s {
		elts = append(elts, elt)
	}
	return elts
}

// Clear empties this set
func (s Set[T]) Clear() {
	clear(s)
}
