package set

import "sort"

// Set represents a generic set data structure
type Set[T comparable] map[T]struct{}

// New creates a new empty set
func New[T comparable]() Set[T] {
	return make(Set[T])
}

// NewFromSlice creates a new set from the given slice
func NewFromSlice[T comparable](slice []T) Set[T] {
	var s Set[T] = make(map[T]struct{}, len(slice))
	for _, elem := range slice {
		s.Add(elem)
	}
	return s
}

// Add adds a value to the set
func (s Set[T]) Add(value T) {
	s[value] = struct{}{}
}

// Contains checks if a value exists in the set
func (s Set[T]) Contains(value T) bool {
	_, exists := s[value]
	return exists
}

// Size returns the number of elements in the set
func (s Set[T]) Size() int {
	return len(s)
}

// Sorted returns the values of a string set in lexical order.
func Sorted(s Set[string]) []string {
	result := make([]string, 0, len(s))
	for value := range s {
		result = append(result, value)
	}
	sort.Strings(result)
	return result
}
