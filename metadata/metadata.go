// Package metadata stores out-of-band tags attached to objects and their
// properties.
//
// A tag is addressed by (target, property, key). The empty property
// addresses the target itself. Lookups through Get follow the Parent chain of
// targets implementing Linked, so tags defined on a class are visible from its
// instances and subclasses.
package metadata

import "sync"

type (
	// Linked is implemented by targets which inherit tags from another target.
	Linked interface {
		// MetadataParent returns the next target in the lookup chain, or nil.
		MetadataParent() any
	}

	// Store is a process-wide or local tag registry. It is safe for concurrent use.
	Store struct {
		mu      sync.RWMutex
		targets map[any]*targetTags
	}

	targetTags struct {
		properties []string
		byProperty map[string]*propertyTags
	}

	propertyTags struct {
		keys   []any
		values map[any]any
	}
)

// Default is the store used when none is given explicitly.
var Default = NewStore()

func NewStore() *Store {
	return &Store{
		targets: make(map[any]*targetTags),
	}
}

// Define records value under key for the property of target.
//
// Both target and key must be comparable, pointers are the usual targets.
func (s *Store) Define(key, value, target any, property string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.define(key, value, target, property)
}

func (s *Store) define(key, value, target any, property string) {
	tt, found := s.targets[target]
	if !found {
		tt = &targetTags{byProperty: make(map[string]*propertyTags)}
		s.targets[target] = tt
	}
	pt, found := tt.byProperty[property]
	if !found {
		pt = &propertyTags{values: make(map[any]any)}
		tt.byProperty[property] = pt
		tt.properties = append(tt.properties, property)
	}
	if _, exists := pt.values[key]; !exists {
		pt.keys = append(pt.keys, key)
	}
	pt.values[key] = value
}

// GetOwn returns the tag recorded directly on target, without following parents.
func (s *Store) GetOwn(key, target any, property string) (value any, found bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.getOwn(key, target, property)
}

func (s *Store) getOwn(key, target any, property string) (value any, found bool) {
	tt, ok := s.targets[target]
	if !ok {
		return nil, false
	}
	pt, ok := tt.byProperty[property]
	if !ok {
		return nil, false
	}
	value, found = pt.values[key]
	return value, found
}

// Get returns the tag for key, looking at target first and then at its parents.
func (s *Store) Get(key, target any, property string) (value any, found bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for current := target; current != nil; current = parentOf(current) {
		if value, found = s.getOwn(key, current, property); found {
			return value, true
		}
	}
	return nil, false
}

// Has reports whether Get would find a tag.
func (s *Store) Has(key, target any, property string) bool {
	_, found := s.Get(key, target, property)
	return found
}

// OwnKeys lists the keys recorded directly on target for property, in definition order.
func (s *Store) OwnKeys(target any, property string) []any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.ownKeys(target, property)
}

func (s *Store) ownKeys(target any, property string) []any {
	tt, ok := s.targets[target]
	if !ok {
		return nil
	}
	pt, ok := tt.byProperty[property]
	if !ok {
		return nil
	}
	keys := make([]any, len(pt.keys))
	copy(keys, pt.keys)
	return keys
}

// Keys lists the keys visible from target for property, own keys first.
func (s *Store) Keys(target any, property string) []any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		keys []any
		seen = make(map[any]struct{})
	)
	for current := target; current != nil; current = parentOf(current) {
		for _, key := range s.ownKeys(current, property) {
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			keys = append(keys, key)
		}
	}
	return keys
}

// Delete removes a single tag. It reports whether the tag existed.
func (s *Store) Delete(key, target any, property string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	tt, ok := s.targets[target]
	if !ok {
		return false
	}
	pt, ok := tt.byProperty[property]
	if !ok {
		return false
	}
	if _, exists := pt.values[key]; !exists {
		return false
	}
	delete(pt.values, key)
	for i, k := range pt.keys {
		if k == key {
			pt.keys = append(pt.keys[:i], pt.keys[i+1:]...)
			break
		}
	}
	return true
}

// Copy copies every tag recorded on src, for every property, onto dst.
// Keys and values are kept as is; existing tags on dst with the same key are
// overwritten.
func (s *Store) Copy(src, dst any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tt, ok := s.targets[src]
	if !ok || src == dst {
		return
	}
	for _, property := range tt.properties {
		pt := tt.byProperty[property]
		for _, key := range pt.keys {
			s.define(key, pt.values[key], dst, property)
		}
	}
}

func parentOf(target any) any {
	linked, ok := target.(Linked)
	if !ok {
		return nil
	}
	return linked.MetadataParent()
}

// Define records a tag in the Default store.
func Define(key, value, target any, property string) {
	Default.Define(key, value, target, property)
}

// Get reads a tag from the Default store, following parents.
func Get(key, target any, property string) (any, bool) {
	return Default.Get(key, target, property)
}

// GetOwn reads a tag from the Default store, without following parents.
func GetOwn(key, target any, property string) (any, bool) {
	return Default.GetOwn(key, target, property)
}

// Copy copies all tags of src onto dst in the Default store.
func Copy(src, dst any) {
	Default.Copy(src, dst)
}
