package decorateall

import (
	"fmt"

	"github.com/a-peyrard/decorateall/metadata"
)

// Instance is an object created from a Class.
type Instance struct {
	class  *Class
	fields map[string]any
}

func (i *Instance) Class() *Class {
	return i.class
}

// Get returns the value of a field. Instance fields shadow non callable
// members of the class table.
func (i *Instance) Get(field string) (value any, found bool) {
	if value, found = i.fields[field]; found {
		return value, true
	}
	entry, _, found := i.class.Lookup(field)
	if !found || entry.IsMethod() {
		return nil, false
	}
	return entry.Value, true
}

// GetString returns a field as a string, or the empty string.
func (i *Instance) GetString(field string) string {
	value, _ := i.Get(field)
	str, _ := value.(string)
	return str
}

func (i *Instance) Set(field string, value any) {
	i.fields[field] = value
}

// Call invokes the nearest method named name.
func (i *Instance) Call(name string, args ...any) (any, error) {
	fn, err := i.class.Method(name)
	if err != nil {
		return nil, err
	}
	return fn.Call(i, args...)
}

// MustCall is like Call but panics on error.
func (i *Instance) MustCall(name string, args ...any) any {
	result, err := i.Call(name, args...)
	if err != nil {
		panic(fmt.Sprintf("failed to call %s.%s:\n\t%v", i.class.name, name, err))
	}
	return result
}

// Metadata reads the tag key of the member name from the Default store.
// See MetadataFrom.
func (i *Instance) Metadata(key any, name string) (any, bool) {
	return i.MetadataFrom(metadata.Default, key, name)
}

// MetadataFrom reads the tag key of the member name: the tags of the nearest
// implementation first, then the tags recorded for the name on the class
// chain.
func (i *Instance) MetadataFrom(store *metadata.Store, key any, name string) (any, bool) {
	if entry, _, found := i.class.Lookup(name); found {
		if fn, ok := entry.Function(); ok {
			if value, found := store.Get(key, fn, ""); found {
				return value, true
			}
		}
	}
	return store.Get(key, i, name)
}

// MetadataParent makes class tags visible from the instance.
func (i *Instance) MetadataParent() any {
	return i.class
}
