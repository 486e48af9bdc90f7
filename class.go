package decorateall

import (
	"fmt"

	"github.com/a-peyrard/decorateall/option"
)

// ConstructorName is the method table entry holding the constructor. It is
// never selected for decoration.
const ConstructorName = "constructor"

type (
	// Entry is a method table entry. Value holds a *Function for methods and
	// any other value for plain fields.
	Entry struct {
		Name  string
		Value any
	}

	// Class is a named template for instances. It owns an ordered method table
	// and optionally extends a parent class.
	Class struct {
		name   string
		parent *Class

		names   []string
		entries map[string]Entry
	}

	ClassOptions struct {
		parent      *Class
		constructor Method
	}
)

// Extends sets the parent of the class.
func Extends(parent *Class) option.Option[ClassOptions] {
	return func(opts *ClassOptions) {
		opts.parent = parent
	}
}

// Constructor installs the constructor entry of the class.
func Constructor(constructor Method) option.Option[ClassOptions] {
	return func(opts *ClassOptions) {
		opts.constructor = constructor
	}
}

func NewClass(name string, opts ...option.Option[ClassOptions]) *Class {
	options := option.Build(&ClassOptions{}, opts...)

	c := &Class{
		name:    name,
		parent:  options.parent,
		entries: make(map[string]Entry),
	}
	if options.constructor != nil {
		c.Define(ConstructorName, options.constructor)
	}
	return c
}

// IsMethod reports whether the entry holds a callable implementation.
func (e Entry) IsMethod() bool {
	fn, ok := e.Value.(*Function)
	return ok && fn != nil
}

// Function returns the implementation held by the entry, if any.
func (e Entry) Function() (*Function, bool) {
	fn, ok := e.Value.(*Function)
	return fn, ok && fn != nil
}

func (c *Class) Name() string {
	return c.name
}

func (c *Class) Parent() *Class {
	return c.parent
}

// Ancestors lists the parents of the class, nearest first.
func (c *Class) Ancestors() []*Class {
	var ancestors []*Class
	for base := c.parent; base != nil; base = base.parent {
		ancestors = append(ancestors, base)
	}
	return ancestors
}

// IsSubclassOf reports whether other is the class itself or one of its ancestors.
func (c *Class) IsSubclassOf(other *Class) bool {
	for current := c; current != nil; current = current.parent {
		if current == other {
			return true
		}
	}
	return false
}

// Define installs a method implementation on the own table of the class.
func (c *Class) Define(name string, impl Method) *Function {
	fn := NewFunction(name, impl)
	c.Set(Entry{Name: name, Value: fn})
	return fn
}

// DefineFunction installs an existing implementation under its own name.
func (c *Class) DefineFunction(fn *Function) {
	c.Set(Entry{Name: fn.Name(), Value: fn})
}

// DefineField installs a non callable member on the own table of the class.
func (c *Class) DefineField(name string, value any) {
	c.Set(Entry{Name: name, Value: value})
}

// Set writes an entry to the own table. A new name is appended, an existing
// one is replaced in place and keeps its position.
func (c *Class) Set(entry Entry) {
	if _, exists := c.entries[entry.Name]; !exists {
		c.names = append(c.names, entry.Name)
	}
	c.entries[entry.Name] = entry
}

// OwnEntries returns a snapshot of the own method table, in definition order.
// Fields and the constructor are included.
func (c *Class) OwnEntries() []Entry {
	snapshot := make([]Entry, 0, len(c.names))
	for _, name := range c.names {
		snapshot = append(snapshot, c.entries[name])
	}
	return snapshot
}

func (c *Class) OwnEntry(name string) (entry Entry, found bool) {
	entry, found = c.entries[name]
	return entry, found
}

func (c *Class) HasOwn(name string) bool {
	_, found := c.entries[name]
	return found
}

// Lookup returns the nearest entry named name, looking at the class and then
// at its ancestors.
func (c *Class) Lookup(name string) (entry Entry, owner *Class, found bool) {
	for current := c; current != nil; current = current.parent {
		if entry, found = current.entries[name]; found {
			return entry, current, true
		}
	}
	return Entry{}, nil, false
}

// Method returns the nearest implementation named name.
func (c *Class) Method(name string) (*Function, error) {
	entry, _, found := c.Lookup(name)
	if !found {
		return nil, fmt.Errorf("%s.%s:\n\t%w", c.name, name, ErrMethodNotFound)
	}
	fn, ok := entry.Function()
	if !ok {
		return nil, fmt.Errorf("%s.%s:\n\t%w", c.name, name, ErrNotCallable)
	}
	return fn, nil
}

// New creates an instance and runs the nearest constructor with args.
func (c *Class) New(args ...any) (*Instance, error) {
	instance := &Instance{
		class:  c,
		fields: make(map[string]any),
	}

	entry, _, found := c.Lookup(ConstructorName)
	if !found {
		return instance, nil
	}
	ctor, ok := entry.Function()
	if !ok {
		return nil, fmt.Errorf("%s.%s:\n\t%w", c.name, ConstructorName, ErrNotCallable)
	}
	if _, err := ctor.Call(instance, args...); err != nil {
		return nil, fmt.Errorf("failed to construct %s:\n\t%w", c.name, err)
	}
	return instance, nil
}

// MustNew is like New but panics on error.
func (c *Class) MustNew(args ...any) *Instance {
	instance, err := c.New(args...)
	if err != nil {
		panic(err)
	}
	return instance
}

// MetadataParent makes class tags visible from subclasses.
func (c *Class) MetadataParent() any {
	if c.parent == nil {
		return nil
	}
	return c.parent
}

func (c *Class) String() string {
	if c.parent == nil {
		return fmt.Sprintf("Class(%s)", c.name)
	}
	return fmt.Sprintf("Class(%s extends %s)", c.name, c.parent.name)
}
