package decorateall

import (
	"fmt"
)

type (
	// Method is the calling convention of every method implementation: the
	// receiving instance followed by the call arguments.
	Method func(this *Instance, args ...any) (any, error)

	// Function is a method implementation installed in a method table.
	//
	// The pointer is the identity of the implementation: two Functions are the
	// same implementation only if they are the same pointer. Metadata is keyed
	// on it.
	Function struct {
		name string
		call Method
	}
)

func NewFunction(name string, call Method) *Function {
	return &Function{
		name: name,
		call: call,
	}
}

func (f *Function) Name() string {
	return f.name
}

// Method returns the raw implementation.
func (f *Function) Method() Method {
	return f.call
}

// Call invokes the implementation with this as receiver.
//
// A panic raised by the implementation is returned as an error.
func (f *Function) Call(this *Instance, args ...any) (result any, err error) {
	if f.call == nil {
		return nil, fmt.Errorf("function %s has no implementation:\n\t%w", f.name, ErrNotCallable)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic calling %s: %v", f.name, r)
		}
	}()
	return f.call(this, args...)
}

// Wrap returns a new Function, with the same name, whose implementation is
// built from the current one.
func (f *Function) Wrap(wrapper func(next Method) Method) *Function {
	return NewFunction(f.name, wrapper(f.call))
}

func (f *Function) String() string {
	return fmt.Sprintf("Function(%s, %p)", f.name, f)
}
