package decorateall

import (
	"fmt"

	"github.com/a-peyrard/decorateall/option"
)

type (
	// MethodContext describes the method a Transform is applied to.
	MethodContext struct {
		// Class is the class the wrapped method is installed on.
		Class *Class
		// Owner is the class defining the original implementation, Class itself
		// or one of its ancestors.
		Owner *Class
		Name  string
	}

	// Transform builds a new implementation around the current one.
	Transform func(next Method, ctx MethodContext) Method
)

// Decorate adapts a Transform into a Decorator wrapping every selected method.
func Decorate(transform Transform) Decorator {
	return func(target *Class, name string, entry *Entry) error {
		fn, ok := entry.Function()
		if !ok {
			return fmt.Errorf("%s.%s:\n\t%w", target.Name(), name, ErrNotCallable)
		}
		_, owner, _ := target.Lookup(name)
		if owner == nil {
			owner = target
		}
		ctx := MethodContext{Class: target, Owner: owner, Name: name}
		entry.Value = fn.Wrap(func(next Method) Method {
			return transform(next, ctx)
		})
		return nil
	}
}

// Install wraps the nearest implementation of a single method with transform
// and installs the result on target. Exclusion options do not apply, the
// logger and metadata store options do.
func Install(target *Class, name string, transform Transform, opts ...option.Option[Options]) error {
	if target == nil {
		return ErrNilClass
	}
	if transform == nil {
		return ErrNilDecorator
	}
	entry, _, found := target.Lookup(name)
	if !found {
		return fmt.Errorf("%s.%s:\n\t%w", target.Name(), name, ErrMethodNotFound)
	}
	if name == ConstructorName {
		return fmt.Errorf("%s.%s: the constructor cannot be decorated:\n\t%w", target.Name(), name, ErrNotCallable)
	}

	options := buildOptions(opts...)
	original, ok := entry.Function()
	if !ok {
		return fmt.Errorf("%s.%s:\n\t%w", target.Name(), name, ErrNotCallable)
	}

	if err := callDecorator(Decorate(transform), target, &entry); err != nil {
		return fmt.Errorf("failed to install transform on %s.%s:\n\t%w", target.Name(), name, err)
	}
	replacement, _ := entry.Function()
	if replacement != original {
		options.store.Copy(original, replacement)
	}
	target.Set(entry)

	options.logger.Debug().
		Str("class", target.Name()).
		Str("method", name).
		Msg("Transform installed")
	return nil
}
