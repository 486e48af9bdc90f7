package decorateall

import (
	"fmt"

	"github.com/a-peyrard/decorateall/option"
)

// Decorator is a method-level behavior modifier. It receives the class being
// decorated, the method name and a copy of the method table entry, and may
// replace entry.Value with a new *Function. Leaving it untouched is allowed.
type Decorator func(target *Class, name string, entry *Entry) error

// DecorateAll applies decorator to every method of target selected by the
// options, and installs the results on target.
//
// Tags of a replaced implementation are copied onto its replacement. Entries
// coming from ancestors are installed on target, ancestors are never
// modified. The pass stops at the first failing decorator; methods wrapped
// before the failure stay wrapped.
func DecorateAll(target *Class, decorator Decorator, opts ...option.Option[Options]) error {
	if target == nil {
		return ErrNilClass
	}
	if decorator == nil {
		return ErrNilDecorator
	}

	options := buildOptions(opts...)
	logger := options.logger.With().Str("class", target.Name()).Logger()
	logger.Debug().
		Bool("deep", options.deep).
		Strs("exclude", options.Policy().Exclude).
		Str("excludePrefix", options.excludePrefix).
		Msg("Decorating class")

	wrapped := 0
	for _, entry := range Collect(target, options.deep) {
		logger := logger.With().Str("method", entry.Name).Logger()
		if reason, skipped := options.skip(entry); skipped {
			logger.Debug().Str("reason", string(reason)).Msg("Skipping member")
			continue
		}

		name := entry.Name
		original, _ := entry.Function()
		if err := callDecorator(decorator, target, &entry); err != nil {
			logger.Error().Err(err).Msg("Decorator failed")
			return fmt.Errorf("failed to decorate method %s of class %s:\n\t%w", entry.Name, target.Name(), err)
		}

		replacement, isFunction := entry.Value.(*Function)
		switch {
		case isFunction && replacement == original:
			logger.Debug().Msg("Method left as is")
		case isFunction && replacement != nil:
			options.store.Copy(original, replacement)
			wrapped++
			logger.Debug().Msg("Method wrapped")
		default:
			wrapped++
			logger.Warn().Msgf("Decorator replaced the method with a %T", entry.Value)
		}

		entry.Name = name
		target.Set(entry)
	}

	logger.Debug().Int("wrapped", wrapped).Msg("Class decorated")
	return nil
}

// MustDecorateAll is like DecorateAll but panics on error. It returns target
// so it can be used where the class is declared.
func MustDecorateAll(target *Class, decorator Decorator, opts ...option.Option[Options]) *Class {
	if err := DecorateAll(target, decorator, opts...); err != nil {
		panic(fmt.Sprintf("failed to decorate class:\n\t%v", err))
	}
	return target
}

func callDecorator(decorator Decorator, target *Class, entry *Entry) (err error) {
	// panic recovery, the decorator is user code
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in decorator: %v", r)
		}
	}()
	return decorator(target, entry.Name, entry)
}
