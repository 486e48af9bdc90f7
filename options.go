package decorateall

import (
	"github.com/a-peyrard/decorateall/config"
	"github.com/a-peyrard/decorateall/metadata"
	"github.com/a-peyrard/decorateall/option"
	"github.com/a-peyrard/decorateall/set"
	"github.com/rs/zerolog"
)

type (
	// Options selects which methods a decoration pass wraps, and with which
	// collaborators.
	Options struct {
		deep          bool
		exclude       set.Set[string]
		excludePrefix string

		store  *metadata.Store
		logger *zerolog.Logger
	}
)

func defaultOptions() *Options {
	nop := zerolog.Nop()
	return &Options{
		exclude: set.New[string](),
		store:   metadata.Default,
		logger:  &nop,
	}
}

func buildOptions(opts ...option.Option[Options]) *Options {
	return option.Build(defaultOptions(), opts...)
}

// Deep also decorates the methods inherited from ancestors.
func Deep() option.Option[Options] {
	return DeepIf(true)
}

func DeepIf(deep bool) option.Option[Options] {
	return func(opts *Options) {
		opts.deep = deep
	}
}

// Exclude skips the given method names, at every level of the chain.
// Repeated calls accumulate.
func Exclude(names ...string) option.Option[Options] {
	return func(opts *Options) {
		for _, name := range names {
			opts.exclude.Add(name)
		}
	}
}

// ExcludePrefix skips every method whose name starts with prefix. An empty
// prefix disables the rule.
func ExcludePrefix(prefix string) option.Option[Options] {
	return func(opts *Options) {
		opts.excludePrefix = prefix
	}
}

// WithMetadataStore sets the store tags are copied in. Defaults to metadata.Default.
func WithMetadataStore(store *metadata.Store) option.Option[Options] {
	return func(opts *Options) {
		if store != nil {
			opts.store = store
		}
	}
}

func WithLogger(logger *zerolog.Logger) option.Option[Options] {
	return func(opts *Options) {
		if logger != nil {
			opts.logger = logger
		}
	}
}

// FromPolicy applies a loaded policy.
func FromPolicy(policy *config.Policy) option.Option[Options] {
	if policy == nil {
		return nil
	}
	return option.Compose(
		DeepIf(policy.Deep),
		Exclude(policy.Exclude...),
		ExcludePrefix(policy.ExcludePrefix),
	)
}

// Policy returns the serializable form of the options.
func (o *Options) Policy() config.Policy {
	return config.Policy{
		Deep:          o.deep,
		Exclude:       set.Sorted(o.exclude),
		ExcludePrefix: o.excludePrefix,
	}
}
