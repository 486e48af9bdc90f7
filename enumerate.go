package decorateall

import (
	"strings"

	"github.com/a-peyrard/decorateall/option"
	"github.com/a-peyrard/decorateall/slices"
)

type skipReason string

const (
	skipConstructor skipReason = "constructor"
	skipNotCallable skipReason = "not callable"
	skipExcluded    skipReason = "excluded"
	skipPrefix      skipReason = "excluded prefix"
)

// Collect returns the own entries of target and, when deep is set, the
// entries of every ancestor. A name already collected from a more specific
// class is never replaced by an ancestor's entry, so each name appears once,
// with its nearest definition.
func Collect(target *Class, deep bool) []Entry {
	collected := target.OwnEntries()
	if !deep {
		return collected
	}

	seen := make(map[string]struct{}, len(collected))
	for _, entry := range collected {
		seen[entry.Name] = struct{}{}
	}
	for _, base := range target.Ancestors() {
		for _, entry := range base.OwnEntries() {
			if _, shadowed := seen[entry.Name]; shadowed {
				continue
			}
			seen[entry.Name] = struct{}{}
			collected = append(collected, entry)
		}
	}
	return collected
}

// Select keeps the entries eligible for decoration, in order.
func Select(entries []Entry, opts ...option.Option[Options]) []Entry {
	return buildOptions(opts...).selectEntries(entries)
}

// Candidates returns the entries a decoration pass on target would wrap.
func Candidates(target *Class, opts ...option.Option[Options]) []Entry {
	options := buildOptions(opts...)
	return options.selectEntries(Collect(target, options.deep))
}

func (o *Options) selectEntries(entries []Entry) []Entry {
	return slices.Filter(entries, func(entry Entry) bool {
		_, skipped := o.skip(entry)
		return !skipped
	})
}

func (o *Options) skip(entry Entry) (reason skipReason, skipped bool) {
	switch {
	case entry.Name == ConstructorName:
		return skipConstructor, true
	case !entry.IsMethod():
		return skipNotCallable, true
	case o.exclude.Contains(entry.Name):
		return skipExcluded, true
	case o.excludePrefix != "" && strings.HasPrefix(entry.Name, o.excludePrefix):
		return skipPrefix, true
	}
	return "", false
}
