package decorateall

import (
	"context"
	"fmt"
	"sort"

	"github.com/a-peyrard/decorateall/option"
	"golang.org/x/sync/errgroup"
)

// DecorateClasses runs DecorateAll on every class.
//
// Classes are processed by inheritance depth: roots first, then their direct
// subclasses, and so on. Classes of the same depth cannot inherit from each
// other and are decorated concurrently; a level starts once the previous one
// is complete, so a deep pass always sees its ancestors already decorated.
// The first error stops the remaining levels.
func DecorateClasses(ctx context.Context, decorator Decorator, classes []*Class, opts ...option.Option[Options]) error {
	for _, level := range byDepth(classes) {
		if err := ctx.Err(); err != nil {
			return err
		}

		group, groupCtx := errgroup.WithContext(ctx)
		for _, class := range level {
			group.Go(func() error {
				if err := groupCtx.Err(); err != nil {
					return err
				}
				return DecorateAll(class, decorator, opts...)
			})
		}
		if err := group.Wait(); err != nil {
			return fmt.Errorf("failed to decorate classes:\n\t%w", err)
		}
	}
	return nil
}

func byDepth(classes []*Class) [][]*Class {
	levels := make(map[int][]*Class)
	seen := make(map[*Class]struct{}, len(classes))
	for _, class := range classes {
		if class == nil {
			continue
		}
		if _, dup := seen[class]; dup {
			continue
		}
		seen[class] = struct{}{}
		depth := len(class.Ancestors())
		levels[depth] = append(levels[depth], class)
	}

	depths := make([]int, 0, len(levels))
	for depth := range levels {
		depths = append(depths, depth)
	}
	sort.Ints(depths)

	ordered := make([][]*Class, 0, len(depths))
	for _, depth := range depths {
		ordered = append(ordered, levels[depth])
	}
	return ordered
}
