package decorateall

import (
	"github.com/a-peyrard/decorateall/metadata"
)

type helloFixture struct {
	store *metadata.Store

	hello                      *Class
	decoratedHello             *Class
	extendedHello              *Class
	deepExtendedHello          *Class
	deepExtendedExcludedHello  *Class
	excludedHello              *Class
	extendedDecoratedHello     *Class
	excludePrefixHello         *Class
	extendedExcludePrefixHello *Class
}

func concat(this *Instance, args ...any) (any, error) {
	return this.GetString("message") + args[0].(string), nil
}

func messageConstructor(this *Instance, args ...any) (any, error) {
	this.Set("message", args[0])
	return nil, nil
}

// appendString wraps a method so its argument gets mark appended before the
// wrapped implementation runs.
func appendString(mark string) Decorator {
	return func(_ *Class, _ string, entry *Entry) error {
		original, _ := entry.Function()
		next := original.Method()
		entry.Value = NewFunction(original.Name(), func(this *Instance, args ...any) (any, error) {
			return next(this, args[0].(string)+mark)
		})
		return nil
	}
}

func newMessageClass(name string, methods ...string) *Class {
	class := NewClass(name, Constructor(messageConstructor))
	for _, method := range methods {
		class.Define(method, concat)
	}
	return class
}

func newHelloFixture() *helloFixture {
	f := &helloFixture{store: metadata.NewStore()}
	withStore := WithMetadataStore(f.store)

	f.hello = newMessageClass("Hello", "a", "b", "c")
	f.store.Define("name", "Hello", f.hello, "")
	f.tagMethod(f.hello, "a", "Hello.a")

	f.decoratedHello = newMessageClass("DecoratedHello", "a", "b", "c")
	f.tagMethod(f.decoratedHello, "a", "DecoratedHello.a")
	MustDecorateAll(f.decoratedHello, appendString("!"), withStore)

	f.extendedHello = NewClass("ExtendedHello", Extends(f.hello))
	f.extendedHello.Define("c", concat)
	MustDecorateAll(f.extendedHello, appendString("!"), withStore)

	f.deepExtendedHello = NewClass("DeepExtendedHello", Extends(f.hello))
	f.deepExtendedHello.Define("c", concat)
	MustDecorateAll(f.deepExtendedHello, appendString("!"), Deep(), withStore)

	f.deepExtendedExcludedHello = NewClass("DeepExtendedExcludedHello", Extends(f.hello))
	MustDecorateAll(f.deepExtendedExcludedHello, appendString("?"), Deep(), Exclude("b"), withStore)

	f.excludedHello = newMessageClass("ExcludedHello", "a", "b", "c")
	MustDecorateAll(f.excludedHello, appendString("?"), Exclude("b"), withStore)

	f.extendedDecoratedHello = NewClass("ExtendedDecoratedHello", Extends(f.extendedHello))
	MustDecorateAll(f.extendedDecoratedHello, appendString("?"), Deep(), Exclude("b"), withStore)

	f.excludePrefixHello = newMessageClass("ExcludePrefixHello", "_a", "b")
	MustDecorateAll(f.excludePrefixHello, appendString("?"), ExcludePrefix("_"), withStore)

	f.extendedExcludePrefixHello = NewClass("ExtendedExcludePrefixHello", Extends(f.excludePrefixHello))
	f.extendedExcludePrefixHello.Define("PRIVATE_c", concat)
	MustDecorateAll(
		f.extendedExcludePrefixHello,
		appendString("!"),
		ExcludePrefix("PRIVATE"),
		Deep(),
		Exclude("_a"),
		withStore,
	)

	return f
}

func (f *helloFixture) tagMethod(class *Class, name string, value any) {
	fn, err := class.Method(name)
	if err != nil {
		panic(err)
	}
	f.store.Define("name", value, fn, "")
}

func call(instance *Instance, name string, arg string) any {
	return instance.MustCall(name, arg)
}
