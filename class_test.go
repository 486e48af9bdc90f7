package decorateall

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClass(t *testing.T) {
	t.Run("it should list ancestors nearest first", func(t *testing.T) {
		// GIVEN
		base := NewClass("Base")
		middle := NewClass("Middle", Extends(base))
		leaf := NewClass("Leaf", Extends(middle))

		// WHEN
		ancestors := leaf.Ancestors()

		// THEN
		assert.Equal(t, []*Class{middle, base}, ancestors)
		assert.Empty(t, base.Ancestors())
		assert.True(t, leaf.IsSubclassOf(base))
		assert.True(t, leaf.IsSubclassOf(leaf))
		assert.False(t, base.IsSubclassOf(leaf))
		assert.Equal(t, "Class(Leaf extends Middle)", leaf.String())
		assert.Equal(t, "Class(Base)", base.String())
	})

	t.Run("it should keep the position of a redefined entry", func(t *testing.T) {
		// GIVEN
		class := NewClass("Ordered")
		class.Define("a", concat)
		class.Define("b", concat)

		// WHEN
		replacement := class.Define("a", concat)

		// THEN
		entries := class.OwnEntries()
		require.Len(t, entries, 2)
		assert.Equal(t, "a", entries[0].Name)
		assert.Same(t, replacement, entries[0].Value)
	})

	t.Run("it should return a snapshot of the own table", func(t *testing.T) {
		// GIVEN
		class := NewClass("Snapshot")
		class.DefineField("field", 1)

		// WHEN
		entries := class.OwnEntries()
		entries[0].Value = 2

		// THEN
		entry, found := class.OwnEntry("field")
		require.True(t, found)
		assert.Equal(t, 1, entry.Value)
	})

	t.Run("it should resolve the nearest member", func(t *testing.T) {
		// GIVEN
		base := newMessageClass("Base", "a", "b")
		leaf := NewClass("Leaf", Extends(base))
		own := leaf.Define("b", concat)

		// WHEN
		fromBase, err := leaf.Method("a")
		require.NoError(t, err)
		fromLeaf, err := leaf.Method("b")
		require.NoError(t, err)
		_, owner, found := leaf.Lookup("a")

		// THEN
		baseA, _ := base.Method("a")
		assert.Same(t, baseA, fromBase)
		assert.Same(t, own, fromLeaf)
		assert.True(t, found)
		assert.Same(t, base, owner)
	})

	t.Run("it should report missing and non callable members", func(t *testing.T) {
		// GIVEN
		class := NewClass("Members")
		class.DefineField("field", 1)

		// WHEN
		_, missingErr := class.Method("missing")
		_, fieldErr := class.Method("field")

		// THEN
		assert.ErrorIs(t, missingErr, ErrMethodNotFound)
		assert.ErrorIs(t, fieldErr, ErrNotCallable)
	})
}

func TestInstance(t *testing.T) {
	t.Run("it should run the inherited constructor", func(t *testing.T) {
		// GIVEN
		base := newMessageClass("Base", "a")
		leaf := NewClass("Leaf", Extends(base))

		// WHEN
		instance, err := leaf.New("test")

		// THEN
		require.NoError(t, err)
		assert.Same(t, leaf, instance.Class())
		assert.Equal(t, "test", instance.GetString("message"))
	})

	t.Run("it should create instances of classes without constructor", func(t *testing.T) {
		// WHEN
		instance, err := NewClass("Bare").New()

		// THEN
		require.NoError(t, err)
		_, found := instance.Get("message")
		assert.False(t, found)
	})

	t.Run("it should fail when the constructor fails", func(t *testing.T) {
		// GIVEN
		boom := errors.New("boom")
		class := NewClass("Failing", Constructor(func(*Instance, ...any) (any, error) {
			return nil, boom
		}))

		// WHEN
		_, err := class.New()

		// THEN
		assert.ErrorIs(t, err, boom)
		assert.Panics(t, func() { class.MustNew() })
	})

	t.Run("it should shadow class fields with instance fields", func(t *testing.T) {
		// GIVEN
		class := NewClass("Fields")
		class.DefineField("greeting", "hello")
		class.Define("greet", concat)
		instance := class.MustNew()

		// WHEN
		before, _ := instance.Get("greeting")
		instance.Set("greeting", "bonjour")
		after, _ := instance.Get("greeting")
		_, methodFound := instance.Get("greet")

		// THEN
		assert.Equal(t, "hello", before)
		assert.Equal(t, "bonjour", after)
		assert.False(t, methodFound)
	})

	t.Run("it should report call errors", func(t *testing.T) {
		// GIVEN
		class := NewClass("Calls")
		class.Define("explode", func(*Instance, ...any) (any, error) { panic("kaboom") })
		instance := class.MustNew()

		// WHEN
		_, missingErr := instance.Call("missing")
		_, panicErr := instance.Call("explode")

		// THEN
		assert.ErrorIs(t, missingErr, ErrMethodNotFound)
		require.Error(t, panicErr)
		assert.Contains(t, panicErr.Error(), "panic calling explode: kaboom")
		assert.Panics(t, func() { instance.MustCall("missing") })
	})
}
