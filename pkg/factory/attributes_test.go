package factory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttributes_Set_KeepsInsertionOrder(t *testing.T) {
	t.Parallel()

	a := NewAttributes().Set("b", 1).Set("a", 2).Set("c", 3)

	assert.Equal(t, []string{"b", "a", "c"}, a.Keys())
	assert.Equal(t, 3, a.Len())
}

func TestAttributes_Set_OverwriteKeepsPosition(t *testing.T) {
	t.Parallel()

	a := Fields("first", 1, "second", 2)
	a.Set("first", "one")

	assert.Equal(t, []string{"first", "second"}, a.Keys())
	v, ok := a.Get("first")
	require.True(t, ok)
	assert.Equal(t, "one", v)
}

func TestAttributes_Delete(t *testing.T) {
	t.Parallel()

	a := Fields("a", 1, "b", 2, "c", 3)
	a.Delete("b")
	a.Delete("missing")

	assert.Equal(t, []string{"a", "c"}, a.Keys())
	assert.False(t, a.Has("b"))
}

func TestAttributes_Merge_OtherWins(t *testing.T) {
	t.Parallel()

	parent := Fields("status", "draft", "title", "base")
	child := Fields("title", "t", "body", "text")
	parent.Merge(child)

	assert.Equal(t, []string{"status", "title", "body"}, parent.Keys())
	assert.Equal(t, map[string]any{"status": "draft", "title": "t", "body": "text"}, parent.Map())
}

func TestAttributes_MergeMap_AppendsNewKeysSorted(t *testing.T) {
	t.Parallel()

	a := Fields("name", "Alice")
	a.MergeMap(map[string]any{"zeta": 1, "alpha": 2, "name": "Bob"})

	assert.Equal(t, []string{"name", "alpha", "zeta"}, a.Keys())
	name, _ := a.Get("name")
	assert.Equal(t, "Bob", name)
}

func TestAttributes_Clone_IsIndependent(t *testing.T) {
	t.Parallel()

	a := Fields("a", 1)
	c := a.Clone()
	c.Set("a", 2).Set("b", 3)

	v, _ := a.Get("a")
	assert.Equal(t, 1, v)
	assert.False(t, a.Has("b"))
}

func TestAttributes_Keys_ReturnsCopy(t *testing.T) {
	t.Parallel()

	a := Fields("a", 1, "b", 2)
	keys := a.Keys()
	keys[0] = "mutated"

	assert.Equal(t, []string{"a", "b"}, a.Keys())
}

func TestAttributes_NilReceiver(t *testing.T) {
	t.Parallel()

	var a *Attributes

	assert.Equal(t, 0, a.Len())
	assert.Nil(t, a.Keys())
	assert.False(t, a.Has("x"))
	assert.Empty(t, a.Map())
}

func TestAttributes_ZeroValueSet(t *testing.T) {
	t.Parallel()

	var a Attributes
	a.Set("k", "v")

	assert.Equal(t, []string{"k"}, a.Keys())
}

func TestAttributes_Set_ClassifiesValues(t *testing.T) {
	t.Parallel()

	a := Fields(
		"plain", 1,
		"lazy", func() any { return 2 },
		"assoc", Associate(),
		"model", NewRecord("User"),
	)

	kinds := map[string]Kind{}
	for _, k := range a.Keys() {
		v, _ := a.Value(k)
		kinds[k] = v.Kind()
	}
	assert.Equal(t, map[string]Kind{
		"plain": KindPlain,
		"lazy":  KindDeferred,
		"assoc": KindAssociation,
		"model": KindModel,
	}, kinds)
}

func TestFields_OddArgumentsPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { Fields("a", 1, "b") })
}

func TestFields_NonStringKeyPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { Fields(1, "a") })
}

func TestOverrides_AttrsAndAttributes(t *testing.T) {
	t.Parallel()

	fromMap := toAttributes(Attrs{"b": 1, "a": 2})
	assert.Equal(t, []string{"a", "b"}, fromMap.Keys())

	ordered := Fields("b", 1, "a", 2)
	fromOrdered := toAttributes(ordered)
	assert.Equal(t, []string{"b", "a"}, fromOrdered.Keys())

	assert.Equal(t, 0, toAttributes(nil).Len())
}
