package factory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssociate_NoArgs(t *testing.T) {
	t.Parallel()

	a := Associate()

	assert.Empty(t, a.Factory)
	assert.Equal(t, 0, a.Overrides.Len())
	assert.Equal(t, "post", a.target("post"))
}

func TestAssociate_NameOnly(t *testing.T) {
	t.Parallel()

	a := Associate("user")

	assert.Equal(t, "user", a.Factory)
	assert.Equal(t, "user", a.target("author"))
}

func TestAssociate_OverridesOnly(t *testing.T) {
	t.Parallel()

	a := Associate(Attrs{"name": "Bob"})
	assert.Empty(t, a.Factory)
	assert.Equal(t, map[string]any{"name": "Bob"}, a.Overrides.Map())

	a = Associate(map[string]any{"name": "Eve"})
	assert.Equal(t, map[string]any{"name": "Eve"}, a.Overrides.Map())

	a = Associate(Fields("b", 1, "a", 2))
	assert.Equal(t, []string{"b", "a"}, a.Overrides.Keys())
}

func TestAssociate_NameAndOverrides(t *testing.T) {
	t.Parallel()

	a := Associate("user", Attrs{"role": "admin"})

	assert.Equal(t, "user", a.Factory)
	assert.Equal(t, map[string]any{"role": "admin"}, a.Overrides.Map())

	a = Associate("user", nil)
	assert.Equal(t, 0, a.Overrides.Len())
}

func TestAssociate_CopiesOverrides(t *testing.T) {
	t.Parallel()

	overrides := Fields("name", "Bob")
	a := Associate(overrides)
	overrides.Set("name", "Mallory")

	name, _ := a.Overrides.Get("name")
	assert.Equal(t, "Bob", name)
}

func TestAssociate_MisusePanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { Associate(42) })
	assert.Panics(t, func() { Associate(1, Attrs{}) })
	assert.Panics(t, func() { Associate("user", 42) })
	assert.Panics(t, func() { Associate("a", Attrs{}, "extra") })
}

func TestFactory_Associate_MatchesPackageLevel(t *testing.T) {
	t.Parallel()

	f := New()
	a := f.Associate("user", Attrs{"name": "Bob"})

	assert.Equal(t, Associate("user", Attrs{"name": "Bob"}), a)
}
