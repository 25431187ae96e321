package factory

import (
	"fmt"
	"slices"
	"sort"
)

// Attributes is an insertion-ordered attribute set. Overwriting a key keeps
// its original position; new keys are appended.
type Attributes struct {
	keys   []string
	values map[string]Value
}

// NewAttributes returns an empty attribute set.
func NewAttributes() *Attributes {
	return &Attributes{values: make(map[string]Value)}
}

// Fields builds an attribute set from alternating keys and values, keeping
// the order they are given in. It panics on a non-string key or a missing value.
func Fields(kv ...any) *Attributes {
	if len(kv)%2 != 0 {
		panic(fmt.Sprintf("factory: Fields called with odd argument count %d", len(kv)))
	}
	a := NewAttributes()
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("factory: Fields key at position %d is %T, not string", i, kv[i]))
		}
		a.Set(key, kv[i+1])
	}
	return a
}

// Set classifies v with ValueOf and stores it under key.
func (a *Attributes) Set(key string, v any) *Attributes {
	a.SetValue(key, ValueOf(v))
	return a
}

// SetValue stores an already classified value under key.
func (a *Attributes) SetValue(key string, v Value) {
	if a.values == nil {
		a.values = make(map[string]Value)
	}
	if _, ok := a.values[key]; !ok {
		a.keys = append(a.keys, key)
	}
	a.values[key] = v
}

// Get returns the underlying value stored under key.
func (a *Attributes) Get(key string) (any, bool) {
	v, ok := a.Value(key)
	if !ok {
		return nil, false
	}
	return v.Interface(), true
}

// Value returns the tagged value stored under key.
func (a *Attributes) Value(key string) (Value, bool) {
	if a == nil {
		return Value{}, false
	}
	v, ok := a.values[key]
	return v, ok
}

// Has reports whether key is present.
func (a *Attributes) Has(key string) bool {
	_, ok := a.Value(key)
	return ok
}

// Delete removes key if present.
func (a *Attributes) Delete(key string) {
	if _, ok := a.values[key]; !ok {
		return
	}
	delete(a.values, key)
	if i := slices.Index(a.keys, key); i >= 0 {
		a.keys = slices.Delete(a.keys, i, i+1)
	}
}

// Keys returns the keys in iteration order.
func (a *Attributes) Keys() []string {
	if a == nil {
		return nil
	}
	return slices.Clone(a.keys)
}

// Len returns the number of keys.
func (a *Attributes) Len() int {
	if a == nil {
		return 0
	}
	return len(a.keys)
}

// Merge copies every key of other into a, other winning on conflict.
func (a *Attributes) Merge(other *Attributes) *Attributes {
	if other == nil {
		return a
	}
	for _, k := range other.keys {
		a.SetValue(k, other.values[k])
	}
	return a
}

// MergeMap copies m into a. Keys not yet present are appended in sorted order.
func (a *Attributes) MergeMap(m map[string]any) *Attributes {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		a.Set(k, m[k])
	}
	return a
}

// Clone returns a shallow copy.
func (a *Attributes) Clone() *Attributes {
	c := NewAttributes()
	return c.Merge(a)
}

// Map returns the underlying values keyed by attribute name.
func (a *Attributes) Map() map[string]any {
	out := make(map[string]any, a.Len())
	if a == nil {
		return out
	}
	for _, k := range a.keys {
		out[k] = a.values[k].Interface()
	}
	return out
}

// Overrides is a set of caller supplied attributes applied over a
// factory's defaults. Attrs and *Attributes implement it.
type Overrides interface {
	applyTo(dst *Attributes)
}

// Attrs is an unordered override set.
type Attrs map[string]any

func (m Attrs) applyTo(dst *Attributes) { dst.MergeMap(m) }

func (a *Attributes) applyTo(dst *Attributes) { dst.Merge(a) }

// toAttributes converts overrides into a fresh ordered set.
func toAttributes(o Overrides) *Attributes {
	a := NewAttributes()
	if o != nil {
		o.applyTo(a)
	}
	return a
}
