package factory

import (
	"context"
	"fmt"
	"slices"
)

// Model is the narrow view of an ORM instance the factory needs: attribute
// assignment by key and an identifier usable as a foreign key.
type Model interface {
	Set(key string, value any)
	ID() any
}

// Validated is implemented by models that carry validation messages after a
// failed save.
type Validated interface {
	Errors() []string
}

// Classes constructs a new, empty model for a class name.
type Classes interface {
	New(class string) (Model, error)
}

// Store persists a built model.
type Store interface {
	Save(ctx context.Context, m Model) error
}

// StoreFunc adapts a function to Store.
type StoreFunc func(ctx context.Context, m Model) error

// Save calls fn(ctx, m).
func (fn StoreFunc) Save(ctx context.Context, m Model) error { return fn(ctx, m) }

// ClassMap maps class names to constructors.
type ClassMap map[string]func() Model

// New returns a fresh model for class.
func (c ClassMap) New(class string) (Model, error) {
	ctor, ok := c[class]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownClass, class)
	}
	return ctor(), nil
}

// RecordClasses builds a *Record for any class, or only for the listed
// classes when the list is non-empty.
type RecordClasses []string

// Records returns a Classes producing *Record values.
func Records(classes ...string) RecordClasses {
	return RecordClasses(classes)
}

// New returns a fresh *Record for class.
func (rc RecordClasses) New(class string) (Model, error) {
	if len(rc) > 0 && !slices.Contains(rc, class) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownClass, class)
	}
	return NewRecord(class), nil
}

// Record is a map backed Model. Setting "id" also sets its identifier.
type Record struct {
	class  string
	keys   []string
	fields map[string]any
	id     any
	errs   []string
}

// NewRecord returns an empty record of the given class.
func NewRecord(class string) *Record {
	return &Record{class: class, fields: make(map[string]any)}
}

// Class returns the record's class name.
func (r *Record) Class() string { return r.class }

// Set assigns an attribute.
func (r *Record) Set(key string, value any) {
	if key == "id" {
		r.id = value
		return
	}
	if _, ok := r.fields[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.fields[key] = value
}

// Get returns an attribute value, or nil.
func (r *Record) Get(key string) any {
	if key == "id" {
		return r.id
	}
	return r.fields[key]
}

// Has reports whether an attribute was assigned.
func (r *Record) Has(key string) bool {
	_, ok := r.fields[key]
	return ok
}

// Keys returns attribute names in assignment order, excluding id.
func (r *Record) Keys() []string { return slices.Clone(r.keys) }

// Fields returns a copy of the assigned attributes, excluding id.
func (r *Record) Fields() map[string]any {
	out := make(map[string]any, len(r.fields))
	for k, v := range r.fields {
		out[k] = v
	}
	return out
}

// ID returns the identifier assigned by a store, or nil before saving.
func (r *Record) ID() any { return r.id }

// SetID records the identifier assigned by a store.
func (r *Record) SetID(id any) { r.id = id }

// Errors returns validation messages added by a store.
func (r *Record) Errors() []string { return slices.Clone(r.errs) }

// AddError appends a validation message.
func (r *Record) AddError(msg string) { r.errs = append(r.errs, msg) }

// ClearErrors drops validation messages from a previous save.
func (r *Record) ClearErrors() { r.errs = nil }
