package factory

import (
	"context"
	"fmt"
)

// Kind discriminates the variants an attribute value can take.
type Kind int

const (
	// KindPlain is a value assigned to the model as-is.
	KindPlain Kind = iota
	// KindDeferred is a function evaluated during finalization.
	KindDeferred
	// KindAssociation is a placeholder for another factory's persisted model.
	KindAssociation
	// KindModel is an already constructed model, replaced by its id.
	KindModel
)

func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindDeferred:
		return "deferred"
	case KindAssociation:
		return "association"
	case KindModel:
		return "model"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// DeferredFunc computes an attribute value at finalization time. It sees the
// attribute set as it stands when the key is dequeued, including keys that
// have not been resolved yet. attrs is a copy; writes to it are discarded.
type DeferredFunc func(ctx context.Context, attrs *Attributes, f *Factory) (any, error)

// Value is a single attribute value tagged with its Kind.
type Value struct {
	kind     Kind
	plain    any
	deferred DeferredFunc
	assoc    *Association
	model    Model
}

// Plain wraps v as a plain value even if it would otherwise classify as
// something else.
func Plain(v any) Value {
	return Value{kind: KindPlain, plain: v}
}

// Lazy wraps fn as a deferred value.
func Lazy(fn DeferredFunc) Value {
	return Value{kind: KindDeferred, deferred: fn}
}

// Ref wraps an existing model. Finalization replaces it with a <key>_id attribute.
func Ref(m Model) Value {
	return Value{kind: KindModel, model: m}
}

// ValueOf classifies v. Deferred functions, associations and models get their
// own kinds; anything else is plain.
func ValueOf(v any) Value {
	switch x := v.(type) {
	case Value:
		return x
	case DeferredFunc:
		return Lazy(x)
	case func(context.Context, *Attributes, *Factory) (any, error):
		return Lazy(x)
	case func() any:
		return Lazy(func(context.Context, *Attributes, *Factory) (any, error) {
			return x(), nil
		})
	case func(*Attributes) any:
		return Lazy(func(_ context.Context, attrs *Attributes, _ *Factory) (any, error) {
			return x(attrs), nil
		})
	case *Association:
		if x == nil {
			return Plain(nil)
		}
		return Value{kind: KindAssociation, assoc: x}
	case Model:
		return Ref(x)
	default:
		return Plain(v)
	}
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// Association returns the placeholder held by an association value.
func (v Value) Association() *Association { return v.assoc }

// Model returns the model held by a model value.
func (v Value) Model() Model { return v.model }

// Deferred returns the function held by a deferred value.
func (v Value) Deferred() DeferredFunc { return v.deferred }

// Interface returns the underlying Go value regardless of kind.
func (v Value) Interface() any {
	switch v.kind {
	case KindDeferred:
		return v.deferred
	case KindAssociation:
		return v.assoc
	case KindModel:
		return v.model
	default:
		return v.plain
	}
}
