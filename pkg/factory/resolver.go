package factory

import (
	"context"
	"fmt"
	"log/slog"
)

// DefaultMaxResolveSteps bounds the number of queue pops one top level build
// may take, counting the finalizations of the models it associates.
const DefaultMaxResolveSteps = 10000

// keyQueue is a FIFO of attribute keys.
type keyQueue struct {
	items []string
	head  int
}

func (q *keyQueue) push(k string) { q.items = append(q.items, k) }

func (q *keyQueue) pop() (string, bool) {
	if q.head == len(q.items) {
		return "", false
	}
	k := q.items[q.head]
	q.head++
	return k, true
}

// finalize rewrites attrs in place until every value is plain. Associations
// are created and replaced by their model, deferred values are evaluated and
// their result re-examined, and models are replaced by a <key>_id attribute.
// Keys are processed front to back and re-examined keys go to the back, so a
// deferred value sees earlier keys resolved and later ones still raw.
func (f *Factory) finalize(ctx context.Context, name string, attrs *Attributes) error {
	if f.depth == 0 {
		f.steps = 0
	}
	f.depth++
	defer func() { f.depth-- }()

	q := &keyQueue{items: attrs.Keys()}
	var unset []string

	for {
		k, ok := q.pop()
		if !ok {
			break
		}
		f.steps++
		if f.maxSteps > 0 && f.steps > f.maxSteps {
			return fmt.Errorf("%w: factory %s exceeded %d steps at %q", ErrResolveLimit, name, f.maxSteps, k)
		}

		v, _ := attrs.Value(k)
		switch v.Kind() {
		case KindAssociation:
			target := v.Association().target(k)
			f.logger.Debug("resolving association",
				slog.String("factory", name),
				slog.String("attribute", k),
				slog.String("target", target),
			)
			m, err := f.Create(ctx, target, v.Association().Overrides)
			if err != nil {
				return fmt.Errorf("associate %s.%s: %w", name, k, err)
			}
			attrs.SetValue(k, Ref(m))
			q.push(k)
		case KindModel:
			unset = append(unset, k)
			attrs.SetValue(k+"_id", Plain(v.Model().ID()))
		case KindDeferred:
			out, err := v.Deferred()(ctx, attrs.Clone(), f)
			if err != nil {
				return fmt.Errorf("evaluate %s.%s: %w", name, k, err)
			}
			attrs.SetValue(k, ValueOf(out))
			q.push(k)
		}
	}

	for _, k := range unset {
		attrs.Delete(k)
	}
	return nil
}
