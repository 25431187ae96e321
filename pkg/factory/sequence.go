package factory

import (
	"context"
	"fmt"
	"log/slog"
)

// Sequence is a named counter. Each call to Next increments the counter and
// returns the generator's value for it, so the first value is gen(1).
type Sequence struct {
	name string
	n    int
	gen  func(n int) any
}

// Next advances the counter and returns the generated value.
func (s *Sequence) Next() any {
	s.n++
	return s.gen(s.n)
}

// Name returns the sequence name.
func (s *Sequence) Name() string { return s.name }

// Count returns how many values have been handed out.
func (s *Sequence) Count() int { return s.n }

// Format returns a sequence generator that renders n with a fmt template,
// e.g. Format("user%d@example.com").
func Format(template string) func(n int) any {
	return func(n int) any {
		return fmt.Sprintf(template, n)
	}
}

// Sequence registers a sequence under name. Registering an existing name
// replaces it and restarts its counter.
func (f *Factory) Sequence(name string, gen func(n int) any) *Sequence {
	seq := &Sequence{name: name, gen: gen}
	f.sequences[name] = seq
	f.logger.Debug("sequence defined", slog.String("sequence", name))
	return seq
}

// Next returns the next value of the named sequence.
func (f *Factory) Next(name string) (any, error) {
	seq, ok := f.sequences[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSequence, name)
	}
	return seq.Next(), nil
}

// Seq returns a deferred value drawing from the named sequence each time
// it is finalized.
func Seq(name string) DeferredFunc {
	return func(_ context.Context, _ *Attributes, f *Factory) (any, error) {
		return f.Next(name)
	}
}
