package factory

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Option keys understood by the registry.
const (
	OptionClass  = "class"
	OptionParent = "parent"
)

// Generator produces a factory's own default attributes. It runs on every
// build, so it may draw from sequences directly.
type Generator func(f *Factory) (*Attributes, error)

// Static returns a generator that always yields a copy of attrs.
func Static(attrs *Attributes) Generator {
	return func(*Factory) (*Attributes, error) {
		return attrs.Clone(), nil
	}
}

// Options configures a definition. "class" names the model class and
// "parent" names the factory to inherit from; other keys are carried along.
type Options map[string]string

// Class is shorthand for Options{"class": name}.
func Class(name string) Options {
	return Options{OptionClass: name}
}

// Parent is shorthand for Options{"parent": name}.
func Parent(name string) Options {
	return Options{OptionParent: name}
}

func (o Options) clone() Options {
	out := make(Options, len(o))
	for k, v := range o {
		out[k] = v
	}
	return out
}

// Definition is a registered factory.
type Definition struct {
	Name      string
	Generator Generator
	Options   Options
}

// Template reports whether the definition has no generator of its own.
func (d *Definition) Template() bool { return d.Generator == nil }

// Registry holds factory definitions by name.
type Registry struct {
	defs map[string]*Definition
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*Definition)}
}

// defaultClass derives a class name from a factory name: lowercased with an
// uppercase first letter.
func defaultClass(name string) string {
	lower := strings.ToLower(name)
	r, size := utf8.DecodeRuneInString(lower)
	if r == utf8.RuneError {
		return lower
	}
	return string(unicode.ToUpper(r)) + lower[size:]
}

// Define registers or replaces a definition. Empty options default the class
// from the factory name.
func (r *Registry) Define(name string, gen Generator, opts Options) *Definition {
	if len(opts) == 0 {
		opts = Class(defaultClass(name))
	} else {
		opts = opts.clone()
	}
	def := &Definition{Name: name, Generator: gen, Options: opts}
	r.defs[name] = def
	return def
}

// Lookup returns the named definition.
func (r *Registry) Lookup(name string) (*Definition, bool) {
	def, ok := r.defs[name]
	return def, ok
}

// Names returns registered factory names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of definitions.
func (r *Registry) Len() int { return len(r.defs) }

// chain returns the definition for name followed by its ancestors.
func (r *Registry) chain(name string) ([]*Definition, error) {
	var chain []*Definition
	seen := make(map[string]bool)
	for cur := name; ; {
		def, ok := r.defs[cur]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownFactory, cur)
		}
		if seen[cur] {
			return nil, fmt.Errorf("%w: %s", ErrParentCycle, name)
		}
		seen[cur] = true
		chain = append(chain, def)
		parent, ok := def.Options[OptionParent]
		if !ok {
			return chain, nil
		}
		cur = parent
	}
}

// ResolveOptions returns name's options merged over its ancestors', the
// more specific factory winning. The root of the chain starts from a class
// derived from its own name.
func (r *Registry) ResolveOptions(name string) (Options, error) {
	chain, err := r.chain(name)
	if err != nil {
		return nil, err
	}
	root := chain[len(chain)-1]
	out := Class(defaultClass(root.Name))
	for i := len(chain) - 1; i >= 0; i-- {
		for k, v := range chain[i].Options {
			out[k] = v
		}
	}
	return out, nil
}

// ResolveRawAttributes runs the generators along name's parent chain, root
// first, each overriding the keys of the one before.
func (r *Registry) ResolveRawAttributes(name string, f *Factory) (*Attributes, error) {
	chain, err := r.chain(name)
	if err != nil {
		return nil, err
	}
	attrs := NewAttributes()
	for i := len(chain) - 1; i >= 0; i-- {
		def := chain[i]
		if def.Generator == nil {
			continue
		}
		own, err := def.Generator(f)
		if err != nil {
			return nil, fmt.Errorf("factory %s: %w", def.Name, err)
		}
		attrs.Merge(own)
	}
	return attrs, nil
}
