package factory

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Loader registers definitions on a Factory. It runs once, before the first
// build, if nothing has been defined yet.
type Loader interface {
	Load(f *Factory) error
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(f *Factory) error

// Load calls fn(f).
func (fn LoaderFunc) Load(f *Factory) error { return fn(f) }

// Observer is notified of build outcomes.
type Observer interface {
	Built(factory string, elapsed time.Duration)
	Created(factory string)
	Failed(factory, op string, err error)
}

type nopObserver struct{}

func (nopObserver) Built(string, time.Duration) {}

func (nopObserver) Created(string) {}

func (nopObserver) Failed(string, string, error) {}

// Factory owns a registry of definitions and a sequence table and builds
// models from them. It is not safe for concurrent use.
type Factory struct {
	registry  *Registry
	sequences map[string]*Sequence
	classes   Classes
	store     Store
	loader    Loader
	loaded    bool
	logger    *slog.Logger
	observer  Observer
	maxSteps  int

	// finalization state of the build in progress
	steps int
	depth int
}

// Option configures a Factory.
type Option func(*Factory)

// WithClasses sets the model constructor. The default builds *Record values.
func WithClasses(c Classes) Option {
	return func(f *Factory) { f.classes = c }
}

// WithStore sets the store used by Create.
func WithStore(s Store) Option {
	return func(f *Factory) { f.store = s }
}

// WithLoader sets a loader run before the first build when no factory has
// been defined.
func WithLoader(l Loader) Option {
	return func(f *Factory) { f.loader = l }
}

// WithLogger sets the logger. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(f *Factory) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithObserver sets an observer for build metrics.
func WithObserver(o Observer) Option {
	return func(f *Factory) {
		if o != nil {
			f.observer = o
		}
	}
}

// WithMaxResolveSteps bounds finalization; zero or less disables the bound.
func WithMaxResolveSteps(n int) Option {
	return func(f *Factory) { f.maxSteps = n }
}

// New returns an empty Factory.
func New(opts ...Option) *Factory {
	f := &Factory{
		registry:  NewRegistry(),
		sequences: make(map[string]*Sequence),
		classes:   Records(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		observer:  nopObserver{},
		maxSteps:  DefaultMaxResolveSteps,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Registry exposes the underlying definitions.
func (f *Factory) Registry() *Registry { return f.registry }

// Definitions returns the registered factory names in sorted order.
func (f *Factory) Definitions() []string { return f.registry.Names() }

// Define registers a factory. opts may be nil, Class("Name"), or a full
// Options map including "parent". A nil generator makes a template that
// only contributes options to its children.
func (f *Factory) Define(name string, gen Generator, opts Options) *Definition {
	def := f.registry.Define(name, gen, opts)
	f.logger.Debug("factory defined",
		slog.String("factory", name),
		slog.String("class", def.Options[OptionClass]),
		slog.String("parent", def.Options[OptionParent]),
	)
	return def
}

func (f *Factory) ensureLoaded() error {
	if f.loaded || f.loader == nil || f.registry.Len() > 0 {
		return nil
	}
	f.loaded = true
	if err := f.loader.Load(f); err != nil {
		return fmt.Errorf("load definitions: %w", err)
	}
	f.logger.Debug("definitions loaded", slog.Int("factories", f.registry.Len()))
	return nil
}

// Attributes returns the finalized attributes name would build with,
// without constructing a model. Associations are still created.
func (f *Factory) Attributes(ctx context.Context, name string, overrides Overrides) (*Attributes, error) {
	if err := f.ensureLoaded(); err != nil {
		return nil, err
	}
	return f.attributes(ctx, name, overrides)
}

func (f *Factory) attributes(ctx context.Context, name string, overrides Overrides) (*Attributes, error) {
	attrs, err := f.registry.ResolveRawAttributes(name, f)
	if err != nil {
		return nil, err
	}
	if overrides != nil {
		overrides.applyTo(attrs)
	}
	if err := f.finalize(ctx, name, attrs); err != nil {
		return nil, err
	}
	return attrs, nil
}

// Build constructs an unsaved model from the named factory with overrides
// applied over its defaults.
func (f *Factory) Build(ctx context.Context, name string, overrides Overrides) (Model, error) {
	start := time.Now()
	m, err := f.build(ctx, name, overrides)
	if err != nil {
		f.observer.Failed(name, "build", err)
		return nil, err
	}
	f.observer.Built(name, time.Since(start))
	return m, nil
}

func (f *Factory) build(ctx context.Context, name string, overrides Overrides) (Model, error) {
	if err := f.ensureLoaded(); err != nil {
		return nil, err
	}
	opts, err := f.registry.ResolveOptions(name)
	if err != nil {
		return nil, err
	}
	class := opts[OptionClass]
	if class == "" {
		return nil, fmt.Errorf("%w for factory %s", ErrMissingClassOption, name)
	}

	attrs, err := f.attributes(ctx, name, overrides)
	if err != nil {
		return nil, err
	}

	m, err := f.classes.New(class)
	if err != nil {
		return nil, fmt.Errorf("factory %s: %w", name, err)
	}
	for _, k := range attrs.Keys() {
		v, _ := attrs.Get(k)
		m.Set(k, v)
	}

	f.logger.Debug("model built",
		slog.String("factory", name),
		slog.String("class", class),
		slog.Int("attributes", attrs.Len()),
	)
	return m, nil
}

// Create builds a model and saves it through the configured store.
func (f *Factory) Create(ctx context.Context, name string, overrides Overrides) (Model, error) {
	m, err := f.Build(ctx, name, overrides)
	if err != nil {
		return nil, err
	}
	if f.store == nil {
		err := fmt.Errorf("%w: cannot create %s", ErrNoStore, name)
		f.observer.Failed(name, "create", err)
		return nil, err
	}
	if err := f.store.Save(ctx, m); err != nil {
		perr := &PersistenceError{Factory: name, Model: m, Err: err}
		if v, ok := m.(Validated); ok {
			perr.Detail = v.Errors()
		}
		f.observer.Failed(name, "create", perr)
		f.logger.Debug("model save failed",
			slog.String("factory", name),
			slog.String("error", err.Error()),
		)
		return nil, perr
	}
	f.observer.Created(name)
	f.logger.Debug("model created",
		slog.String("factory", name),
		slog.Any("id", m.ID()),
	)
	return m, nil
}
