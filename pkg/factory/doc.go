// Package factory provides declarative test data factories in the style of
// factory_girl.
//
// A Factory holds named definitions. Each definition has a generator of
// default attributes, a model class and optionally a parent it inherits
// attributes and options from.
//
// # Defining Factories
//
//	f := factory.New(factory.WithStore(store.NewMemory()))
//	f.Sequence("email", factory.Format("user%d@example.com"))
//
//	f.Define("user", func(f *factory.Factory) (*factory.Attributes, error) {
//	    return factory.Fields(
//	        "name", "Alice",
//	        "email", factory.Seq("email"),
//	    ), nil
//	}, nil)
//
//	f.Define("admin", factory.Static(factory.Fields("role", "admin")), factory.Parent("user"))
//
// # Building and Creating
//
// Build returns an unsaved model; Create also saves it:
//
//	user, err := f.Build(ctx, "user", factory.Attrs{"name": "Bob"})
//	post, err := f.Create(ctx, "post", nil)
//
// # Attribute Values
//
// Attribute values are plain values, deferred functions evaluated at build
// time, associations that create another factory's model, or existing
// models. Associations and models end up as a <key>_id attribute holding
// the model's id:
//
//	f.Define("comment", factory.Static(factory.Fields(
//	    "body", "nice",
//	    "post", factory.Associate(),          // creates a "post", sets post_id
//	    "author", factory.Associate("user"),  // creates a "user", sets author_id
//	)), nil)
//
// # Errors
//
// Use errors.Is with ErrUnknownFactory, ErrMissingClassOption,
// ErrPersistenceFailed and ErrUnknownSequence.
package factory
