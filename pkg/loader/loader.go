// Package loader reads factory definitions from YAML files.
//
// A definitions file declares sequences and factories:
//
//	sequences:
//	  email: "user%d@example.com"
//
//	factories:
//	  user:
//	    class: User
//	    attributes:
//	      name: Alice
//	      email: {sequence: email}
//	      hash: {bcrypt: secret}
//	      token: {uuid: true}
//	  admin:
//	    parent: user
//	    attributes:
//	      role: admin
//	  post:
//	    attributes:
//	      title: Hello
//	      author: {associate: user, overrides: {name: Bob}}
//	  comment:
//	    attributes:
//	      post: {associate: true}
//
// Attributes keep the order they are written in. A factory without an
// attributes key is a template contributing only its options.
package loader

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/SilvertipSoftware/factorygirl/pkg/factory"
)

var (
	// ErrSyntax is returned for documents that are not valid definitions YAML.
	ErrSyntax = errors.New("invalid definitions syntax")

	// ErrInvalid is returned for well-formed documents that fail validation.
	ErrInvalid = errors.New("invalid definitions")
)

// Document is a parsed definitions file.
type Document struct {
	Sequences []SequenceSpec `validate:"dive"`
	Factories []FactorySpec  `validate:"dive"`
}

// SequenceSpec declares a sequence rendered with a fmt template.
type SequenceSpec struct {
	Name   string `validate:"required"`
	Format string `validate:"required,contains=%"`
}

// FactorySpec declares one factory.
type FactorySpec struct {
	Name       string            `validate:"required"`
	Class      string            `validate:"omitempty,excludesall= "`
	Parent     string            `validate:"omitempty,nefield=Name"`
	Options    map[string]string `validate:"dive,keys,required,endkeys,required"`
	Attributes []AttributeSpec   `validate:"dive"`
	Template   bool
}

// AttributeSpec declares one attribute. Exactly one of the value fields is
// used; Value is the fallback for plain values.
type AttributeSpec struct {
	Key       string `validate:"required"`
	Value     any
	Sequence  string
	Bcrypt    string
	UUID      bool
	From      string
	Associate *AssociationSpec
}

// AssociationSpec declares an association. An empty Factory uses the
// attribute key.
type AssociationSpec struct {
	Factory   string
	Overrides []AttributeSpec `validate:"dive"`
}

// File returns a loader applying the definitions file at path.
func File(path string) factory.Loader {
	return factory.LoaderFunc(func(f *factory.Factory) error {
		doc, err := ParseFile(path)
		if err != nil {
			return err
		}
		return doc.Apply(f)
	})
}

// ParseFile reads and parses a definitions file.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read definitions: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Parse parses and validates a definitions document.
func Parse(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}

	doc := &Document{}
	if len(root.Content) == 0 {
		return doc, nil
	}
	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, syntaxError(top, "document must be a mapping")
	}

	for i := 0; i+1 < len(top.Content); i += 2 {
		key, val := top.Content[i], top.Content[i+1]
		switch key.Value {
		case "sequences":
			seqs, err := parseSequences(val)
			if err != nil {
				return nil, err
			}
			doc.Sequences = seqs
		case "factories":
			facs, err := parseFactories(val)
			if err != nil {
				return nil, err
			}
			doc.Factories = facs
		default:
			return nil, syntaxError(key, fmt.Sprintf("unknown section %q", key.Value))
		}
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// Validate checks the document's struct rules.
func (d *Document) Validate() error {
	err := validator.New().Struct(d)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	errs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		errs = append(errs, fmt.Errorf("%s failed on %s", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}

// Apply registers the document's sequences and factories on f, in
// document order.
func (d *Document) Apply(f *factory.Factory) error {
	for _, s := range d.Sequences {
		f.Sequence(s.Name, factory.Format(s.Format))
	}
	for _, spec := range d.Factories {
		f.Define(spec.Name, spec.generator(), spec.options())
	}
	return nil
}

func (s FactorySpec) options() factory.Options {
	opts := factory.Options{}
	for k, v := range s.Options {
		opts[k] = v
	}
	if s.Class != "" {
		opts[factory.OptionClass] = s.Class
	}
	if s.Parent != "" {
		opts[factory.OptionParent] = s.Parent
	}
	if len(opts) == 0 {
		return nil
	}
	return opts
}

func (s FactorySpec) generator() factory.Generator {
	if s.Template {
		return nil
	}
	specs := s.Attributes
	return func(*factory.Factory) (*factory.Attributes, error) {
		return buildAttributes(specs), nil
	}
}

func buildAttributes(specs []AttributeSpec) *factory.Attributes {
	attrs := factory.NewAttributes()
	for _, a := range specs {
		attrs.Set(a.Key, a.value())
	}
	return attrs
}

func (a AttributeSpec) value() any {
	switch {
	case a.Sequence != "":
		return factory.Seq(a.Sequence)
	case a.Bcrypt != "":
		return factory.BcryptHash(a.Bcrypt)
	case a.UUID:
		return factory.UUID()
	case a.From != "":
		return factory.From(a.From)
	case a.Associate != nil:
		return &factory.Association{
			Factory:   a.Associate.Factory,
			Overrides: buildAttributes(a.Associate.Overrides),
		}
	default:
		return factory.Plain(a.Value)
	}
}
