package factory

import "fmt"

// Association is a placeholder for a model created from another factory
// during finalization. An empty Factory means the attribute key names the
// factory to use.
type Association struct {
	Factory   string
	Overrides *Attributes
}

// target returns the factory to create for an association stored under key.
func (a *Association) target(key string) string {
	if a.Factory == "" {
		return key
	}
	return a.Factory
}

// Associate returns an association placeholder. It accepts:
//
//	Associate()                  // factory named after the attribute key
//	Associate(overrides)         // same, with overrides
//	Associate("user")            // explicit factory
//	Associate("user", overrides) // explicit factory with overrides
//
// overrides is an Attrs or *Attributes.
func Associate(args ...any) *Association {
	assoc := &Association{Overrides: NewAttributes()}
	switch len(args) {
	case 0:
	case 1:
		switch x := args[0].(type) {
		case string:
			assoc.Factory = x
		case Overrides:
			assoc.Overrides = toAttributes(x)
		case map[string]any:
			assoc.Overrides = toAttributes(Attrs(x))
		case nil:
		default:
			panic(fmt.Sprintf("factory: Associate cannot use %T", x))
		}
	case 2:
		name, ok := args[0].(string)
		if !ok {
			panic(fmt.Sprintf("factory: Associate factory name is %T, not string", args[0]))
		}
		assoc.Factory = name
		switch x := args[1].(type) {
		case Overrides:
			assoc.Overrides = toAttributes(x)
		case map[string]any:
			assoc.Overrides = toAttributes(Attrs(x))
		case nil:
		default:
			panic(fmt.Sprintf("factory: Associate cannot use %T as overrides", x))
		}
	default:
		panic(fmt.Sprintf("factory: Associate takes at most 2 arguments, got %d", len(args)))
	}
	return assoc
}

// Associate is the method form of the package level Associate.
func (f *Factory) Associate(args ...any) *Association {
	return Associate(args...)
}
