package loader

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Keys that turn an attribute mapping into a special value.
var valueKeys = map[string]bool{
	"sequence":  true,
	"bcrypt":    true,
	"uuid":      true,
	"from":      true,
	"associate": true,
}

func syntaxError(n *yaml.Node, msg string) error {
	return fmt.Errorf("%w: line %d: %s", ErrSyntax, n.Line, msg)
}

func parseSequences(n *yaml.Node) ([]SequenceSpec, error) {
	if n.Kind != yaml.MappingNode {
		return nil, syntaxError(n, "sequences must be a mapping")
	}
	seqs := make([]SequenceSpec, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		if val.Kind != yaml.ScalarNode {
			return nil, syntaxError(val, fmt.Sprintf("sequence %q must be a format string", key.Value))
		}
		seqs = append(seqs, SequenceSpec{Name: key.Value, Format: val.Value})
	}
	return seqs, nil
}

func parseFactories(n *yaml.Node) ([]FactorySpec, error) {
	if n.Kind != yaml.MappingNode {
		return nil, syntaxError(n, "factories must be a mapping")
	}
	facs := make([]FactorySpec, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		spec, err := parseFactory(n.Content[i].Value, n.Content[i+1])
		if err != nil {
			return nil, err
		}
		facs = append(facs, spec)
	}
	return facs, nil
}

func parseFactory(name string, n *yaml.Node) (FactorySpec, error) {
	spec := FactorySpec{Name: name, Template: true}
	if n.Kind == yaml.ScalarNode && n.Tag == "!!null" {
		return spec, nil
	}
	if n.Kind != yaml.MappingNode {
		return spec, syntaxError(n, fmt.Sprintf("factory %q must be a mapping", name))
	}

	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		switch key.Value {
		case "class":
			spec.Class = val.Value
		case "parent":
			spec.Parent = val.Value
		case "options":
			if err := val.Decode(&spec.Options); err != nil {
				return spec, syntaxError(val, fmt.Sprintf("factory %q options: %v", name, err))
			}
		case "attributes":
			attrs, err := parseAttributes(val)
			if err != nil {
				return spec, fmt.Errorf("factory %q: %w", name, err)
			}
			spec.Attributes = attrs
			spec.Template = false
		default:
			return spec, syntaxError(key, fmt.Sprintf("factory %q has unknown key %q", name, key.Value))
		}
	}
	return spec, nil
}

func parseAttributes(n *yaml.Node) ([]AttributeSpec, error) {
	if n.Kind == yaml.ScalarNode && n.Tag == "!!null" {
		return []AttributeSpec{}, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, syntaxError(n, "attributes must be a mapping")
	}
	attrs := make([]AttributeSpec, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		a, err := parseAttribute(n.Content[i].Value, n.Content[i+1])
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, a)
	}
	return attrs, nil
}

// isValueNode reports whether n is a mapping made only of special value
// keys (plus overrides), with exactly one of them.
func isValueNode(n *yaml.Node) bool {
	if n.Kind != yaml.MappingNode || len(n.Content) == 0 {
		return false
	}
	kinds := 0
	for i := 0; i+1 < len(n.Content); i += 2 {
		k := n.Content[i].Value
		switch {
		case valueKeys[k]:
			kinds++
		case k == "overrides":
		default:
			return false
		}
	}
	return kinds == 1
}

func parseAttribute(key string, n *yaml.Node) (AttributeSpec, error) {
	a := AttributeSpec{Key: key}
	if !isValueNode(n) {
		if err := n.Decode(&a.Value); err != nil {
			return a, syntaxError(n, fmt.Sprintf("attribute %q: %v", key, err))
		}
		return a, nil
	}

	var overrides *yaml.Node
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i].Value, n.Content[i+1]
		switch k {
		case "sequence":
			a.Sequence = v.Value
		case "bcrypt":
			a.Bcrypt = v.Value
		case "from":
			a.From = v.Value
		case "uuid":
			if err := v.Decode(&a.UUID); err != nil || !a.UUID {
				return a, syntaxError(v, fmt.Sprintf("attribute %q: uuid must be true", key))
			}
		case "associate":
			assoc, err := parseAssociate(key, v)
			if err != nil {
				return a, err
			}
			a.Associate = assoc
		case "overrides":
			overrides = v
		}
	}

	if overrides != nil {
		if a.Associate == nil {
			return a, syntaxError(overrides, fmt.Sprintf("attribute %q: overrides require associate", key))
		}
		specs, err := parseAttributes(overrides)
		if err != nil {
			return a, err
		}
		a.Associate.Overrides = specs
	}
	return a, nil
}

func parseAssociate(key string, n *yaml.Node) (*AssociationSpec, error) {
	if n.Kind != yaml.ScalarNode {
		return nil, syntaxError(n, fmt.Sprintf("attribute %q: associate must name a factory or be true", key))
	}
	if n.Tag == "!!bool" {
		var on bool
		if err := n.Decode(&on); err != nil || !on {
			return nil, syntaxError(n, fmt.Sprintf("attribute %q: associate must name a factory or be true", key))
		}
		return &AssociationSpec{}, nil
	}
	return &AssociationSpec{Factory: n.Value}, nil
}
