package mapping

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"accessor-generator/internal/diagnostic"
)

// UnmarshalYAML records where the object was declared.
func (o *Object) UnmarshalYAML(node *yaml.Node) error {
	type plain Object

	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}

	*o = Object(p)
	o.Origin = diagnostic.Origin{Line: node.Line, Column: node.Column}

	return nil
}

// UnmarshalYAML implements custom YAML unmarshaling for Decl.
// YAML formats supported:
//   - Expression string: "other.bar -> Option<i32>"
//   - Structured map: {path: cursor, type: Cursor, scalar: true}
//     or {name: country, type: Country} for associations
func (d *Decl) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var text string
		if err := node.Decode(&text); err != nil {
			return err
		}

		*d = Decl{Text: text, Origin: valueOrigin(node)}

		return nil

	case yaml.MappingNode:
		decl, err := declFromMap(node)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}

		*d = decl

		return nil

	default:
		return fmt.Errorf("line %d: expected declaration string or map, got %v", node.Line, kindName(node.Kind))
	}
}

// MarshalYAML writes the declaration in expression form.
func (d Decl) MarshalYAML() (any, error) {
	return d.Text, nil
}

type structuredDecl struct {
	Path   string `yaml:"path"`
	Name   string `yaml:"name"`
	Type   string `yaml:"type"`
	Scalar bool   `yaml:"scalar"`
}

// declFromMap turns the structured form into expression text so both forms
// go through the same parser. Each piece of the text is placed at the YAML
// value it came from.
func declFromMap(node *yaml.Node) (Decl, error) {
	var s structuredDecl
	if err := node.Decode(&s); err != nil {
		return Decl{}, err
	}

	lhs, lhsKey := s.Path, "path"
	switch {
	case s.Path != "" && s.Name != "":
		return Decl{}, errors.New("declaration has both 'path' and 'name'")
	case s.Name != "":
		lhs, lhsKey = s.Name, "name"
	case s.Path == "":
		return Decl{}, errors.New("declaration needs 'path' or 'name'")
	}

	if strings.TrimSpace(s.Type) == "" {
		return Decl{}, fmt.Errorf("declaration %q has no 'type'", lhs)
	}

	if _, err := ParseKeyPath(lhs); err != nil {
		return Decl{}, err
	}

	origin := valueOrigin(mapValue(node, lhsKey))

	text := lhs + " -> "
	origin.Parts = append(origin.Parts, part(len(text), mapValue(node, "type")))
	text += s.Type

	if s.Scalar {
		origin.Parts = append(origin.Parts, part(len(text), mapValue(node, "scalar")))
		text += " as scalar"
	}

	return Decl{Text: text, Origin: origin}, nil
}

// mapValue returns the value node of key in a mapping node.
func mapValue(node *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}

	return node
}

// valueOrigin returns the position of the first character of a scalar's
// value, inside the quotes when it is quoted.
func valueOrigin(node *yaml.Node) diagnostic.Origin {
	col := node.Column
	if node.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle) != 0 {
		col++
	}

	return diagnostic.Origin{Line: node.Line, Column: col}
}

func part(offset int, node *yaml.Node) diagnostic.Part {
	o := valueOrigin(node)
	return diagnostic.Part{Offset: offset, Line: o.Line, Column: o.Column}
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "node"
	}
}
