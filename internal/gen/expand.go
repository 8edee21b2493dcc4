package gen

import (
	"fmt"

	"mvdan.cc/gofumpt/format"

	"accessor-generator/internal/classify"
	"accessor-generator/internal/diagnostic"
	"accessor-generator/internal/mapping"
)

// Expand expands one parsed declaration on object. A method whose source
// does not parse is reported against its declaration, so it never reaches
// the file it would have been assembled into.
func (g *Generator) Expand(object string, inv mapping.Invocation) (*Method, error) {
	var (
		m   *Method
		err error
	)

	switch inv := inv.(type) {
	case *mapping.FieldMapping:
		m, err = g.Field(object, inv)
	case *mapping.AssociationMapping:
		m, err = g.Association(object, inv)
	default:
		return nil, fmt.Errorf("unsupported invocation %T", inv)
	}

	if err != nil {
		return nil, err
	}

	if err := checkSource(m); err != nil {
		return nil, anchor(err, inv, object)
	}

	return m, nil
}

// checkSource formats m on its own. Only syntax is checked; the types it
// names are resolved by the compiler once the file is written.
func checkSource(m *Method) error {
	src, err := m.Source(false)
	if err != nil {
		return err
	}

	if _, err := format.Source([]byte("package p\n\n"+src), format.Options{}); err != nil {
		return diagnostic.Errorf(diagnostic.CodeUnrenderableType, diagnostic.Span{},
			"method %s is not valid Go: %v", m.Name, err)
	}

	return nil
}

// Field expands a field declaration. Scalars take the executor only;
// objects also take a guard for the leaf type. Both return the address of
// the field.
func (g *Generator) Field(object string, f *mapping.FieldMapping) (*Method, error) {
	ref, err := g.resolveType(f.Type, f.ForcedScalar, false)
	if err != nil {
		return nil, anchor(err, f, object)
	}

	recv := g.host.Receiver()

	result, err := g.host.Result(ref.Go)
	if err != nil {
		return nil, anchor(err, f, object)
	}

	ret, err := g.host.Access(f.KeyPath.Selector(recv))
	if err != nil {
		return nil, anchor(err, f, object)
	}

	params := []Param{{Name: "_", Type: g.host.Executor()}}
	if !ref.Class.IsScalar() {
		params = append(params, Param{Name: "_", Type: ref.Guard})
	}

	return &Method{
		Object:   object,
		Receiver: recv,
		Name:     f.MethodName(),
		Kind:     FieldMethod,
		Class:    ref.Class,
		Params:   params,
		Result:   result,
		Return:   ret,
		Expr:     f.Text,
	}, nil
}

// Association expands an association declaration. The leaf only
// parameterises the guard; the method always has the object form and
// returns whatever the loader stored in the field.
func (g *Generator) Association(object string, a *mapping.AssociationMapping) (*Method, error) {
	ref, err := g.resolveType(a.Type, false, true)
	if err != nil {
		return nil, anchor(err, a, object)
	}

	recv := g.host.Receiver()

	result, err := g.host.Result(ref.Go)
	if err != nil {
		return nil, anchor(err, a, object)
	}

	ret, err := g.host.Unwrap(recv + "." + a.Name)
	if err != nil {
		return nil, anchor(err, a, object)
	}

	class := ref.Class
	class.Kind = classify.Object

	return &Method{
		Object:   object,
		Receiver: recv,
		Name:     a.MethodName(),
		Kind:     AssociationMethod,
		Class:    class,
		Params: []Param{
			{Name: "executor", Type: g.host.Executor()},
			{Name: "trail", Type: ref.Guard},
		},
		Result: result,
		Return: ret,
		Expr:   a.Text,
	}, nil
}

// ExpandText parses text as a field or association declaration and expands
// it on object. It is the single-declaration entry point used by the CLI.
func (g *Generator) ExpandText(object, text string, association bool) (*Method, error) {
	var (
		inv mapping.Invocation
		err error
	)

	if association {
		inv, err = mapping.ParseAssociation(text)
	} else {
		inv, err = mapping.ParseField(text)
	}

	if err != nil {
		return nil, err
	}

	return g.Expand(object, inv)
}
