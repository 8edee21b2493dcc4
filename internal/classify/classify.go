package classify

import (
	"accessor-generator/internal/common"
	"accessor-generator/internal/diagnostic"
	"accessor-generator/internal/typeexpr"
)

// Kind is the accessor form a type calls for.
type Kind int

const (
	_ Kind = iota
	Scalar
	Object
)

// String returns "scalar" or "object".
func (k Kind) String() string {
	switch k {
	case Scalar:
		return "scalar"
	case Object:
		return "object"
	default:
		return common.UnknownStr
	}
}

// Classification is the result of classifying a declared type.
type Classification struct {
	Kind Kind
	// Leaf is the innermost named type. It is set for both kinds so callers
	// can still parameterise a guard after forcing a scalar.
	Leaf *typeexpr.Named
}

// IsScalar returns true for the scalar kind.
func (c Classification) IsScalar() bool {
	return c.Kind == Scalar
}

// LeafName returns the leaf's identifier, or "" if there is no leaf.
func (c Classification) LeafName() string {
	if c.Leaf == nil {
		return ""
	}

	return c.Leaf.Name()
}

// ForceScalar returns a copy classified as scalar with the same leaf.
func (c Classification) ForceScalar() Classification {
	c.Kind = Scalar
	return c
}

// String returns "scalar" or "object(Leaf)".
func (c Classification) String() string {
	if c.Kind == Object {
		return "object(" + c.LeafName() + ")"
	}

	return c.Kind.String()
}

var builtinScalars = map[string]struct{}{
	"String": {},
	"i32":    {},
	"f64":    {},
	"bool":   {},
	"ID":     {},
}

// BuiltinScalars returns the allowlist in a stable order.
func BuiltinScalars() []string {
	return []string{"String", "i32", "f64", "bool", "ID"}
}

// IsBuiltinScalar reports whether name, compared as plain text, is one of
// the framework-recognised scalar types.
func IsBuiltinScalar(name string) bool {
	_, ok := builtinScalars[name]
	return ok
}

// Options tunes leaf resolution.
type Options struct {
	// StrictArity rejects generic applications with more than one type
	// argument instead of silently inspecting only the last one. Lifetime
	// arguments do not count.
	StrictArity bool
}

// LeafOf resolves the leaf of expr with default options.
func LeafOf(expr typeexpr.Expr) (*typeexpr.Named, error) {
	return Options{}.LeafOf(expr)
}

// Classify classifies expr with default options.
func Classify(expr typeexpr.Expr) (Classification, error) {
	return Options{}.Classify(expr)
}

// Classify resolves the leaf of expr and looks it up in the scalar
// allowlist.
func (o Options) Classify(expr typeexpr.Expr) (Classification, error) {
	leaf, err := o.LeafOf(expr)
	if err != nil {
		return Classification{}, err
	}

	if IsBuiltinScalar(leaf.Name()) {
		return Classification{Kind: Scalar, Leaf: leaf}, nil
	}

	return Classification{Kind: Object, Leaf: leaf}, nil
}

// LeafOf returns the innermost named type of expr. Errors are
// *diagnostic.Error values anchored to the offending node.
func (o Options) LeafOf(expr typeexpr.Expr) (*typeexpr.Named, error) {
	switch e := expr.(type) {
	case *typeexpr.Named:
		return o.leafOfNamed(e)
	case *typeexpr.Reference:
		return o.LeafOf(e.Elem)
	default:
		return nil, diagnostic.Errorf(diagnostic.CodeUnsupportedTypeShape, expr.Span(),
			"expected type path or reference type, found `%s`", expr)
	}
}

func (o Options) leafOfNamed(n *typeexpr.Named) (*typeexpr.Named, error) {
	if n.IsBare() {
		return n, nil
	}

	args := n.Args
	if args.Delim != typeexpr.Angle {
		return nil, diagnostic.Errorf(diagnostic.CodeUnsupportedTypeShape, args.Span(),
			"expected type without arguments or angle bracketed type arguments, found `%s`", n)
	}

	last := args.Last()
	if last == nil {
		return nil, diagnostic.Errorf(diagnostic.CodeEmptyGenericArguments, args.Span(),
			"generic type `%s` has no type arguments", n.Qualified())
	}

	if o.StrictArity {
		if err := checkArity(n); err != nil {
			return nil, err
		}
	}

	switch arg := last.(type) {
	case *typeexpr.Named:
		return o.leafOfNamed(arg)
	case *typeexpr.Reference:
		elem, ok := arg.Elem.(*typeexpr.Named)
		if !ok {
			return nil, diagnostic.Errorf(diagnostic.CodeUnsupportedArgumentShape, arg.Elem.Span(),
				"expected type path behind reference, found `%s`", arg.Elem)
		}

		return o.leafOfNamed(elem)
	default:
		return nil, diagnostic.Errorf(diagnostic.CodeUnsupportedArgumentShape, last.Span(),
			"expected type path or reference type as last argument of `%s`, found `%s`", n.Qualified(), last)
	}
}

func checkArity(n *typeexpr.Named) error {
	types := 0

	for _, item := range n.Args.Items {
		if _, ok := item.(*typeexpr.LifetimeArg); !ok {
			types++
		}
	}

	if types > 1 {
		return diagnostic.Errorf(diagnostic.CodeUnsupportedArgumentShape, n.Args.Span(),
			"`%s` takes %d type arguments; only single-argument wrappers are allowed with strict arity",
			n.Qualified(), types)
	}

	return nil
}
