package typeexpr

import (
	"strings"

	"accessor-generator/internal/common"
	"accessor-generator/internal/diagnostic"
)

// Expr is a parsed type expression. The concrete types are *Named,
// *Reference, *Tuple, *Slice and *LifetimeArg.
type Expr interface {
	// Span returns the byte range of the node in the expression text.
	Span() diagnostic.Span
	// String renders the node back in canonical spelling.
	String() string

	typeExpr()
}

// Delim is the bracket style of a generic argument list.
type Delim int

const (
	Angle  Delim = iota // Vec<T>
	Paren               // Fn(A, B) -> R
	Square              // Foo[T]
)

// String returns the opening bracket.
func (d Delim) String() string {
	switch d {
	case Paren:
		return "("
	case Square:
		return "["
	default:
		return "<"
	}
}

func (d Delim) closing() string {
	switch d {
	case Paren:
		return ")"
	case Square:
		return "]"
	default:
		return ">"
	}
}

// Named is a type path with an optional argument list:
// `i32`, `models::User`, `Vec<User>`, `Fn(i32) -> bool`.
type Named struct {
	// Path holds the segments; the last one is the type name.
	Path []string
	// Sep is the separator the path was written with ("::" or ".").
	Sep string
	// Args is nil for a bare path.
	Args *Args

	span diagnostic.Span
}

// Args is the bracketed argument list of a Named type.
type Args struct {
	Delim Delim
	Items []Expr
	// Output is the `-> R` part of a call-style list, if any.
	Output Expr

	span diagnostic.Span
}

// Reference is a borrow marker around one type: `&T`, `&'a mut T`.
type Reference struct {
	Lifetime string
	Mut      bool
	Elem     Expr

	span diagnostic.Span
}

// Tuple is `(A, B, ...)`.
type Tuple struct {
	Elems []Expr

	span diagnostic.Span
}

// Slice is `[T]`, or `[T; N]` when Len is set.
type Slice struct {
	Elem Expr
	Len  string

	span diagnostic.Span
}

// LifetimeArg is a lifetime written in argument position, such as the `'a`
// in `Cow<'a, str>`.
type LifetimeArg struct {
	Name string

	span diagnostic.Span
}

func (*Named) typeExpr()       {}
func (*Reference) typeExpr()   {}
func (*Tuple) typeExpr()       {}
func (*Slice) typeExpr()       {}
func (*LifetimeArg) typeExpr() {}

func (n *Named) Span() diagnostic.Span       { return n.span }
func (r *Reference) Span() diagnostic.Span   { return r.span }
func (t *Tuple) Span() diagnostic.Span       { return t.span }
func (s *Slice) Span() diagnostic.Span       { return s.span }
func (l *LifetimeArg) Span() diagnostic.Span { return l.span }

// Span returns the range from the opening to the closing bracket.
func (a *Args) Span() diagnostic.Span { return a.span }

// Name returns the last path segment, the identifier the scalar table is
// keyed by.
func (n *Named) Name() string {
	return n.Path[len(n.Path)-1]
}

// Qualified returns the path joined with dots, the way Go spells a
// package-qualified type.
func (n *Named) Qualified() string {
	return strings.Join(n.Path, ".")
}

// IsBare returns true if the type has no argument list at all.
func (n *Named) IsBare() bool {
	return n.Args == nil
}

// Last returns the final argument, or nil for an empty list.
func (a *Args) Last() Expr {
	last, _ := common.Last(a.Items)
	return last
}

// String renders the path and arguments.
func (n *Named) String() string {
	sep := n.Sep
	if sep == "" {
		sep = "::"
	}

	s := strings.Join(n.Path, sep)
	if n.Args != nil {
		s += n.Args.String()
	}

	return s
}

// String renders the bracketed list including a call-style output type.
func (a *Args) String() string {
	s := a.Delim.String() + joinExprs(a.Items) + a.Delim.closing()
	if a.Output != nil {
		s += " -> " + a.Output.String()
	}

	return s
}

func (r *Reference) String() string {
	var b strings.Builder

	b.WriteString("&")

	if r.Lifetime != "" {
		b.WriteString(r.Lifetime)
		b.WriteString(" ")
	}

	if r.Mut {
		b.WriteString("mut ")
	}

	b.WriteString(r.Elem.String())

	return b.String()
}

func (t *Tuple) String() string {
	if len(t.Elems) == 1 {
		return "(" + t.Elems[0].String() + ",)"
	}

	return "(" + joinExprs(t.Elems) + ")"
}

func (s *Slice) String() string {
	if s.Len != "" {
		return "[" + s.Elem.String() + "; " + s.Len + "]"
	}

	return "[" + s.Elem.String() + "]"
}

func (l *LifetimeArg) String() string {
	return l.Name
}

func joinExprs(exprs []Expr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}

	return strings.Join(parts, ", ")
}
