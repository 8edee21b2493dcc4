package mapping

import (
	"fmt"

	"accessor-generator/internal/diagnostic"
	"accessor-generator/internal/match"
	"accessor-generator/internal/typeexpr"
)

// MethodPrefix is prepended to the last path segment to name a method.
const MethodPrefix = "field_"

// Invocation is one parsed declaration, either a field or an association.
type Invocation interface {
	// MethodName is the name of the method the invocation expands to.
	MethodName() string
	// DeclaredType is the type written after the arrow.
	DeclaredType() typeexpr.Expr
	// Expression is the declaration text as written.
	Expression() string
	// Position is where the declaration text starts.
	Position() diagnostic.Origin
}

// FieldMapping is a parsed `key.path -> Type [as scalar]` declaration.
type FieldMapping struct {
	KeyPath      KeyPath
	Type         typeexpr.Expr
	ForcedScalar bool
	Text         string
	Origin       diagnostic.Origin
}

func (f *FieldMapping) MethodName() string          { return MethodPrefix + f.KeyPath.Last() }
func (f *FieldMapping) DeclaredType() typeexpr.Expr { return f.Type }
func (f *FieldMapping) Expression() string          { return f.Text }
func (f *FieldMapping) Position() diagnostic.Origin { return f.Origin }

// AssociationMapping is a parsed `name -> Type` declaration.
type AssociationMapping struct {
	Name   string
	Span   diagnostic.Span
	Type   typeexpr.Expr
	Text   string
	Origin diagnostic.Origin
}

func (a *AssociationMapping) MethodName() string          { return MethodPrefix + a.Name }
func (a *AssociationMapping) DeclaredType() typeexpr.Expr { return a.Type }
func (a *AssociationMapping) Expression() string          { return a.Text }
func (a *AssociationMapping) Position() diagnostic.Origin { return a.Origin }

// ParseField parses a field declaration. Errors are *diagnostic.Error values
// with unanchored spans; see Decl.Field for the anchored variant.
func ParseField(text string) (*FieldMapping, error) {
	s := typeexpr.NewStream(text)

	path, err := parseKeyPath(s)
	if err != nil {
		return nil, err
	}

	if err := expectArrow(s); err != nil {
		return nil, err
	}

	typ, err := s.ParseType()
	if err != nil {
		return nil, err
	}

	f := &FieldMapping{KeyPath: path, Type: typ, Text: text}

	if s.Peek().Is("as") {
		as := s.Next()
		kw := s.Next()

		if !kw.Is("scalar") {
			return nil, unexpectedScalarKeyword(as, kw)
		}

		f.ForcedScalar = true
	}

	if err := expectEnd(s, typ); err != nil {
		return nil, err
	}

	return f, nil
}

// ParseAssociation parses an association declaration. The name is a single
// identifier and there is no `as scalar` clause.
func ParseAssociation(text string) (*AssociationMapping, error) {
	s := typeexpr.NewStream(text)

	name := s.Peek()
	if name.Kind != typeexpr.Ident {
		return nil, diagnostic.Errorf(diagnostic.CodeMalformedKeyPath, name.Span,
			"expected association name, found %s", name.Describe())
	}

	s.Next()

	if err := checkSegment(name.Text, name.Span); err != nil {
		return nil, err
	}

	switch t := s.Peek(); t.Kind {
	case typeexpr.Ident:
		return nil, missingSeparator(name, t)
	case typeexpr.Dot:
		return nil, diagnostic.Errorf(diagnostic.CodeExpectedArrow, t.Span,
			"expected `->`, found %s; association names are a single identifier", t.Describe())
	}

	if err := expectArrow(s); err != nil {
		return nil, err
	}

	typ, err := s.ParseType()
	if err != nil {
		return nil, err
	}

	if t := s.Peek(); t.Is("as") {
		return nil, diagnostic.Errorf(diagnostic.CodeUnexpectedToken, t.Span,
			"associations cannot be declared `as scalar`")
	}

	if err := expectEnd(s, typ); err != nil {
		return nil, err
	}

	return &AssociationMapping{Name: name.Text, Span: name.Span, Type: typ, Text: text}, nil
}

func parseKeyPath(s *typeexpr.Stream) (KeyPath, error) {
	first := s.Peek()
	if first.Kind != typeexpr.Ident {
		return KeyPath{}, diagnostic.Errorf(diagnostic.CodeMalformedKeyPath, first.Span,
			"expected field name, found %s", first.Describe())
	}

	kp := KeyPath{Span: first.Span}

	for {
		seg := s.Next()
		if err := checkSegment(seg.Text, seg.Span); err != nil {
			return KeyPath{}, err
		}

		kp.Segments = append(kp.Segments, seg.Text)
		kp.Span = kp.Span.To(seg.Span)

		switch t := s.Peek(); t.Kind {
		case typeexpr.Dot:
			s.Next()

			if n := s.Peek(); n.Kind != typeexpr.Ident {
				return KeyPath{}, diagnostic.Errorf(diagnostic.CodeMalformedKeyPath, n.Span,
					"expected field name after `.`, found %s", n.Describe())
			}
		case typeexpr.Ident:
			return KeyPath{}, missingSeparator(seg, t)
		default:
			return kp, nil
		}
	}
}

func missingSeparator(prev, next typeexpr.Token) *diagnostic.Error {
	return diagnostic.Errorf(diagnostic.CodeMalformedKeyPath, next.Span,
		"expected `.` or `->` between `%s` and `%s`", prev.Text, next.Text)
}

func expectArrow(s *typeexpr.Stream) error {
	t := s.Peek()
	if t.Kind == typeexpr.Arrow {
		s.Next()
		return nil
	}

	err := diagnostic.Errorf(diagnostic.CodeExpectedArrow, t.Span, "expected `->`, found %s", t.Describe())
	if t.Kind == typeexpr.Illegal && (t.Text == "-" || t.Text == "=" || t.Text == ":") {
		err = err.WithSuggestion("separate the name and its type with `->`")
	}

	return err
}

func expectEnd(s *typeexpr.Stream, typ typeexpr.Expr) error {
	t := s.Peek()
	if t.Kind == typeexpr.EOF {
		return nil
	}

	return diagnostic.Errorf(diagnostic.CodeUnexpectedToken, t.Span,
		"unexpected %s after type `%s`", t.Describe(), typ)
}

func unexpectedScalarKeyword(as, kw typeexpr.Token) *diagnostic.Error {
	span := kw.Span
	if kw.Kind == typeexpr.EOF {
		span = as.Span
	}

	err := diagnostic.Errorf(diagnostic.CodeUnexpectedScalarKeyword, span,
		"expected `scalar` after `as`, found %s", kw.Describe())

	if kw.Kind == typeexpr.Ident {
		if s, ok := match.Suggest(kw.Text, []string{"scalar"}); ok {
			err = err.WithSuggestion(fmt.Sprintf("did you mean `as %s`?", s))
		}
	}

	return err
}
