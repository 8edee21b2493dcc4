package typeexpr

import (
	"accessor-generator/internal/diagnostic"
)

// Stream is a cursor over the tokens of one expression.
type Stream struct {
	text string
	toks []Token
	pos  int
}

// NewStream lexes text and positions the cursor on the first token.
func NewStream(text string) *Stream {
	return &Stream{text: text, toks: Lex(text)}
}

// Text returns the expression text the stream was built from.
func (s *Stream) Text() string {
	return s.text
}

// Peek returns the current token without consuming it.
func (s *Stream) Peek() Token {
	return s.PeekN(0)
}

// PeekN returns the token n positions ahead. Past the end it returns EOF.
func (s *Stream) PeekN(n int) Token {
	if s.pos+n >= len(s.toks) {
		return s.toks[len(s.toks)-1]
	}

	return s.toks[s.pos+n]
}

// Next consumes and returns the current token.
func (s *Stream) Next() Token {
	t := s.Peek()
	if t.Kind != EOF {
		s.pos++
	}

	return t
}

// Done reports whether only EOF remains.
func (s *Stream) Done() bool {
	return s.Peek().Kind == EOF
}

// Parse parses text as a single type expression with nothing after it.
func Parse(text string) (Expr, error) {
	s := NewStream(text)

	expr, err := s.ParseType()
	if err != nil {
		return nil, err
	}

	if t := s.Peek(); t.Kind != EOF {
		return nil, diagnostic.Errorf(diagnostic.CodeUnexpectedToken, t.Span,
			"unexpected %s after type `%s`", t.Describe(), expr)
	}

	return expr, nil
}

// ParseType parses one type expression starting at the current token.
// Errors carry CodeMalformedTypeExpression.
func (s *Stream) ParseType() (Expr, error) {
	t := s.Peek()

	switch t.Kind {
	case Ident:
		return s.parseNamed()
	case Amp:
		return s.parseReference()
	case LParen:
		return s.parseTuple()
	case LBracket:
		return s.parseSlice()
	case Lifetime:
		s.Next()
		return &LifetimeArg{Name: t.Text, span: t.Span}, nil
	default:
		return nil, s.expected("type")
	}
}

func (s *Stream) parseNamed() (Expr, error) {
	first := s.Next()
	n := &Named{Path: []string{first.Text}, span: first.Span}

	for {
		sep := s.Peek()
		if sep.Kind != PathSep && sep.Kind != Dot {
			break
		}

		if s.PeekN(1).Kind != Ident {
			s.Next()
			return nil, s.expected("identifier after " + sep.Kind.String())
		}

		if n.Sep == "" {
			n.Sep = sep.Text
		}

		s.Next()

		seg := s.Next()
		n.Path = append(n.Path, seg.Text)
		n.span = n.span.To(seg.Span)
	}

	var (
		args *Args
		err  error
	)

	switch s.Peek().Kind {
	case Lt:
		args, err = s.parseArgs(Angle, Gt)
	case LParen:
		args, err = s.parseArgs(Paren, RParen)
		if err == nil && s.Peek().Kind == Arrow {
			s.Next()

			args.Output, err = s.ParseType()
			if err == nil {
				args.span = args.span.To(args.Output.Span())
			}
		}
	case LBracket:
		args, err = s.parseArgs(Square, RBracket)
	default:
		return n, nil
	}

	if err != nil {
		return nil, err
	}

	n.Args = args
	n.span = n.span.To(args.span)

	return n, nil
}

// parseArgs parses a delimited, comma-separated list. An empty list is
// accepted here; the classifier owns that rule.
func (s *Stream) parseArgs(delim Delim, closing TokenKind) (*Args, error) {
	open := s.Next()
	args := &Args{Delim: delim, span: open.Span}

	items, end, err := s.parseList(closing)
	if err != nil {
		return nil, err
	}

	args.Items = items
	args.span = args.span.To(end.Span)

	return args, nil
}

func (s *Stream) parseList(closing TokenKind) ([]Expr, Token, error) {
	var items []Expr

	for {
		if t := s.Peek(); t.Kind == closing {
			return items, s.Next(), nil
		}

		item, err := s.ParseType()
		if err != nil {
			return nil, Token{}, err
		}

		items = append(items, item)

		switch s.Peek().Kind {
		case Comma:
			s.Next()
		case closing:
		default:
			return nil, Token{}, s.expected(Comma.String() + " or " + closing.String())
		}
	}
}

func (s *Stream) parseReference() (Expr, error) {
	amp := s.Next()
	ref := &Reference{span: amp.Span}

	if t := s.Peek(); t.Kind == Lifetime {
		ref.Lifetime = s.Next().Text
	}

	if s.Peek().Is("mut") && startsType(s.PeekN(1).Kind) {
		s.Next()

		ref.Mut = true
	}

	elem, err := s.ParseType()
	if err != nil {
		return nil, err
	}

	ref.Elem = elem
	ref.span = ref.span.To(elem.Span())

	return ref, nil
}

func (s *Stream) parseTuple() (Expr, error) {
	open := s.Next()

	elems, end, err := s.parseList(RParen)
	if err != nil {
		return nil, err
	}

	return &Tuple{Elems: elems, span: open.Span.To(end.Span)}, nil
}

func (s *Stream) parseSlice() (Expr, error) {
	open := s.Next()

	elem, err := s.ParseType()
	if err != nil {
		return nil, err
	}

	sl := &Slice{Elem: elem}

	if s.Peek().Kind == Semi {
		s.Next()

		n := s.Peek()
		if n.Kind != Int && n.Kind != Ident {
			return nil, s.expected("array length")
		}

		sl.Len = s.Next().Text
	}

	if s.Peek().Kind != RBracket {
		return nil, s.expected(RBracket.String())
	}

	sl.span = open.Span.To(s.Next().Span)

	return sl, nil
}

func (s *Stream) expected(what string) *diagnostic.Error {
	t := s.Peek()

	return diagnostic.Errorf(diagnostic.CodeMalformedTypeExpression, t.Span,
		"expected %s, found %s", what, t.Describe())
}

func startsType(k TokenKind) bool {
	switch k {
	case Ident, Amp, LParen, LBracket:
		return true
	default:
		return false
	}
}
