package typeexpr

import (
	"fmt"

	"accessor-generator/internal/diagnostic"
)

// TokenKind identifies a lexical token.
type TokenKind int

const (
	EOF TokenKind = iota
	Illegal
	Ident
	Int
	Lifetime // 'a
	Lt       // <
	Gt       // >
	LParen   // (
	RParen   // )
	LBracket // [
	RBracket // ]
	Comma    // ,
	Semi     // ;
	Amp      // &
	Dot      // .
	PathSep  // ::
	Arrow    // ->
)

var tokenNames = [...]string{
	EOF:      "end of input",
	Illegal:  "illegal character",
	Ident:    "identifier",
	Int:      "integer",
	Lifetime: "lifetime",
	Lt:       "`<`",
	Gt:       "`>`",
	LParen:   "`(`",
	RParen:   "`)`",
	LBracket: "`[`",
	RBracket: "`]`",
	Comma:    "`,`",
	Semi:     "`;`",
	Amp:      "`&`",
	Dot:      "`.`",
	PathSep:  "`::`",
	Arrow:    "`->`",
}

// String returns the name used in "expected X, found Y" messages.
func (k TokenKind) String() string {
	if int(k) < len(tokenNames) {
		return tokenNames[k]
	}

	return fmt.Sprintf("token(%d)", int(k))
}

// Token is a lexical token with its position in the expression text.
type Token struct {
	Kind TokenKind
	Text string
	Span diagnostic.Span
}

// Is reports whether t is an identifier spelled word.
func (t Token) Is(word string) bool {
	return t.Kind == Ident && t.Text == word
}

// Describe renders t for error messages: identifiers and illegal characters
// are quoted with their text, punctuation by kind.
func (t Token) Describe() string {
	switch t.Kind {
	case Ident, Int, Lifetime:
		return fmt.Sprintf("%s `%s`", t.Kind, t.Text)
	case Illegal:
		return fmt.Sprintf("unexpected character `%s`", t.Text)
	default:
		return t.Kind.String()
	}
}
