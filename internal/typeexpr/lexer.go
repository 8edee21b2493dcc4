package typeexpr

import (
	"unicode"
	"unicode/utf8"

	"accessor-generator/internal/diagnostic"
)

// Lex splits text into tokens. The result always ends with an EOF token
// whose span sits at len(text). Unknown characters become Illegal tokens;
// the parser decides how to report them.
func Lex(text string) []Token {
	var toks []Token

	pos := 0
	for pos < len(text) {
		r, size := utf8.DecodeRuneInString(text[pos:])

		if unicode.IsSpace(r) {
			pos += size
			continue
		}

		start := pos

		switch {
		case isIdentStart(r):
			pos = scanWhile(text, pos, isIdentPart)
			toks = append(toks, tok(Ident, text, start, pos))

		case isDigit(r):
			pos = scanWhile(text, pos, isDigit)
			toks = append(toks, tok(Int, text, start, pos))

		case r == '\'':
			end := scanWhile(text, pos+1, isIdentPart)
			if end == pos+1 {
				pos++
				toks = append(toks, tok(Illegal, text, start, pos))

				continue
			}

			pos = end
			toks = append(toks, tok(Lifetime, text, start, pos))

		case r == ':' && hasPrefix(text, pos, "::"):
			pos += 2
			toks = append(toks, tok(PathSep, text, start, pos))

		case r == '-' && hasPrefix(text, pos, "->"):
			pos += 2
			toks = append(toks, tok(Arrow, text, start, pos))

		default:
			pos += size

			kind, ok := punct[r]
			if !ok {
				kind = Illegal
			}

			toks = append(toks, tok(kind, text, start, pos))
		}
	}

	return append(toks, tok(EOF, text, len(text), len(text)))
}

var punct = map[rune]TokenKind{
	'<': Lt,
	'>': Gt,
	'(': LParen,
	')': RParen,
	'[': LBracket,
	']': RBracket,
	',': Comma,
	';': Semi,
	'&': Amp,
	'.': Dot,
}

func tok(kind TokenKind, text string, start, end int) Token {
	return Token{Kind: kind, Text: text[start:end], Span: diagnostic.NewSpan(start, end)}
}

func scanWhile(text string, pos int, ok func(rune) bool) int {
	for pos < len(text) {
		r, size := utf8.DecodeRuneInString(text[pos:])
		if !ok(r) {
			break
		}

		pos += size
	}

	return pos
}

func hasPrefix(text string, pos int, prefix string) bool {
	return len(text)-pos >= len(prefix) && text[pos:pos+len(prefix)] == prefix
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
