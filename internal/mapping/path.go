package mapping

import (
	"go/token"
	"strings"
	"unicode"

	"accessor-generator/internal/diagnostic"
)

// KeyPath is a dotted field path rooted at the receiver, e.g. "other.bar".
type KeyPath struct {
	Segments []string
	Span     diagnostic.Span
}

// Last returns the final segment, which names the generated method.
func (p KeyPath) Last() string {
	if len(p.Segments) == 0 {
		return ""
	}

	return p.Segments[len(p.Segments)-1]
}

// String returns the dotted form.
func (p KeyPath) String() string {
	return strings.Join(p.Segments, ".")
}

// Selector returns the Go selector expression for the path on recv.
func (p KeyPath) Selector(recv string) string {
	return recv + "." + p.String()
}

// ParseKeyPath parses a dotted path outside of an expression, as used by
// the structured YAML form.
func ParseKeyPath(path string) (KeyPath, error) {
	if path == "" {
		return KeyPath{}, diagnostic.Errorf(diagnostic.CodeMalformedKeyPath, diagnostic.NewSpan(0, 0),
			"empty path")
	}

	var (
		kp     KeyPath
		offset int
	)

	for part := range strings.SplitSeq(path, ".") {
		span := diagnostic.NewSpan(offset, offset+len(part))
		offset += len(part) + 1

		if part == "" {
			return KeyPath{}, diagnostic.Errorf(diagnostic.CodeMalformedKeyPath, span,
				"invalid path %q: empty segment", path)
		}

		if err := checkSegment(part, span); err != nil {
			return KeyPath{}, err
		}

		kp.Segments = append(kp.Segments, part)
	}

	kp.Span = diagnostic.NewSpan(0, len(path))

	return kp, nil
}

func checkSegment(name string, span diagnostic.Span) error {
	if !isValidIdent(name) {
		return diagnostic.Errorf(diagnostic.CodeMalformedKeyPath, span,
			"invalid identifier %q in path", name)
	}

	if token.IsKeyword(name) {
		return diagnostic.Errorf(diagnostic.CodeMalformedKeyPath, span,
			"`%s` is a Go keyword and cannot be used as a field name", name)
	}

	return nil
}

// isValidIdent checks if a string is a valid Go identifier.
func isValidIdent(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		if i == 0 {
			if !isLetter(r) && r != '_' {
				return false
			}
		} else if !isLetter(r) && !isDigit(r) && r != '_' {
			return false
		}
	}

	return true
}

func isLetter(r rune) bool {
	return unicode.IsLetter(r)
}

func isDigit(r rune) bool {
	return unicode.IsDigit(r)
}

// IsValidIdent reports whether s is a Go identifier. Keywords are not
// rejected here.
func IsValidIdent(s string) bool {
	return isValidIdent(s)
}
