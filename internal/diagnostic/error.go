package diagnostic

import (
	"errors"
	"fmt"
)

// Error carries a Diagnostic through an error return.
type Error struct {
	Diagnostic
}

// Errorf builds an error-severity diagnostic for span.
func Errorf(code Code, span Span, format string, args ...any) *Error {
	return &Error{Diagnostic: Diagnostic{
		Severity: DiagnosticError,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Span:     span,
	}}
}

func (e *Error) Error() string {
	return e.Diagnostic.String()
}

// WithSuggestion returns a copy of e with suggestions appended.
func (e *Error) WithSuggestion(suggestions ...string) *Error {
	c := *e
	c.Suggestions = append(append([]string{}, e.Suggestions...), suggestions...)

	return &c
}

// At returns a copy of e anchored to origin, remembering the expression text
// and the object the invocation belongs to.
func (e *Error) At(o Origin, expr, object string) *Error {
	c := *e
	c.Span = e.Span.Within(o)
	c.Expr = expr
	c.Object = object

	return &c
}

// HasCode reports whether err carries a diagnostic with the given code.
func HasCode(err error, code Code) bool {
	de, ok := AsError(err)
	return ok && de.Code == code
}

// AsError unwraps err to an *Error.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}

	return nil, false
}
