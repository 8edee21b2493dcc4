package diagnostic

import (
	"fmt"
	"io"
	"strings"
)

// Render writes d in a compiler-style layout:
//
//	error[ExpectedArrow]: expected `->`, found `:`
//	  --> models/user.go:12:22
//	   |
//	   | foo: i32
//	   |    ^
//	   = help: did you mean `->`?
//
// The source line is the invocation text itself, so nothing is read from disk.
func Render(w io.Writer, d Diagnostic) error {
	var b strings.Builder

	if d.Code != "" {
		fmt.Fprintf(&b, "%s[%s]: %s\n", d.Severity, d.Code, d.Message)
	} else {
		fmt.Fprintf(&b, "%s: %s\n", d.Severity, d.Message)
	}

	if d.Span.IsAnchored() {
		fmt.Fprintf(&b, "  --> %s\n", d.Span)
	}

	if d.Object != "" {
		fmt.Fprintf(&b, "   = in %s\n", d.Object)
	}

	if d.Expr != "" && d.Span.Start <= len(d.Expr) {
		b.WriteString("   |\n")
		fmt.Fprintf(&b, "   | %s\n", d.Expr)
		fmt.Fprintf(&b, "   | %s%s\n", strings.Repeat(" ", d.Span.Start), strings.Repeat("^", d.Span.Len()))
	}

	for _, s := range d.Suggestions {
		fmt.Fprintf(&b, "   = help: %s\n", s)
	}

	_, err := io.WriteString(w, b.String())

	return err
}

// RenderAll renders every diagnostic in ds, errors first.
func RenderAll(w io.Writer, ds Diagnostics) error {
	for _, d := range ds.All() {
		if err := Render(w, d); err != nil {
			return err
		}
	}

	return nil
}
