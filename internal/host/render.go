package host

import (
	"go/token"
	"strings"

	"accessor-generator/internal/common"
	"accessor-generator/internal/diagnostic"
	"accessor-generator/internal/typeexpr"
)

type wrapperData struct {
	Elem string
	Key  string
	Args string
}

// RenderType spells expr as a Go type. Scalars and wrappers are looked up
// by the last path segment; other generic applications become Go
// instantiations. Errors carry CodeUnrenderableType and point at the node
// that has no Go spelling.
func (h *Host) RenderType(expr typeexpr.Expr) (string, error) {
	switch e := expr.(type) {
	case *typeexpr.Named:
		return h.renderNamed(e)
	case *typeexpr.Reference:
		// &[T] is already a reference type in Go.
		if sl, ok := e.Elem.(*typeexpr.Slice); ok && sl.Len == "" {
			return h.RenderType(sl)
		}

		elem, err := h.RenderType(e.Elem)
		if err != nil {
			return "", err
		}

		return "*" + elem, nil
	case *typeexpr.Slice:
		elem, err := h.RenderType(e.Elem)
		if err != nil {
			return "", err
		}

		return "[" + e.Len + "]" + elem, nil
	case *typeexpr.Tuple:
		return "", unrenderable(e, "Go has no tuple types")
	case *typeexpr.LifetimeArg:
		return "", unrenderable(e, "a lifetime is not a type")
	default:
		return "", unrenderable(expr, "unsupported type form")
	}
}

func (h *Host) renderNamed(n *typeexpr.Named) (string, error) {
	if n.IsBare() {
		if goName, ok := h.contract.Scalars[n.Name()]; ok {
			return goName, nil
		}

		return spellPath(n)
	}

	if n.Args.Delim == typeexpr.Paren {
		return "", diagnostic.Errorf(diagnostic.CodeUnrenderableType, n.Args.Span(),
			"cannot render `%s` as a Go type: call-style arguments", n)
	}

	args := make([]string, 0, len(n.Args.Items))

	for _, item := range n.Args.Items {
		if _, ok := item.(*typeexpr.LifetimeArg); ok {
			continue
		}

		s, err := h.RenderType(item)
		if err != nil {
			return "", err
		}

		args = append(args, s)
	}

	if len(args) == 0 {
		if len(n.Args.Items) == 0 {
			return "", diagnostic.Errorf(diagnostic.CodeUnrenderableType, n.Args.Span(),
				"cannot render `%s` as a Go type: empty argument list", n)
		}

		return spellPath(n)
	}

	if tmpl, ok := h.wrappers[n.Name()]; ok {
		data := wrapperData{Elem: args[len(args)-1], Args: strings.Join(args, ", ")}
		if common.IsMultiple(args) {
			data.Key = args[0]
		} else if h.keyed[n.Name()] {
			return "", diagnostic.Errorf(diagnostic.CodeUnrenderableType, n.Args.Span(),
				"cannot render `%s` as a Go type: `%s` needs a key and a value type", n, n.Name())
		}

		return execute(tmpl, data)
	}

	base, err := spellPath(n)
	if err != nil {
		return "", err
	}

	return base + "[" + strings.Join(args, ", ") + "]", nil
}

// spellPath is goPath for names that end up in the output; Go keywords
// there would not parse.
func spellPath(n *typeexpr.Named) (string, error) {
	for _, seg := range n.Path[max(len(n.Path)-2, 0):] {
		if token.IsKeyword(seg) {
			return "", unrenderable(n, "`"+seg+"` is a Go keyword")
		}
	}

	return goPath(n), nil
}

// goPath keeps the type name and the segment before it as the package
// qualifier: models::User and crate::models::User both become models.User.
func goPath(n *typeexpr.Named) string {
	if len(n.Path) == 1 {
		return n.Path[0]
	}

	return n.Path[len(n.Path)-2] + "." + n.Path[len(n.Path)-1]
}

func unrenderable(expr typeexpr.Expr, why string) *diagnostic.Error {
	return diagnostic.Errorf(diagnostic.CodeUnrenderableType, expr.Span(),
		"cannot render `%s` as a Go type: %s", expr, why)
}
