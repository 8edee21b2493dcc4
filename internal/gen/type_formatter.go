package gen

import (
	"errors"
	"fmt"

	"accessor-generator/internal/classify"
	"accessor-generator/internal/diagnostic"
	"accessor-generator/internal/mapping"
	"accessor-generator/internal/typeexpr"
)

// typeRef is a declared type resolved for code generation.
type typeRef struct {
	// Declared is the type as written.
	Declared typeexpr.Expr
	// Go is the declared type spelled as Go.
	Go string
	// Class is the classification of the declared type.
	Class classify.Classification
	// Guard is the rendered guard type, empty for scalars.
	Guard string
}

// resolveType classifies and renders expr. The leaf is always resolved, so
// forcing a scalar does not hide leaf errors.
func (g *Generator) resolveType(expr typeexpr.Expr, forceScalar, needGuard bool) (*typeRef, error) {
	class, err := g.config.Classify.Classify(expr)
	if err != nil {
		return nil, err
	}

	if forceScalar {
		class = class.ForceScalar()
	}

	goType, err := g.host.RenderType(expr)
	if err != nil {
		return nil, err
	}

	ref := &typeRef{Declared: expr, Go: goType, Class: class}

	if needGuard || !class.IsScalar() {
		leaf, err := g.host.RenderType(class.Leaf)
		if err != nil {
			return nil, err
		}

		if ref.Guard, err = g.host.Guard(leaf); err != nil {
			return nil, err
		}
	}

	return ref, nil
}

// anchor ties err to the declaration it came from.
func anchor(err error, inv mapping.Invocation, object string) error {
	var de *diagnostic.Error
	if errors.As(err, &de) {
		if de.Span.IsAnchored() {
			c := *de
			c.Object = object
			c.Expr = inv.Expression()

			return &c
		}

		return de.At(inv.Position(), inv.Expression(), object)
	}

	return fmt.Errorf("%s: %w", inv.Expression(), err)
}
