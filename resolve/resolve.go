// Package resolve provides the execution context and traversal guard types
// that generated accessors take by default.
package resolve

import (
	"context"
	"slices"
	"strings"
)

// ID is an opaque identifier, the Go spelling of the ID scalar.
type ID string

// String returns the identifier text.
func (id ID) String() string {
	return string(id)
}

// Executor carries per-request state through resolution.
type Executor struct {
	ctx  context.Context
	vars map[string]any
}

// NewExecutor returns an executor bound to ctx. A nil ctx means
// context.Background().
func NewExecutor(ctx context.Context) *Executor {
	if ctx == nil {
		ctx = context.Background()
	}

	return &Executor{ctx: ctx, vars: map[string]any{}}
}

// Context returns the executor's context.
func (e *Executor) Context() context.Context {
	return e.ctx
}

// Var returns a request variable.
func (e *Executor) Var(name string) (any, bool) {
	v, ok := e.vars[name]
	return v, ok
}

// WithVar returns a copy of e with name set to v.
func (e *Executor) WithVar(name string, v any) *Executor {
	c := &Executor{ctx: e.ctx, vars: make(map[string]any, len(e.vars)+1)}
	for k, val := range e.vars {
		c.vars[k] = val
	}

	c.vars[name] = v

	return c
}

// Trail is the guard object accessors take when they return values of an
// object type T. It records the selection path that led to the value, so
// resolvers can bound depth and report where they are.
type Trail[T any] struct {
	fields []string
}

// NewTrail returns a trail starting at fields.
func NewTrail[T any](fields ...string) *Trail[T] {
	return &Trail[T]{fields: slices.Clone(fields)}
}

// Push returns a new trail extended by field.
func (t *Trail[T]) Push(field string) *Trail[T] {
	return &Trail[T]{fields: append(slices.Clone(t.fields), field)}
}

// Fields returns the selected fields in order.
func (t *Trail[T]) Fields() []string {
	return slices.Clone(t.fields)
}

// Depth returns the number of selected fields.
func (t *Trail[T]) Depth() int {
	return len(t.fields)
}

// Has reports whether field was selected anywhere on the trail.
func (t *Trail[T]) Has(field string) bool {
	return slices.Contains(t.fields, field)
}

// String returns the dotted path.
func (t *Trail[T]) String() string {
	return strings.Join(t.fields, ".")
}
