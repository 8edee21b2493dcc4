package gen

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"accessor-generator/internal/classify"
	"accessor-generator/internal/common"
)

// MethodKind tells field accessors from association accessors.
type MethodKind int

const (
	_ MethodKind = iota
	FieldMethod
	AssociationMethod
)

// String returns "field" or "association".
func (k MethodKind) String() string {
	switch k {
	case FieldMethod:
		return "field"
	case AssociationMethod:
		return "association"
	default:
		return common.UnknownStr
	}
}

// Param is one method parameter.
type Param struct {
	Name string
	Type string
}

// Method is a fully resolved accessor, ready to be rendered.
type Method struct {
	// Object is the receiver type.
	Object string
	// Receiver is the receiver variable name.
	Receiver string
	// Name is the method name, e.g. "field_foo".
	Name string
	Kind MethodKind
	// Class is the classification of the declared type, after any
	// `as scalar` override.
	Class  classify.Classification
	Params []Param
	// Result is the rendered result list, e.g. "(*int32, error)".
	Result string
	// Return is the rendered return expression list.
	Return string
	// Expr is the declaration the method was generated from.
	Expr string
}

// Signature returns the method signature without the receiver and body,
// e.g. "field_foo(_ *resolve.Executor) (*string, error)".
func (m *Method) Signature() string {
	params := make([]string, 0, len(m.Params))
	for _, p := range m.Params {
		params = append(params, p.Name+" "+p.Type)
	}

	return fmt.Sprintf("%s(%s) %s", m.Name, strings.Join(params, ", "), m.Result)
}

// Source renders the method as Go source. The output is valid Go but not
// necessarily gofmt-formatted.
func (m *Method) Source(comment bool) (string, error) {
	data := methodData{Method: m}
	if comment {
		data.Comment = fmt.Sprintf("%s is generated from %q.", m.Name, m.Expr)
	}

	var buf bytes.Buffer
	if err := methodTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}

	return buf.String(), nil
}

// String returns the method source without a comment.
func (m *Method) String() string {
	src, err := m.Source(false)
	if err != nil {
		return m.Signature()
	}

	return src
}

// methodData holds all data needed for the method template.
type methodData struct {
	*Method
	Comment string
}

var methodTemplate = template.Must(template.New("method").Parse(
	`{{if .Comment}}// {{.Comment}}
{{end}}func ({{.Receiver}} *{{.Object}}) {{.Signature}} {
	return {{.Return}}
}
`))
