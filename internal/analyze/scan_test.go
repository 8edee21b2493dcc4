package analyze

import (
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accessor-generator/internal/diagnostic"
)

func scan(t *testing.T, src string) ([]Directive, diagnostic.Diagnostics) {
	t.Helper()

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "query.go", src, parser.ParseComments)
	require.NoError(t, err)

	return ScanFile(fset, file)
}

const querySrc = `package models

//accessor:field other.bar -> Option<i32>
//accessor:field name -> String
//accessor:association country -> Country
type Query struct {
	other   Other
	name    string
	country Country
}

// Country has no directives.
type Country struct{}
`

func TestScanFile(t *testing.T) {
	found, diags := scan(t, querySrc)
	require.False(t, diags.HasErrors())
	require.Len(t, found, 3)

	assert.Equal(t, DirectiveField, found[0].Kind)
	assert.Equal(t, "other.bar -> Option<i32>", found[0].Decl.Text)
	assert.Equal(t, diagnostic.Origin{Filename: "query.go", Line: 3, Column: 18}, found[0].Decl.Origin)
	assert.Equal(t, "Query", found[0].Type.Name)
	assert.Equal(t, diagnostic.Origin{Filename: "query.go", Line: 6, Column: 6}, found[0].TypePos)

	assert.Equal(t, "name -> String", found[1].Decl.Text)

	assert.Equal(t, DirectiveAssociation, found[2].Kind)
	assert.Equal(t, "country -> Country", found[2].Decl.Text)
	assert.Equal(t, diagnostic.Origin{Filename: "query.go", Line: 5, Column: 24}, found[2].Decl.Origin)
}

func TestScanFile_ErrorsLandOnComment(t *testing.T) {
	found, diags := scan(t, `package models

//accessor:field other.bar => i32
type Query struct{}
`)
	require.Len(t, found, 1)
	require.False(t, diags.HasErrors())

	_, err := found[0].Decl.Field()
	require.Error(t, err)

	de, ok := diagnostic.AsError(err)
	require.True(t, ok)
	assert.Equal(t, diagnostic.CodeExpectedArrow, de.Code)
	assert.Equal(t, "query.go", de.Span.Filename)
	assert.Equal(t, 3, de.Span.Line)
	assert.Equal(t, 28, de.Span.Column)
}

func TestScanFile_UnknownDirective(t *testing.T) {
	found, diags := scan(t, `package models

//accessor:fied name -> String
//accessor:bogus name -> String
//accessor:association country -> Country
type Query struct{}
`)
	require.Len(t, found, 1)
	assert.Equal(t, DirectiveAssociation, found[0].Kind)

	require.Len(t, diags.Errors, 2)

	first := diags.Errors[0]
	assert.Equal(t, diagnostic.CodeUnknownDirective, first.Code)
	assert.Equal(t, "Query", first.Object)
	assert.Equal(t, "fied name -> String", first.Expr)
	assert.Equal(t, 3, first.Span.Line)
	assert.Equal(t, 12, first.Span.Column)
	assert.Equal(t, []string{"did you mean `accessor:field`?"}, first.Suggestions)

	assert.Empty(t, diags.Errors[1].Suggestions)
}

func TestScanFile_DocPlacement(t *testing.T) {
	found, diags := scan(t, `package models

type (
	//accessor:field a -> i32
	A struct{}

	// B has none.
	B struct{}
)

//accessor:field c -> i32
type C struct{}

// Not a directive:
// accessor:field d -> i32
type D struct{}

//accessor:field e -> i32
type E int

//accessor:field f -> T
type F[T any] struct{}
`)
	require.False(t, diags.HasErrors())
	require.Len(t, diags.Warnings, 2)
	assert.Contains(t, diags.Warnings[0].Message, "only read on struct types")
	assert.Contains(t, diags.Warnings[1].Message, "generic type `F`")

	require.Len(t, found, 2)
	assert.Equal(t, "A", found[0].Type.Name)
	assert.Equal(t, "C", found[1].Type.Name)
}

func TestScanFile_EmptyExpression(t *testing.T) {
	found, _ := scan(t, "package models\n\n//accessor:field\ntype Q struct{}\n")
	require.Len(t, found, 1)
	assert.Empty(t, found[0].Decl.Text)

	_, err := found[0].Decl.Field()
	assert.True(t, diagnostic.HasCode(err, diagnostic.CodeMalformedKeyPath))
}

func TestGroup(t *testing.T) {
	found, _ := scan(t, querySrc)

	f := Group(found)
	require.Len(t, f.Objects, 1)

	o := f.Objects[0]
	assert.Equal(t, "Query", o.Type)
	assert.Len(t, o.Fields, 2)
	assert.Len(t, o.Associations, 1)
	assert.Equal(t, 6, o.Origin.Line)

	invs, diags := o.Invocations()
	require.False(t, diags.HasErrors())
	require.Len(t, invs, 3)
	assert.Equal(t, "field_bar", invs[0].MethodName())
	assert.Equal(t, "field_country", invs[2].MethodName())
}

func TestDirectiveKind_String(t *testing.T) {
	assert.Equal(t, "field", DirectiveField.String())
	assert.Equal(t, "association", DirectiveAssociation.String())
	assert.Equal(t, "unknown", DirectiveUnknown.String())
}
