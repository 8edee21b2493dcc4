package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accessor-generator/internal/diagnostic"
)

func TestParseField(t *testing.T) {
	tests := []struct {
		input  string
		path   []string
		typ    string
		method string
		forced bool
	}{
		{"foo -> String", []string{"foo"}, "String", "field_foo", false},
		{"other.bar -> Option<i32>", []string{"other", "bar"}, "Option<i32>", "field_bar", false},
		{"cursor -> Cursor as scalar", []string{"cursor"}, "Cursor", "field_cursor", true},
		{"users -> Vec<User>", []string{"users"}, "Vec<User>", "field_users", false},
		{"a.b.c->Vec<&'a mut User>", []string{"a", "b", "c"}, "Vec<&'a mut User>", "field_c", false},
		{"foo -> Fn(i32)->bool", []string{"foo"}, "Fn(i32) -> bool", "field_foo", false},
		{"  spaced  ->  i32  ", []string{"spaced"}, "i32", "field_spaced", false},
		{"héllo -> i32", []string{"héllo"}, "i32", "field_héllo", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			f, err := ParseField(tt.input)
			require.NoError(t, err)

			assert.Equal(t, tt.path, f.KeyPath.Segments)
			assert.Equal(t, tt.typ, f.Type.String())
			assert.Equal(t, tt.method, f.MethodName())
			assert.Equal(t, tt.forced, f.ForcedScalar)
			assert.Equal(t, tt.input, f.Expression())
		})
	}
}

func TestParseField_KeyPathSpan(t *testing.T) {
	f, err := ParseField("other.bar -> Option<i32>")
	require.NoError(t, err)

	assert.Equal(t, diagnostic.NewSpan(0, 9), f.KeyPath.Span)
	assert.Equal(t, "other.bar", f.KeyPath.String())
	assert.Equal(t, "r.other.bar", f.KeyPath.Selector("r"))
}

func TestParseField_Errors(t *testing.T) {
	tests := []struct {
		input string
		code  diagnostic.Code
		start int
		msg   string
	}{
		{"", diagnostic.CodeMalformedKeyPath, 0, "expected field name, found end of input"},
		{"-> i32", diagnostic.CodeMalformedKeyPath, 0, "expected field name"},
		{".foo -> i32", diagnostic.CodeMalformedKeyPath, 0, "expected field name"},
		{"foo bar -> i32", diagnostic.CodeMalformedKeyPath, 4, "between `foo` and `bar`"},
		{"foo. -> i32", diagnostic.CodeMalformedKeyPath, 5, "expected field name after `.`"},
		{"foo..bar -> i32", diagnostic.CodeMalformedKeyPath, 4, "expected field name after `.`"},
		{"type -> i32", diagnostic.CodeMalformedKeyPath, 0, "Go keyword"},
		{"foo", diagnostic.CodeExpectedArrow, 3, "expected `->`, found end of input"},
		{"foo: i32", diagnostic.CodeExpectedArrow, 3, "expected `->`"},
		{"foo -> ", diagnostic.CodeMalformedTypeExpression, 7, "expected type"},
		{"foo -> Vec<i32", diagnostic.CodeMalformedTypeExpression, 14, "expected `,` or `>`"},
		{"cursor -> Cursor as scaler", diagnostic.CodeUnexpectedScalarKeyword, 20, "found identifier `scaler`"},
		{"cursor -> Cursor as", diagnostic.CodeUnexpectedScalarKeyword, 17, "found end of input"},
		{"foo -> i32 extra", diagnostic.CodeUnexpectedToken, 11, "unexpected identifier `extra`"},
		{"foo -> i32 as scalar as scalar", diagnostic.CodeUnexpectedToken, 21, "unexpected identifier `as`"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			f, err := ParseField(tt.input)
			require.Error(t, err)
			assert.Nil(t, f)

			de, ok := diagnostic.AsError(err)
			require.True(t, ok, "error should carry a diagnostic: %v", err)
			assert.Equal(t, tt.code, de.Code)
			assert.Equal(t, tt.start, de.Span.Start)
			assert.Contains(t, de.Message, tt.msg)
		})
	}
}

func TestParseField_ScalarKeywordSuggestion(t *testing.T) {
	_, err := ParseField("cursor -> Cursor as scaler")
	require.Error(t, err)

	de, ok := diagnostic.AsError(err)
	require.True(t, ok)
	require.Len(t, de.Suggestions, 1)
	assert.Contains(t, de.Suggestions[0], "as scalar")

	_, err = ParseField("cursor -> Cursor as object")
	de, ok = diagnostic.AsError(err)
	require.True(t, ok)
	assert.Empty(t, de.Suggestions)
}

func TestParseField_ArrowSuggestion(t *testing.T) {
	_, err := ParseField("foo: i32")

	de, ok := diagnostic.AsError(err)
	require.True(t, ok)
	assert.NotEmpty(t, de.Suggestions)
}

func TestParseAssociation(t *testing.T) {
	a, err := ParseAssociation("country -> Country")
	require.NoError(t, err)

	assert.Equal(t, "country", a.Name)
	assert.Equal(t, "Country", a.Type.String())
	assert.Equal(t, "field_country", a.MethodName())
	assert.Equal(t, diagnostic.NewSpan(0, 7), a.Span)

	a, err = ParseAssociation("friends -> Vec<&User>")
	require.NoError(t, err)
	assert.Equal(t, "Vec<&User>", a.DeclaredType().String())
}

func TestParseAssociation_Errors(t *testing.T) {
	tests := []struct {
		input string
		code  diagnostic.Code
		start int
	}{
		{"", diagnostic.CodeMalformedKeyPath, 0},
		{"a b -> T", diagnostic.CodeMalformedKeyPath, 2},
		{"func -> T", diagnostic.CodeMalformedKeyPath, 0},
		{"country", diagnostic.CodeExpectedArrow, 7},
		{"country.code -> Country", diagnostic.CodeExpectedArrow, 7},
		{"country -> ", diagnostic.CodeMalformedTypeExpression, 11},
		{"country -> Country as scalar", diagnostic.CodeUnexpectedToken, 19},
		{"country -> Country Country", diagnostic.CodeUnexpectedToken, 19},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseAssociation(tt.input)
			require.Error(t, err)

			de, ok := diagnostic.AsError(err)
			require.True(t, ok)
			assert.Equal(t, tt.code, de.Code)
			assert.Equal(t, tt.start, de.Span.Start)
		})
	}
}

func TestDecl_AnchorsErrors(t *testing.T) {
	d := Decl{
		Text:   "foo bar -> i32",
		Origin: diagnostic.Origin{Filename: "query.yaml", Line: 4, Column: 9},
	}

	_, err := d.Field()
	require.Error(t, err)

	de, ok := diagnostic.AsError(err)
	require.True(t, ok)
	assert.Equal(t, "query.yaml", de.Span.Filename)
	assert.Equal(t, 4, de.Span.Line)
	assert.Equal(t, 13, de.Span.Column)
	assert.Equal(t, "foo bar -> i32", de.Expr)
	assert.Contains(t, err.Error(), "query.yaml:4:13")
}

func TestObject_Invocations(t *testing.T) {
	o := Object{
		Type: "Query",
		Fields: []Decl{
			{Text: "foo -> String"},
			{Text: "foo bar -> i32"},
			{Text: "other.bar -> Option<i32>"},
			{Text: "cursor -> Cursor as scalar"},
		},
		Associations: []Decl{
			{Text: "country -> Country"},
			{Text: "country.code -> Country"},
		},
	}

	invs, diags := o.Invocations()

	names := make([]string, 0, len(invs))
	for _, inv := range invs {
		names = append(names, inv.MethodName())
	}

	assert.Equal(t, []string{"field_foo", "field_bar", "field_cursor", "field_country"}, names)

	require.Len(t, diags.Errors, 2)
	assert.Equal(t, diagnostic.CodeMalformedKeyPath, diags.Errors[0].Code)
	assert.Equal(t, "Query", diags.Errors[0].Object)
	assert.Equal(t, diagnostic.CodeExpectedArrow, diags.Errors[1].Code)

	_, isField := invs[0].(*FieldMapping)
	assert.True(t, isField)

	_, isAssoc := invs[3].(*AssociationMapping)
	assert.True(t, isAssoc)
}

func TestObject_Invocations_DuplicateMethod(t *testing.T) {
	o := Object{
		Type: "Query",
		Fields: []Decl{
			{Text: "bar -> i32", Origin: diagnostic.Origin{Line: 3, Column: 9}},
			{Text: "other.bar -> Option<i32>", Origin: diagnostic.Origin{Line: 4, Column: 9}},
		},
		Associations: []Decl{
			{Text: "bar -> Bar", Origin: diagnostic.Origin{Line: 6, Column: 9}},
		},
	}

	invs, diags := o.Invocations()
	require.Len(t, invs, 1)
	assert.Equal(t, "bar -> i32", invs[0].Expression())

	require.Len(t, diags.Errors, 2)

	for _, d := range diags.Errors {
		assert.Equal(t, diagnostic.CodeDuplicateMethod, d.Code)
		assert.Contains(t, d.Message, "field_bar")
		assert.Equal(t, []string{"first declared at 3:9"}, d.Suggestions)
	}

	assert.Equal(t, 4, diags.Errors[0].Span.Line)
	assert.Equal(t, 6, diags.Errors[1].Span.Line)
}
