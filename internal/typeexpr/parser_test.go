package typeexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accessor-generator/internal/diagnostic"
)

func TestLex(t *testing.T) {
	toks := Lex("Vec<&'a mut models::User> -> x.y")

	kinds := make([]TokenKind, 0, len(toks))
	for _, tk := range toks {
		kinds = append(kinds, tk.Kind)
	}

	assert.Equal(t, []TokenKind{
		Ident, Lt, Amp, Lifetime, Ident, Ident, PathSep, Ident, Gt, Arrow, Ident, Dot, Ident, EOF,
	}, kinds)

	assert.Equal(t, "'a", toks[3].Text)
	assert.Equal(t, diagnostic.NewSpan(5, 7), toks[3].Span)
	assert.Equal(t, diagnostic.NewSpan(32, 32), toks[len(toks)-1].Span)
}

func TestLex_NestedClosingAngles(t *testing.T) {
	toks := Lex("Option<Vec<i32>>")
	require.Len(t, toks, 8)
	assert.Equal(t, Gt, toks[5].Kind)
	assert.Equal(t, Gt, toks[6].Kind)
}

func TestLex_Illegal(t *testing.T) {
	toks := Lex("a - b")
	require.Len(t, toks, 4)
	assert.Equal(t, Illegal, toks[1].Kind)
	assert.Equal(t, "-", toks[1].Text)
}

func TestParse_RoundTrip(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"i32", "i32"},
		{"  String ", "String"},
		{"Option<i32>", "Option<i32>"},
		{"Option<Vec<Option<i32>>>", "Option<Vec<Option<i32>>>"},
		{"Vec<&i32>", "Vec<&i32>"},
		{"Vec<&'a mut User>", "Vec<&'a mut User>"},
		{"juniper::ID", "juniper::ID"},
		{"models.User", "models.User"},
		{"HashMap<String,Vec<User>,>", "HashMap<String, Vec<User>>"},
		{"Cow<'a, str>", "Cow<'a, str>"},
		{"Fn(i32)->bool", "Fn(i32) -> bool"},
		{"Fn()", "Fn()"},
		{"Vec<>", "Vec<>"},
		{"Set[User]", "Set[User]"},
		{"(A, B)", "(A, B)"},
		{"(A,)", "(A,)"},
		{"[u8; 4]", "[u8; 4]"},
		{"[User]", "[User]"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expr, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, expr.String())
		})
	}
}

func TestParse_Structure(t *testing.T) {
	expr, err := Parse("Vec<&mut models::User>")
	require.NoError(t, err)

	vec, ok := expr.(*Named)
	require.True(t, ok)
	assert.Equal(t, []string{"Vec"}, vec.Path)
	require.NotNil(t, vec.Args)
	assert.Equal(t, Angle, vec.Args.Delim)
	require.Len(t, vec.Args.Items, 1)

	ref, ok := vec.Args.Last().(*Reference)
	require.True(t, ok)
	assert.True(t, ref.Mut)
	assert.Empty(t, ref.Lifetime)

	user, ok := ref.Elem.(*Named)
	require.True(t, ok)
	assert.Equal(t, "User", user.Name())
	assert.Equal(t, "models.User", user.Qualified())
	assert.True(t, user.IsBare())

	assert.Equal(t, diagnostic.NewSpan(0, 22), vec.Span())
	assert.Equal(t, diagnostic.NewSpan(4, 21), ref.Span())
	assert.Equal(t, diagnostic.NewSpan(9, 21), user.Span())
}

func TestParse_CallStyleOutput(t *testing.T) {
	expr, err := Parse("Fn(i32) -> bool")
	require.NoError(t, err)

	fn := expr.(*Named)
	require.NotNil(t, fn.Args)
	assert.Equal(t, Paren, fn.Args.Delim)
	require.NotNil(t, fn.Args.Output)
	assert.Equal(t, "bool", fn.Args.Output.String())
	assert.Equal(t, diagnostic.NewSpan(2, 15), fn.Args.Span())
}

func TestParse_MutAsTypeName(t *testing.T) {
	expr, err := Parse("Vec<&mut>")
	require.NoError(t, err)

	ref := expr.(*Named).Args.Last().(*Reference)
	assert.False(t, ref.Mut)
	assert.Equal(t, "mut", ref.Elem.String())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		input string
		code  diagnostic.Code
		start int
		msg   string
	}{
		{"", diagnostic.CodeMalformedTypeExpression, 0, "expected type, found end of input"},
		{"<i32>", diagnostic.CodeMalformedTypeExpression, 0, "expected type, found `<`"},
		{"Vec<i32", diagnostic.CodeMalformedTypeExpression, 7, "expected `,` or `>`, found end of input"},
		{"Vec<i32 i64>", diagnostic.CodeMalformedTypeExpression, 8, "expected `,` or `>`, found identifier `i64`"},
		{"models::", diagnostic.CodeMalformedTypeExpression, 8, "expected identifier after `::`"},
		{"[u8; ]", diagnostic.CodeMalformedTypeExpression, 5, "expected array length"},
		{"[u8", diagnostic.CodeMalformedTypeExpression, 3, "expected `]`"},
		{"Vec<$>", diagnostic.CodeMalformedTypeExpression, 4, "unexpected character `$`"},
		{"i32 i64", diagnostic.CodeUnexpectedToken, 4, "unexpected identifier `i64` after type `i32`"},
		{"Fn(i32) ->", diagnostic.CodeMalformedTypeExpression, 10, "expected type"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)

			de, ok := diagnostic.AsError(err)
			require.True(t, ok)
			assert.Equal(t, tt.code, de.Code)
			assert.Equal(t, tt.start, de.Span.Start)
			assert.Contains(t, de.Message, tt.msg)
		})
	}
}

func TestStream_HandsOverAfterArrow(t *testing.T) {
	s := NewStream("bar -> Option<i32> as scalar")

	assert.True(t, s.Next().Is("bar"))
	assert.Equal(t, Arrow, s.Next().Kind)

	expr, err := s.ParseType()
	require.NoError(t, err)
	assert.Equal(t, "Option<i32>", expr.String())

	assert.True(t, s.Next().Is("as"))
	assert.True(t, s.Next().Is("scalar"))
	assert.True(t, s.Done())
	assert.Equal(t, EOF, s.Next().Kind)
}
