package classify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accessor-generator/internal/diagnostic"
	"accessor-generator/internal/typeexpr"
)

func mustParse(t *testing.T, s string) typeexpr.Expr {
	t.Helper()

	expr, err := typeexpr.Parse(s)
	require.NoError(t, err)

	return expr
}

func TestLeafOf(t *testing.T) {
	tests := []struct {
		input string
		leaf  string
	}{
		{"i32", "i32"},
		{"f64", "f64"},
		{"String", "String"},
		{"bool", "bool"},
		{"Vec<i32>", "i32"},
		{"Option<Vec<Option<i32>>>", "i32"},
		{"Vec<&i32>", "i32"},
		{"Vec<&'a mut User>", "User"},
		{"Option<Vec<&Option<models::User>>>", "User"},
		{"&User", "User"},
		{"HashMap<String, Country>", "Country"},
		{"Cow<'a, str>", "str"},
		{"juniper::ID", "ID"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			leaf, err := LeafOf(mustParse(t, tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.leaf, leaf.Name())
			assert.True(t, leaf.IsBare())
		})
	}
}

func TestLeafOf_WrapperTransparency(t *testing.T) {
	wrappers := []string{"Option<%s>", "Vec<%s>", "Box<%s>", "Vec<&%s>", "&%s"}

	for _, leaf := range []string{"i32", "User"} {
		expr := leaf
		for depth := range 12 {
			expr = strings.Replace(wrappers[depth%len(wrappers)], "%s", expr, 1)

			got, err := LeafOf(mustParse(t, expr))
			require.NoError(t, err, expr)
			assert.Equal(t, leaf, got.Name(), expr)
		}
	}
}

func TestLeafOf_Deterministic(t *testing.T) {
	expr := mustParse(t, "Option<Vec<&User>>")

	first, err := Classify(expr)
	require.NoError(t, err)

	for range 5 {
		again, err := Classify(mustParse(t, "Option<Vec<&User>>"))
		require.NoError(t, err)
		assert.Equal(t, first.Kind, again.Kind)
		assert.Equal(t, first.LeafName(), again.LeafName())
	}
}

func TestLeafOf_Errors(t *testing.T) {
	tests := []struct {
		input string
		code  diagnostic.Code
		start int
	}{
		{"Vec<>", diagnostic.CodeEmptyGenericArguments, 3},
		{"Option<Vec<>>", diagnostic.CodeEmptyGenericArguments, 10},
		{"Fn(i32) -> bool", diagnostic.CodeUnsupportedTypeShape, 2},
		{"Fn()", diagnostic.CodeUnsupportedTypeShape, 2},
		{"Vec<Fn(i32) -> bool>", diagnostic.CodeUnsupportedTypeShape, 6},
		{"Set[User]", diagnostic.CodeUnsupportedTypeShape, 3},
		{"Vec<(A, B)>", diagnostic.CodeUnsupportedArgumentShape, 4},
		{"Vec<[u8]>", diagnostic.CodeUnsupportedArgumentShape, 4},
		{"Vec<&&User>", diagnostic.CodeUnsupportedArgumentShape, 5},
		{"Foo<User, 'a>", diagnostic.CodeUnsupportedArgumentShape, 10},
		{"(A, B)", diagnostic.CodeUnsupportedTypeShape, 0},
		{"[User]", diagnostic.CodeUnsupportedTypeShape, 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := LeafOf(mustParse(t, tt.input))
			require.Error(t, err)
			assert.True(t, diagnostic.HasCode(err, tt.code), "got %v", err)

			de, ok := diagnostic.AsError(err)
			require.True(t, ok)
			assert.Equal(t, tt.start, de.Span.Start)
		})
	}
}

func TestClassify_BuiltinScalarTable(t *testing.T) {
	for _, name := range BuiltinScalars() {
		t.Run(name, func(t *testing.T) {
			c, err := Classify(mustParse(t, name))
			require.NoError(t, err)
			assert.Equal(t, Scalar, c.Kind)
			assert.True(t, c.IsScalar())

			c, err = Classify(mustParse(t, "Option<Vec<"+name+">>"))
			require.NoError(t, err)
			assert.Equal(t, Scalar, c.Kind)
			assert.Equal(t, name, c.LeafName())
		})
	}
}

func TestClassify_Objects(t *testing.T) {
	for _, name := range []string{"User", "Cursor", "string", "int32", "I32", "Id", "u64", "f32"} {
		t.Run(name, func(t *testing.T) {
			c, err := Classify(mustParse(t, "Vec<"+name+">"))
			require.NoError(t, err)
			assert.Equal(t, Object, c.Kind)
			assert.Equal(t, name, c.LeafName())
			assert.Equal(t, "object("+name+")", c.String())
		})
	}
}

func TestClassify_ForceScalarKeepsLeaf(t *testing.T) {
	c, err := Classify(mustParse(t, "Vec<Cursor>"))
	require.NoError(t, err)

	forced := c.ForceScalar()
	assert.Equal(t, Scalar, forced.Kind)
	assert.Equal(t, "Cursor", forced.LeafName())
	assert.Equal(t, Object, c.Kind)
}

func TestClassify_StrictArity(t *testing.T) {
	strict := Options{StrictArity: true}

	_, err := strict.Classify(mustParse(t, "HashMap<String, User>"))
	require.Error(t, err)
	assert.True(t, diagnostic.HasCode(err, diagnostic.CodeUnsupportedArgumentShape))
	assert.Contains(t, err.Error(), "takes 2 type arguments")

	c, err := strict.Classify(mustParse(t, "Cow<'a, User>"))
	require.NoError(t, err)
	assert.Equal(t, "User", c.LeafName())

	c, err = Classify(mustParse(t, "HashMap<String, User>"))
	require.NoError(t, err)
	assert.Equal(t, "User", c.LeafName())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "scalar", Scalar.String())
	assert.Equal(t, "object", Object.String())
	assert.Equal(t, "unknown", Kind(0).String())
}
