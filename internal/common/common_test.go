package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPkgAlias(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"", ""},
		{"context", "context"},
		{"accessor-generator/resolve", "resolve"},
		{"github.com/hashicorp/hcl/v2", "hcl"},
		{"gopkg.in/yaml.v3", "yaml"},
		{"example.com/v2", "example.com"},
		{"v2", "v2"},
		{"example.com/lib/v0", "v0"},
		{"example.com/lib/vx", "vx"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, PkgAlias(tt.path))
		})
	}
}

func TestSliceHelpers(t *testing.T) {
	var none []int

	assert.True(t, IsEmpty(none))
	assert.False(t, IsSingle(none))
	assert.False(t, IsMultiple(none))

	_, ok := First(none)
	assert.False(t, ok)

	_, ok = Last(none)
	assert.False(t, ok)

	one := []string{"a"}
	assert.True(t, IsSingle(one))

	two := []string{"a", "b"}
	assert.True(t, IsMultiple(two))

	first, ok := First(two)
	assert.True(t, ok)
	assert.Equal(t, "a", first)

	last, ok := Last(two)
	assert.True(t, ok)
	assert.Equal(t, "b", last)
}
