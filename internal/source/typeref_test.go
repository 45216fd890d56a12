package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		name     string
		expr     string
		params   []string
		expected string
		kind     RefKind
	}{
		{"simple", "String", nil, "String", RefClass},
		{"primitive", "int", nil, "int", RefPrimitive},
		{"generic", "List<Order>", nil, "List<Order>", RefClass},
		{"nested generic", "Map<String, List<Order>>", nil, "Map<String, List<Order>>", RefClass},
		{"array", "byte[]", nil, "byte[]", RefArray},
		{"varargs", "String...", nil, "String[]", RefArray},
		{"two dims", "int[][]", nil, "int[][]", RefArray},
		{"type param", "T", []string{"T"}, "T", RefTypeParam},
		{"wildcard", "List<?>", nil, "List<?>", RefClass},
		{"wildcard extends", "List<? extends Item>", nil, "List<? extends Item>", RefClass},
		{"wildcard super", "List<? super Item>", nil, "List<? super Item>", RefClass},
		{"type-use annotation", "@NotNull String", nil, "String", RefClass},
		{"annotation with args", "@Size(max = 3) List<String>", nil, "List<String>", RefClass},
		{"qualified", "java.util.List<com.shop.Order>", nil, "List<Order>", RefClass},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := ParseType(tt.expr, tt.params...)
			assert.Equal(t, tt.expected, ref.String())
			assert.Equal(t, tt.kind, ref.Kind)
		})
	}
}

func TestParseType_Qualified(t *testing.T) {
	ref := ParseType("java.util.List<com.shop.Order>")
	assert.Equal(t, "java.util.List", ref.Qualified)
	assert.Equal(t, "List", ref.Name)
	require.Len(t, ref.Args, 1)
	assert.Equal(t, "com.shop.Order", ref.Args[0].Qualified)
	assert.Equal(t, "java.util.List<com.shop.Order>", ref.Canonical())
}

func TestParseType_Wildcard(t *testing.T) {
	ref := ParseType("List<? super Item>")
	require.Len(t, ref.Args, 1)

	w := ref.Args[0]
	assert.Equal(t, RefWildcard, w.Kind)
	assert.True(t, w.Lower)
	assert.Equal(t, "Item", w.Bound().Name)

	unbounded := ParseType("?")
	assert.Equal(t, RefWildcard, unbounded.Kind)
	assert.Equal(t, unbounded, unbounded.Bound())
}

func TestParseType_Malformed(t *testing.T) {
	tests := []string{"List<", "Map<String,>", "a b", "int[", "<>"}

	for _, expr := range tests {
		t.Run(expr, func(t *testing.T) {
			ref := ParseType(expr)
			assert.Equal(t, RefClass, ref.Kind)
			assert.Equal(t, expr, ref.Name)
		})
	}
}

func TestTypeRef_Clone(t *testing.T) {
	orig := ParseType("Map<String, List<Order>>[]")
	clone := orig.Clone()

	clone.Elem.Args[1].Args[0].Name = "Changed"

	assert.Equal(t, "Map<String, List<Order>>[]", orig.String())
	assert.Equal(t, "Map<String, List<Changed>>[]", clone.String())
}

func TestTypeRef_Walk(t *testing.T) {
	ref := ParseType("Map<K, List<V>>", "K", "V")

	var names []string
	ref.Walk(func(t *TypeRef) {
		names = append(names, t.Name)
	})

	assert.Equal(t, []string{"Map", "K", "List", "V"}, names)
}

func TestTypeRef_IsZero(t *testing.T) {
	assert.True(t, TypeRef{}.IsZero())
	assert.False(t, Named("Order").IsZero())
	assert.False(t, ArrayOf(Primitive("int")).IsZero())
}

func TestNamed(t *testing.T) {
	ref := Named("com.shop.Order")
	assert.Equal(t, "Order", ref.Name)
	assert.Equal(t, "com.shop.Order", ref.Qualified)

	ref = Named("Order")
	assert.Empty(t, ref.Qualified)
}
