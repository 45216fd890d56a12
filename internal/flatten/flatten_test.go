package flatten

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"reqschema/internal/classify"
	"reqschema/internal/schema"
)

func obj(name string, children ...schema.ParamNode) schema.ParamNode {
	return schema.ParamNode{Name: name, Kind: classify.DataKindObject, Children: children}
}

func arr(name string, children ...schema.ParamNode) schema.ParamNode {
	return schema.ParamNode{Name: name, Kind: classify.DataKindArray, Children: children}
}

func str(name string) schema.ParamNode {
	return schema.ParamNode{Name: name, Kind: classify.DataKindString, RawType: "String"}
}

func paths(nodes []schema.ParamNode) []string {
	flat := Flatten(nodes)

	out := make([]string, len(flat))
	for i := range flat {
		out[i] = flat[i].Name
	}

	return out
}

func TestFlatten_Paths(t *testing.T) {
	tests := []struct {
		name     string
		input    []schema.ParamNode
		expected []string
	}{
		{
			name:     "empty",
			input:    nil,
			expected: []string{},
		},
		{
			name:     "wrapper dropped",
			input:    []schema.ParamNode{obj("f", str("a"), str("b"))},
			expected: []string{"a", "b"},
		},
		{
			name:     "top-level leaves",
			input:    []schema.ParamNode{str("id"), str("q")},
			expected: []string{"id", "q"},
		},
		{
			name:     "array of objects",
			input:    []schema.ParamNode{obj("root", arr("b", obj("", str("c"))))},
			expected: []string{"b[0].c"},
		},
		{
			name:     "array leaf children",
			input:    []schema.ParamNode{obj("root", arr("tags", str("x"), str("y")))},
			expected: []string{"tags[0]", "tags[1]"},
		},
		{
			name: "nested objects",
			input: []schema.ParamNode{obj("user",
				str("name"),
				obj("address", str("city"), obj("geo", str("lat"))),
			)},
			expected: []string{"name", "address.city", "address.geo.lat"},
		},
		{
			name: "array inside object",
			input: []schema.ParamNode{obj("order",
				obj("cart", arr("items", obj("", str("sku"), str("qty")))),
			)},
			expected: []string{"cart.items[0].sku", "cart.items[0].qty"},
		},
		{
			name:     "mixed top level",
			input:    []schema.ParamNode{str("page"), obj("filter", str("from"), str("to"))},
			expected: []string{"page", "from", "to"},
		},
		{
			name:     "empty array leaf",
			input:    []schema.ParamNode{obj("r", arr("ids"))},
			expected: []string{"ids"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, paths(tt.input))
		})
	}
}

func TestFlatten_CopiesLeaves(t *testing.T) {
	input := []schema.ParamNode{obj("f",
		schema.ParamNode{
			Name:        "status",
			Kind:        classify.DataKindEnum,
			Description: "order status",
			Location:    schema.LocationBody,
			RawType:     "Status",
			ContentType: "application/json",
			Enum:        []string{"NEW", "PAID"},
		},
		obj("inner", str("v")),
	)}
	before := schema.CloneAll(input)

	flat := Flatten(input)

	assert.Equal(t, before, input, "input must not change")
	assert.Len(t, flat, 2)

	status := flat[0]
	assert.Equal(t, "status", status.Name)
	assert.Equal(t, classify.DataKindEnum, status.Kind)
	assert.Equal(t, "order status", status.Description)
	assert.Equal(t, schema.LocationBody, status.Location)
	assert.Equal(t, "Status", status.RawType)
	assert.Equal(t, "application/json", status.ContentType)
	assert.Equal(t, []string{"NEW", "PAID"}, status.Enum)

	flat[0].Enum[0] = "CHANGED"
	assert.Equal(t, "NEW", input[0].Children[0].Enum[0])

	assert.Equal(t, "inner.v", flat[1].Name)
	assert.Nil(t, flat[1].Children)
}

func TestFlatten_TopLevelLeafUnchanged(t *testing.T) {
	n := schema.ParamNode{Name: "id", Kind: classify.DataKindInteger, Location: schema.LocationPath, RawType: "java.lang.Long"}

	assert.Equal(t, []schema.ParamNode{n}, Flatten([]schema.ParamNode{n}))
}
