package example

import (
	"encoding/json"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reqschema/internal/classify"
	"reqschema/internal/schema"
)

func leaf(name string, kind classify.DataKind) schema.ParamNode {
	return schema.ParamNode{Name: name, Kind: kind}
}

func orderNodes() []schema.ParamNode {
	return []schema.ParamNode{
		leaf("id", classify.DataKindInteger),
		leaf("paid", classify.DataKindBoolean),
		leaf("total", classify.DataKindNumber),
		leaf("status", classify.DataKindEnum),
		leaf("receipt", classify.DataKindFile),
		leaf("tags", classify.DataKindArray),
		{
			Name: "items",
			Kind: classify.DataKindArray,
			Children: []schema.ParamNode{
				leaf("sku", classify.DataKindString),
			},
		},
		{
			Name: "customer",
			Kind: classify.DataKindObject,
			Children: []schema.ParamNode{
				leaf("name", classify.DataKindString),
			},
		},
		leaf("next", classify.DataKindObject),
	}
}

func TestJSON(t *testing.T) {
	expected := `{
    "id": 0,
    "paid": false,
    "total": 0.0,
    "status": "string",
    "receipt": "<file>",
    "tags": [],
    "items": [
        {
            "sku": "string"
        }
    ],
    "customer": {
        "name": "string"
    },
    "next": "string"
}`

	assert.Equal(t, expected, JSON(orderNodes()))
}

func TestJSON_Empty(t *testing.T) {
	assert.Equal(t, "{}", JSON(nil))
}

func TestBody(t *testing.T) {
	tests := []struct {
		name     string
		nodes    []schema.ParamNode
		expected string
	}{
		{
			name: "array root",
			nodes: []schema.ParamNode{{
				Name:     "orders",
				Kind:     classify.DataKindArray,
				Children: []schema.ParamNode{leaf("id", classify.DataKindInteger)},
			}},
			expected: "[\n    {\n        \"id\": 0\n    }\n]",
		},
		{
			name:     "array root without element schema",
			nodes:    []schema.ParamNode{leaf("ids", classify.DataKindArray)},
			expected: "[]",
		},
		{
			name: "object root unwrapped",
			nodes: []schema.ParamNode{{
				Name:     "order",
				Kind:     classify.DataKindObject,
				Children: []schema.ParamNode{leaf("id", classify.DataKindInteger)},
			}},
			expected: "{\n    \"id\": 0\n}",
		},
		{
			name:     "single leaf",
			nodes:    []schema.ParamNode{leaf("raw", classify.DataKindString)},
			expected: "{\n    \"raw\": \"string\"\n}",
		},
		{
			name: "form fields",
			nodes: []schema.ParamNode{
				leaf("file", classify.DataKindFile),
				leaf("note", classify.DataKindString),
			},
			expected: "{\n    \"file\": \"<file>\",\n    \"note\": \"string\"\n}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Body(tt.nodes))
		})
	}
}

func TestRandom(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))

	out := Random(append(orderNodes(), leaf("createdTime", classify.DataKindString)), r)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))

	id, ok := decoded["id"].(float64)
	require.True(t, ok)
	assert.GreaterOrEqual(t, id, 0.0)
	assert.Less(t, id, 1000.0)

	assert.IsType(t, true, decoded["paid"])
	assert.Equal(t, "<file>", decoded["receipt"])
	assert.Equal(t, []any{}, decoded["tags"])
	assert.Len(t, decoded["status"], 6)
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`, decoded["createdTime"])

	items, ok := decoded["items"].([]any)
	require.True(t, ok)
	require.Len(t, items, 1)
	assert.Contains(t, items[0], "sku")
}

func TestRandomBody(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))

	out := RandomBody([]schema.ParamNode{{
		Name:     "orders",
		Kind:     classify.DataKindArray,
		Children: []schema.ParamNode{leaf("id", classify.DataKindInteger)},
	}}, r)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 1)
	assert.Contains(t, decoded[0], "id")
}

func TestJSON_KeepsMarkup(t *testing.T) {
	nodes := []schema.ParamNode{
		leaf("upload", classify.DataKindFile),
		{
			Name: "a&b",
			Kind: classify.DataKindObject,
			Children: []schema.ParamNode{
				leaf("<tag>", classify.DataKindString),
			},
		},
	}

	out := JSON(nodes)
	assert.Equal(t, "{\n    \"upload\": \"<file>\",\n    \"a&b\": {\n        \"<tag>\": \"string\"\n    }\n}", out)
	assert.NotContains(t, out, `\u003c`)
	assert.NotContains(t, out, `\u0026`)

	assert.Equal(t, `{"f":"<file>"}`, compact(t, Body([]schema.ParamNode{leaf("f", classify.DataKindFile)})))
}

func compact(t *testing.T, s string) string {
	t.Helper()

	var v map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &v))

	data, err := marshal(v, "")
	require.NoError(t, err)

	return string(data)
}
