package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"reqschema/internal/classify"
)

func TestLocation(t *testing.T) {
	tests := []struct {
		input    string
		expected Location
		wantErr  bool
	}{
		{"", LocationNone, false},
		{"none", LocationNone, false},
		{"PATH", LocationPath, false},
		{"query", LocationQuery, false},
		{"body", LocationBody, false},
		{"header", LocationNone, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLocation(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	assert.Equal(t, "none", Location(9).String())
}

func TestParamNode_JSON(t *testing.T) {
	node := ParamNode{
		Name:     "id",
		Kind:     classify.DataKindInteger,
		Location: LocationPath,
		RawType:  "Long",
	}

	data, err := json.Marshal(node)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"name": "id",
		"value": "",
		"dataType": "INTEGER",
		"description": "",
		"location": "path",
		"rawType": "Long"
	}`, string(data))

	var back ParamNode
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, node, back)
}

func TestParamNode_YAML(t *testing.T) {
	node := ParamNode{
		Name:    "orders",
		Kind:    classify.DataKindArray,
		RawType: "List<Order>",
		Children: []ParamNode{
			{Name: "id", Kind: classify.DataKindInteger, RawType: "Integer"},
		},
	}

	data, err := yaml.Marshal(node)
	require.NoError(t, err)
	assert.Contains(t, string(data), "dataType: ARRAY")

	var back ParamNode
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, node, back)
}

func TestParamNode_CloneAndWalk(t *testing.T) {
	nodes := []ParamNode{
		{Name: "a", Children: []ParamNode{{Name: "b", Children: []ParamNode{{Name: "c"}}}}},
		{Name: "d", Enum: []string{"X"}},
	}

	clone := CloneAll(nodes)
	clone[0].Children[0].Name = "changed"
	clone[1].Enum[0] = "Y"
	assert.Equal(t, "b", nodes[0].Children[0].Name)
	assert.Equal(t, "X", nodes[1].Enum[0])

	var seen []string
	Walk(nodes, func(n *ParamNode, depth int) bool {
		seen = append(seen, n.Name)
		return n.Name != "b"
	})
	assert.Equal(t, []string{"a", "b", "d"}, seen)

	child, ok := nodes[0].Child("b")
	require.True(t, ok)
	assert.False(t, child.IsLeaf())

	_, ok = nodes[0].Child("zzz")
	assert.False(t, ok)
	assert.Nil(t, CloneAll(nil))
}

func TestVisited(t *testing.T) {
	v := NewVisited()
	assert.True(t, v.Add("a"))
	assert.False(t, v.Add("a"))
	assert.True(t, v.Add("b"))
}

func TestParseVisitPolicy(t *testing.T) {
	p, err := ParseVisitPolicy("")
	require.NoError(t, err)
	assert.Equal(t, SharedVisited, p)

	p, err = ParseVisitPolicy("Path")
	require.NoError(t, err)
	assert.Equal(t, PathLocal, p)

	_, err = ParseVisitPolicy("bfs")
	require.Error(t, err)

	assert.Equal(t, "shared", SharedVisited.String())
	assert.Equal(t, "VisitPolicy(7)", VisitPolicy(7).String())
}
