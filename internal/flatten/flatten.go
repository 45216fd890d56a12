package flatten

import (
	"strconv"

	"reqschema/internal/classify"
	"reqschema/internal/schema"
)

// Flatten returns the leaves of nodes as a flat list, each renamed to its
// path. A top-level leaf is passed through unchanged. The input is not
// modified and the returned nodes carry no children.
func Flatten(nodes []schema.ParamNode) []schema.ParamNode {
	out := make([]schema.ParamNode, 0, len(nodes))

	for i := range nodes {
		n := &nodes[i]
		if n.IsLeaf() {
			out = append(out, leaf(n, n.Name))
			continue
		}

		for j := range n.Children {
			out = flattenNode(&n.Children[j], "", out)
		}
	}

	return out
}

func flattenNode(n *schema.ParamNode, prefix string, out []schema.ParamNode) []schema.ParamNode {
	path := prefix + n.Name

	if n.IsLeaf() {
		return append(out, leaf(n, path))
	}

	if n.Kind == classify.DataKindArray {
		return flattenArray(n, prefix, out)
	}

	for i := range n.Children {
		out = flattenNode(&n.Children[i], path+".", out)
	}

	return out
}

// flattenArray gives every recorded child of an array its own index: an
// object child contributes its fields under "name[i].", a leaf child becomes
// "name[i]" itself.
func flattenArray(n *schema.ParamNode, prefix string, out []schema.ParamNode) []schema.ParamNode {
	for i := range n.Children {
		child := &n.Children[i]
		path := prefix + n.Name + "[" + strconv.Itoa(i) + "]"

		if child.IsLeaf() {
			out = append(out, leaf(child, path))
			continue
		}

		for j := range child.Children {
			out = flattenNode(&child.Children[j], path+".", out)
		}
	}

	return out
}

func leaf(n *schema.ParamNode, path string) schema.ParamNode {
	out := *n
	out.Name = path
	out.Children = nil

	if n.Enum != nil {
		out.Enum = append([]string(nil), n.Enum...)
	}

	return out
}
