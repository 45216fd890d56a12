package schema

import (
	"fmt"
	"strings"

	"reqschema/internal/classify"
)

// Location is where a request parameter travels.
type Location int

const (
	LocationNone Location = iota
	LocationPath
	LocationQuery
	LocationBody
)

var locationNames = [...]string{
	LocationNone:  "none",
	LocationPath:  "path",
	LocationQuery: "query",
	LocationBody:  "body",
}

// String returns the lower-case name of the Location.
func (l Location) String() string {
	if l < 0 || int(l) >= len(locationNames) {
		return locationNames[LocationNone]
	}

	return locationNames[l]
}

// ParseLocation parses a Location name, case-insensitively. The empty string
// is LocationNone.
func ParseLocation(s string) (Location, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return LocationNone, nil
	}

	for i, name := range locationNames {
		if strings.EqualFold(name, s) {
			return Location(i), nil
		}
	}

	return LocationNone, fmt.Errorf("unknown location %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (l Location) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Location) UnmarshalText(text []byte) error {
	parsed, err := ParseLocation(string(text))
	if err != nil {
		return err
	}
	*l = parsed

	return nil
}

// ParamNode is one node of a parameter tree. ARRAY nodes hold the element
// schema as their children, not one entry per index.
type ParamNode struct {
	Name string `json:"name" yaml:"name"`
	// Value is an editable value slot, empty when extracted.
	Value       string            `json:"value" yaml:"value"`
	Kind        classify.DataKind `json:"dataType" yaml:"dataType"`
	Description string            `json:"description" yaml:"description"`
	Location    Location          `json:"location,omitempty" yaml:"location,omitempty"`
	RawType     string            `json:"rawType" yaml:"rawType"`
	ContentType string            `json:"contentType,omitempty" yaml:"contentType,omitempty"`
	// Enum lists the constant names of an ENUM node.
	Enum []string `json:"enum,omitempty" yaml:"enum,omitempty"`
	// Recursive is set when the cycle guard cut this node's expansion.
	Recursive bool        `json:"recursive,omitempty" yaml:"recursive,omitempty"`
	Children  []ParamNode `json:"children,omitempty" yaml:"children,omitempty"`
}

// IsLeaf reports whether the node has no children.
func (n *ParamNode) IsLeaf() bool {
	return len(n.Children) == 0
}

// Child returns the direct child with the given name.
func (n *ParamNode) Child(name string) (*ParamNode, bool) {
	for i := range n.Children {
		if n.Children[i].Name == name {
			return &n.Children[i], true
		}
	}

	return nil, false
}

// Clone returns a deep copy of the node.
func (n ParamNode) Clone() ParamNode {
	out := n
	if n.Enum != nil {
		out.Enum = append([]string(nil), n.Enum...)
	}

	if n.Children != nil {
		out.Children = CloneAll(n.Children)
	}

	return out
}

// CloneAll deep-copies a node list.
func CloneAll(nodes []ParamNode) []ParamNode {
	if nodes == nil {
		return nil
	}

	out := make([]ParamNode, len(nodes))
	for i := range nodes {
		out[i] = nodes[i].Clone()
	}

	return out
}

// Walk calls fn for every node in nodes, depth first, with the node's depth.
// Returning false from fn skips the node's children.
func Walk(nodes []ParamNode, fn func(n *ParamNode, depth int) bool) {
	walkNodes(nodes, 0, fn)
}

func walkNodes(nodes []ParamNode, depth int, fn func(n *ParamNode, depth int) bool) {
	for i := range nodes {
		if fn(&nodes[i], depth) {
			walkNodes(nodes[i].Children, depth+1, fn)
		}
	}
}
