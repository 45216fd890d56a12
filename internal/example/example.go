package example

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"reqschema/internal/classify"
	"reqschema/internal/schema"
)

const (
	indent          = "    "
	filePlaceholder = "<file>"
	textPlaceholder = "string"
	timeLayout      = "2006-01-02 15:04:05"
	randomChars     = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// JSON renders nodes as an indented JSON object of default values.
func JSON(nodes []schema.ParamNode) string {
	return render(object(nodes, defaultValue))
}

// Body renders a request body. A single ARRAY root renders as a JSON array
// and a single object root as its fields; anything else renders as one object.
func Body(nodes []schema.ParamNode) string {
	return render(body(nodes, defaultValue))
}

// Random is JSON with random leaf values drawn from r. Strings whose name
// mentions a date or time hold the current time.
func Random(nodes []schema.ParamNode, r *rand.Rand) string {
	now := time.Now()

	return render(object(nodes, func(n *schema.ParamNode) any {
		return randomValue(n, r, now)
	}))
}

// RandomBody is Body with random leaf values.
func RandomBody(nodes []schema.ParamNode, r *rand.Rand) string {
	now := time.Now()

	return render(body(nodes, func(n *schema.ParamNode) any {
		return randomValue(n, r, now)
	}))
}

type leafFunc func(n *schema.ParamNode) any

func body(nodes []schema.ParamNode, leaf leafFunc) any {
	if len(nodes) != 1 {
		return object(nodes, leaf)
	}

	root := &nodes[0]

	switch {
	case root.Kind == classify.DataKindArray:
		return array(root, leaf)
	case len(root.Children) > 0:
		return object(root.Children, leaf)
	default:
		return object(nodes, leaf)
	}
}

func value(n *schema.ParamNode, leaf leafFunc) any {
	switch {
	case n.Kind == classify.DataKindArray:
		return array(n, leaf)
	case len(n.Children) > 0:
		return object(n.Children, leaf)
	default:
		return leaf(n)
	}
}

func array(n *schema.ParamNode, leaf leafFunc) []any {
	if len(n.Children) == 0 {
		return []any{}
	}

	return []any{object(n.Children, leaf)}
}

// member is one key of an ordered object.
type member struct {
	key   string
	value any
}

// orderedObject marshals its members in order.
type orderedObject []member

func object(nodes []schema.ParamNode, leaf leafFunc) orderedObject {
	out := make(orderedObject, 0, len(nodes))
	for i := range nodes {
		out = append(out, member{key: nodes[i].Name, value: value(&nodes[i], leaf)})
	}

	return out
}

// MarshalJSON implements json.Marshaler.
func (o orderedObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := marshal(m.key, "")
		if err != nil {
			return nil, err
		}

		val, err := marshal(m.value, "")
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", m.key, err)
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

func render(v any) string {
	data, err := marshal(v, indent)
	if err != nil {
		// Only strings, numbers and booleans reach the encoder.
		return "{}"
	}

	return string(data)
}

// marshal encodes v without HTML escaping, so placeholders such as "<file>"
// and descriptions containing "&" come out as written.
func marshal(v any, indentBy string) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indentBy != "" {
		enc.SetIndent("", indentBy)
	}

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func defaultValue(n *schema.ParamNode) any {
	switch n.Kind {
	case classify.DataKindInteger:
		return 0
	case classify.DataKindBoolean:
		return false
	case classify.DataKindNumber:
		return json.Number("0.0")
	case classify.DataKindArray:
		return []any{}
	case classify.DataKindFile:
		return filePlaceholder
	default:
		return textPlaceholder
	}
}

func randomValue(n *schema.ParamNode, r *rand.Rand, now time.Time) any {
	switch n.Kind {
	case classify.DataKindInteger:
		return r.IntN(1000)
	case classify.DataKindBoolean:
		return r.IntN(2) == 1
	case classify.DataKindNumber:
		return json.Number(fmt.Sprintf("%.2f", r.Float64()*1000))
	case classify.DataKindArray:
		return []any{}
	case classify.DataKindFile:
		return filePlaceholder
	}

	name := strings.ToLower(n.Name)
	if strings.Contains(name, "date") || strings.Contains(name, "time") {
		return now.Format(timeLayout)
	}

	b := make([]byte, 6)
	for i := range b {
		b[i] = randomChars[r.IntN(len(randomChars))]
	}

	return string(b)
}
