package export

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"reqschema/internal/classify"
	"reqschema/internal/endpoint"
	"reqschema/internal/schema"
)

// OpenAPIVersion is the version string written to generated documents.
const OpenAPIVersion = "3.0.3"

// Info is the metadata of a generated OpenAPI document.
type Info struct {
	Title   string
	Version string
}

// OpenAPI converts descriptors into an OpenAPI document. Endpoints whose verb
// has no OpenAPI operation (REQUEST, UNKNOWN) are left out and their keys
// returned.
func OpenAPI(descriptors []endpoint.Descriptor, info Info) (*openapi3.T, []string) {
	if info.Title == "" {
		info.Title = "reqschema"
	}
	if info.Version == "" {
		info.Version = "1.0.0"
	}

	doc := &openapi3.T{
		OpenAPI: OpenAPIVersion,
		Info: &openapi3.Info{
			Title:   info.Title,
			Version: info.Version,
		},
		Paths: openapi3.Paths{},
	}

	var skipped []string

	ids := make(map[string]int)

	for i := range descriptors {
		d := &descriptors[i]

		op := operation(d)
		op.OperationID = uniqueID(ids, d.MethodName)

		url := d.URL
		if url == "" {
			url = "/"
		} else if url[0] != '/' {
			url = "/" + url
		}

		item := doc.Paths[url]
		if item == nil {
			item = &openapi3.PathItem{}
		}

		if !setOperation(item, d.Verb, op) {
			skipped = append(skipped, d.Key())
			continue
		}

		doc.Paths[url] = item
	}

	return doc, skipped
}

// MarshalOpenAPI serializes an OpenAPI document in the given format.
func MarshalOpenAPI(doc *openapi3.T, format Format) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode OpenAPI document: %w", err)
	}

	if format != FormatYAML {
		return append(data, '\n'), nil
	}

	// Go through a node tree so key order survives the conversion.
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("failed to convert OpenAPI document: %w", err)
	}
	blockStyle(&node)

	return Marshal(&node, FormatYAML)
}

// blockStyle drops the flow and quoting styles a JSON source leaves on
// every node. Scalars keep their tags, so strings that look like numbers are
// still quoted on output.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}

func setOperation(item *openapi3.PathItem, verb endpoint.Verb, op *openapi3.Operation) bool {
	switch verb {
	case endpoint.VerbGet:
		item.Get = op
	case endpoint.VerbPost:
		item.Post = op
	case endpoint.VerbPut:
		item.Put = op
	case endpoint.VerbDelete:
		item.Delete = op
	case endpoint.VerbPatch:
		item.Patch = op
	default:
		return false
	}

	return true
}

func uniqueID(ids map[string]int, name string) string {
	ids[name]++
	if n := ids[name]; n > 1 {
		return name + strconv.Itoa(n)
	}

	return name
}

func operation(d *endpoint.Descriptor) *openapi3.Operation {
	op := &openapi3.Operation{
		Summary:     d.Name,
		Description: d.Description,
		Responses:   openapi3.Responses{},
	}

	for i := range d.Params {
		p := &d.Params[i]

		var param *openapi3.Parameter
		if p.Location == schema.LocationPath {
			param = openapi3.NewPathParameter(p.Name)
		} else {
			param = openapi3.NewQueryParameter(p.Name)
		}

		param.Description = p.Description
		param.Schema = nodeSchema(p).NewRef()

		op.Parameters = append(op.Parameters, &openapi3.ParameterRef{Value: param})
	}

	if len(d.Body) > 0 {
		op.RequestBody = &openapi3.RequestBodyRef{Value: requestBody(d.Body)}
	}

	resp := openapi3.NewResponse().WithDescription("OK")
	if len(d.Response) > 0 {
		resp.WithJSONSchema(payloadSchema(d.Response))
	}
	op.Responses["200"] = &openapi3.ResponseRef{Value: resp}

	return op
}

// requestBody describes the body nodes of one endpoint. A single JSON-like
// node is the payload itself; several nodes are the fields of a form.
func requestBody(body []schema.ParamNode) *openapi3.RequestBody {
	contentType := body[0].ContentType
	if contentType == "" {
		contentType = endpoint.MediaTypeJSON
	}

	var s *openapi3.Schema
	if len(body) == 1 && !endpoint.IsFormContentType(contentType) {
		s = nodeSchema(&body[0])
	} else {
		s = openapi3.NewObjectSchema()
		for i := range body {
			s.WithProperty(body[i].Name, nodeSchema(&body[i]))
		}
	}

	return openapi3.NewRequestBody().
		WithRequired(true).
		WithContent(openapi3.NewContentWithSchema(s, []string{contentType}))
}

// payloadSchema describes a response tree: one unnamed ARRAY root is the
// array itself, anything else is an object of the nodes.
func payloadSchema(nodes []schema.ParamNode) *openapi3.Schema {
	if len(nodes) == 1 && nodes[0].Name == "" {
		return nodeSchema(&nodes[0])
	}

	return objectSchema(nodes)
}

func objectSchema(nodes []schema.ParamNode) *openapi3.Schema {
	s := openapi3.NewObjectSchema()
	for i := range nodes {
		s.WithProperty(nodes[i].Name, nodeSchema(&nodes[i]))
	}

	return s
}

func nodeSchema(n *schema.ParamNode) *openapi3.Schema {
	var s *openapi3.Schema

	switch n.Kind {
	case classify.DataKindInteger:
		s = openapi3.NewIntegerSchema()
	case classify.DataKindNumber:
		s = openapi3.NewFloat64Schema()
	case classify.DataKindBoolean:
		s = openapi3.NewBoolSchema()
	case classify.DataKindFile:
		s = openapi3.NewStringSchema().WithFormat("binary")
	case classify.DataKindEnum:
		s = openapi3.NewStringSchema()
		for _, v := range n.Enum {
			s.Enum = append(s.Enum, v)
		}
	case classify.DataKindArray:
		items := openapi3.NewStringSchema()
		if len(n.Children) > 0 {
			items = objectSchema(n.Children)
		}
		s = openapi3.NewArraySchema().WithItems(items)
	case classify.DataKindObject:
		s = objectSchema(n.Children)
	default:
		s = openapi3.NewStringSchema()
	}

	s.Description = n.Description

	return s
}
