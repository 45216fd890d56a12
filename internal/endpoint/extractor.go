package endpoint

import (
	"strings"

	"reqschema/internal/classify"
	"reqschema/internal/common"
	"reqschema/internal/generic"
	"reqschema/internal/schema"
	"reqschema/internal/source"
)

// transparentWrappers are return types unwrapped to their single argument.
var transparentWrappers = map[string]bool{
	"ResponseEntity":    true,
	"HttpEntity":        true,
	"Optional":          true,
	"Mono":              true,
	"CompletableFuture": true,
	"CompletionStage":   true,
	"Future":            true,
	"Callable":          true,
	"DeferredResult":    true,
	"WebAsyncTask":      true,
}

// Extractor builds Descriptors from methods of a source model.
type Extractor struct {
	model   source.Model
	builder *schema.Builder
}

// NewExtractor creates an Extractor over model.
func NewExtractor(model source.Model, opts schema.Options) *Extractor {
	return &Extractor{
		model:   model,
		builder: schema.NewBuilder(model, opts),
	}
}

// Builder returns the schema builder used for payload trees.
func (e *Extractor) Builder() *schema.Builder {
	return e.builder
}

// IsRouted reports whether m is a non-constructor method with a routing
// annotation.
func IsRouted(m *source.Method) bool {
	if m == nil || m.Constructor {
		return false
	}

	_, ok := m.Annotations.Routing()

	return ok
}

// Extract describes method m declared by owner. owner may be nil, in which case
// the URL has no base path.
func (e *Extractor) Extract(owner *source.Class, m *source.Method) Descriptor {
	if m == nil {
		return Descriptor{Verb: VerbUnknown}
	}

	op := e.builder.Docs().Method(m)

	d := Descriptor{
		Name:        m.Name,
		MethodName:  m.Name,
		Verb:        e.Verb(m),
		ParamTypes:  m.ParamTypes(),
		Description: op.Description,
	}

	if op.Summary != "" {
		d.Name = op.Summary
	}

	var methodPath string
	if routing, ok := m.Annotations.Routing(); ok {
		methodPath = e.routePath(routing)
		d.ContentType, _ = e.attr(routing, "consumes")
	}

	var basePath string
	if owner != nil {
		d.Owner = owner.QualifiedName()

		if routing, ok := owner.Annotations.Routing(); ok {
			basePath = e.routePath(routing)
		}
	}

	d.URL = JoinURL(basePath, methodPath)

	for i := range m.Params {
		e.placeParam(&d, &m.Params[i])
	}

	d.Response = e.response(m)

	return d
}

// Verb returns the HTTP verb of m's routing annotation.
func (e *Extractor) Verb(m *source.Method) Verb {
	routing, ok := m.Annotations.Routing()
	if !ok {
		return VerbUnknown
	}

	switch routing.Kind {
	case source.AnnotationGetMapping:
		return VerbGet
	case source.AnnotationPostMapping:
		return VerbPost
	case source.AnnotationPutMapping:
		return VerbPut
	case source.AnnotationDeleteMapping:
		return VerbDelete
	case source.AnnotationPatchMapping:
		return VerbPatch
	}

	v, ok := routing.Attr("method")
	if !ok {
		return VerbGet
	}

	v, ok = v.First()
	if !ok {
		return VerbGet
	}

	name := common.SimpleName(strings.TrimSpace(v.Text))
	if verb, err := ParseVerb(name); err == nil && verb != VerbUnknown && verb != VerbRequest {
		return verb
	}

	return VerbGet
}

// JoinURL joins a base path and a method path with exactly one slash between
// them. An empty base returns path unchanged.
func JoinURL(base, path string) string {
	if base == "" {
		return path
	}

	if !strings.HasPrefix(base, "/") {
		base = "/" + base
	}

	path = strings.TrimLeft(path, "/")
	if path == "" {
		return base
	}

	return strings.TrimRight(base, "/") + "/" + path
}

func (e *Extractor) routePath(a source.Annotation) string {
	for _, name := range []string{"value", "path"} {
		if s, ok := e.attr(a, name); ok {
			return s
		}
	}

	return ""
}

// attr folds an annotation attribute to a string: a literal, the first array
// element, or constants resolved against MediaType names and the model and
// concatenated.
func (e *Extractor) attr(a source.Annotation, name string) (string, bool) {
	v, ok := a.Attr(name)
	if !ok {
		return "", false
	}

	return e.Fold(v)
}

// Fold resolves an attribute value to a string.
func (e *Extractor) Fold(v source.Value) (string, bool) {
	return v.Fold(e.constant)
}

func (e *Extractor) constant(ref string) (string, bool) {
	if s, ok := MediaTypeConstant(ref); ok {
		return s, true
	}

	if e.model != nil {
		return e.model.Constant(ref)
	}

	return "", false
}

func (e *Extractor) placeParam(d *Descriptor, p *source.Param) {
	marker, ok := p.Annotations.Find(
		source.AnnotationRequestBody, source.AnnotationPathVariable, source.AnnotationRequestParam)
	if !ok {
		return
	}

	name := p.Name
	if s, ok := e.attr(marker, "value"); ok && s != "" {
		name = s
	} else if s, ok := e.attr(marker, "name"); ok && s != "" {
		name = s
	}

	switch marker.Kind {
	case source.AnnotationRequestBody:
		contentType, ok := e.attr(marker, "consumes")
		if !ok {
			contentType = d.ContentType
		}
		d.Body = append(d.Body, e.bodyParam(name, p.Type, contentType))

	case source.AnnotationPathVariable:
		d.Params = append(d.Params, e.leafParam(name, p.Type, schema.LocationPath))

	case source.AnnotationRequestParam:
		if d.Verb == VerbGet {
			d.Params = append(d.Params, e.leafParam(name, p.Type, schema.LocationQuery))
			return
		}

		if d.ContentType != "" && !IsFormContentType(d.ContentType) {
			d.Params = append(d.Params, e.leafParam(name, p.Type, schema.LocationQuery))
			return
		}

		contentType := d.ContentType
		if contentType == "" {
			t := p.Type
			if e.builder.Classifier().Classify(&t) == classify.DataKindFile {
				contentType = MediaTypeMultipart
			} else {
				contentType = MediaTypeForm
			}
		}
		d.Body = append(d.Body, e.bodyParam(name, p.Type, contentType))
	}
}

func (e *Extractor) leafParam(name string, t source.TypeRef, loc schema.Location) schema.ParamNode {
	return schema.ParamNode{
		Name:     name,
		Kind:     e.builder.Classifier().Classify(&t),
		Location: loc,
		RawType:  t.Canonical(),
	}
}

func (e *Extractor) bodyParam(name string, t source.TypeRef, contentType string) schema.ParamNode {
	var node schema.ParamNode

	if t.Kind == source.RefArray {
		node = schema.ParamNode{
			Name:    name,
			Kind:    classify.DataKindArray,
			RawType: t.Elem.Canonical() + "[]",
		}
	} else {
		node = e.builder.Node(name, t, "", nil)
	}

	node.Location = schema.LocationBody
	node.ContentType = contentType

	return node
}

// response returns the payload tree of m's return type. Objects yield their
// fields; collections and Flux yield one ARRAY root node.
func (e *Extractor) response(m *source.Method) []schema.ParamNode {
	if m.Return == nil {
		return nil
	}

	t := Unwrap(*m.Return)

	if t.Kind == source.RefClass && t.Name == "Flux" && len(t.Args) == 1 {
		t = source.TypeRef{Kind: source.RefClass, Name: "List", Qualified: "java.util.List", Args: t.Args}
	}

	switch e.builder.Classifier().Classify(&t) {
	case classify.DataKindArray:
		return []schema.ParamNode{e.builder.Node("", t, "", nil)}

	case classify.DataKindObject:
		class, ok := e.lookup(t)
		if !ok {
			return nil
		}

		if class.IsInterface() {
			if class, ok = e.builder.Implementation(class); !ok {
				return nil
			}
		}

		return e.builder.Build(class, "", generic.Bind(class.TypeParams, t.Args))
	}

	return nil
}

func (e *Extractor) lookup(t source.TypeRef) (*source.Class, bool) {
	if e.model == nil || t.Kind != source.RefClass {
		return nil, false
	}

	return e.model.Lookup(t)
}

// Unwrap strips transparent response wrappers such as ResponseEntity<T> and
// Mono<T>, repeatedly.
func Unwrap(t source.TypeRef) source.TypeRef {
	for t.Kind == source.RefClass && transparentWrappers[t.Name] && len(t.Args) == 1 {
		t = t.Args[0].Bound()
	}

	return t
}
