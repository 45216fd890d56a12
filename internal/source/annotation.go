package source

import (
	"strings"

	"reqschema/internal/common"
)

//go:generate go tool stringer -type=AnnotationKind -trimprefix=Annotation -output=annotationkind_string.go

// AnnotationKind is the closed classification of the annotations the engine
// understands. Adapters assign it once; consumers switch on it.
type AnnotationKind int

const (
	AnnotationOther AnnotationKind = iota

	// Routing annotations.
	AnnotationGetMapping
	AnnotationPostMapping
	AnnotationPutMapping
	AnnotationDeleteMapping
	AnnotationPatchMapping
	AnnotationRequestMapping

	// Parameter markers.
	AnnotationRequestBody
	AnnotationPathVariable
	AnnotationRequestParam

	// Structured documentation.
	AnnotationApiOperation
	AnnotationOperation
	AnnotationApiModel
	AnnotationApiModelProperty
	AnnotationSchema

	// Stereotypes.
	AnnotationController
	AnnotationRestController
)

var annotationKinds = map[string]AnnotationKind{
	"GetMapping":       AnnotationGetMapping,
	"PostMapping":      AnnotationPostMapping,
	"PutMapping":       AnnotationPutMapping,
	"DeleteMapping":    AnnotationDeleteMapping,
	"PatchMapping":     AnnotationPatchMapping,
	"RequestMapping":   AnnotationRequestMapping,
	"RequestBody":      AnnotationRequestBody,
	"PathVariable":     AnnotationPathVariable,
	"RequestParam":     AnnotationRequestParam,
	"ApiOperation":     AnnotationApiOperation,
	"Operation":        AnnotationOperation,
	"ApiModel":         AnnotationApiModel,
	"ApiModelProperty": AnnotationApiModelProperty,
	"Schema":           AnnotationSchema,
	"Controller":       AnnotationController,
	"RestController":   AnnotationRestController,
}

// ClassifyAnnotation maps an annotation name, simple or qualified, to its kind.
func ClassifyAnnotation(name string) AnnotationKind {
	name = strings.TrimPrefix(strings.TrimSpace(name), "@")
	if kind, ok := annotationKinds[common.SimpleName(name)]; ok {
		return kind
	}

	return AnnotationOther
}

// IsRouting reports whether the kind declares an HTTP verb and/or path.
func (k AnnotationKind) IsRouting() bool {
	return k >= AnnotationGetMapping && k <= AnnotationRequestMapping
}

// IsController reports whether the kind marks a request-handling class.
func (k AnnotationKind) IsController() bool {
	return k == AnnotationController || k == AnnotationRestController
}

// ValueKind classifies an annotation attribute expression.
type ValueKind int

const (
	ValueString   ValueKind = iota // "literal"
	ValueArray                     // {a, b}
	ValueConstant                  // MediaType.APPLICATION_JSON_VALUE
	ValueExpr                      // anything else, kept as raw text
	ValueConcat                    // Paths.BASE + "/orders"
)

// Value is one annotation attribute expression.
type Value struct {
	Kind  ValueKind
	Text  string
	Items []Value
}

// StringValue returns a string literal value.
func StringValue(s string) Value {
	return Value{Kind: ValueString, Text: s}
}

// ConstantValue returns a constant reference value.
func ConstantValue(ref string) Value {
	return Value{Kind: ValueConstant, Text: ref}
}

// ArrayValue returns an array value.
func ArrayValue(items ...Value) Value {
	return Value{Kind: ValueArray, Items: items}
}

// ConcatValue returns the concatenation of parts. Adjacent literals are
// merged, and a concatenation of literals only is a plain string.
func ConcatValue(parts ...Value) Value {
	items := make([]Value, 0, len(parts))
	for _, p := range parts {
		if n := len(items); n > 0 && p.Kind == ValueString && items[n-1].Kind == ValueString {
			items[n-1].Text += p.Text
			continue
		}
		items = append(items, p)
	}

	if len(items) == 1 && items[0].Kind == ValueString {
		return items[0]
	}

	return Value{Kind: ValueConcat, Items: items}
}

// Fold reduces the value to a string. Arrays fold to their first element,
// constants go through lookup and concatenations fold every part.
func (v Value) Fold(lookup func(ref string) (string, bool)) (string, bool) {
	v, ok := v.First()
	if !ok {
		return "", false
	}

	switch v.Kind {
	case ValueString:
		return v.Text, true

	case ValueConstant:
		if lookup == nil {
			return "", false
		}

		return lookup(v.Text)

	case ValueConcat:
		var sb strings.Builder
		for _, part := range v.Items {
			s, ok := part.Fold(lookup)
			if !ok {
				return "", false
			}
			sb.WriteString(s)
		}

		return sb.String(), true
	}

	return "", false
}

// First returns the first element of an array value, or the value itself.
func (v Value) First() (Value, bool) {
	if v.Kind != ValueArray {
		return v, true
	}

	return common.First(v.Items)
}

// Annotation is one annotation occurrence on a declaration.
type Annotation struct {
	Kind AnnotationKind
	// Name is the annotation name as written, without the "@".
	Name string
	// Attrs holds attribute values; a single unnamed argument is stored as "value".
	Attrs map[string]Value
}

// NewAnnotation creates an annotation and classifies it by name.
func NewAnnotation(name string, attrs map[string]Value) Annotation {
	name = strings.TrimPrefix(strings.TrimSpace(name), "@")

	return Annotation{
		Kind:  ClassifyAnnotation(name),
		Name:  name,
		Attrs: attrs,
	}
}

// Attr returns the named attribute.
func (a Annotation) Attr(name string) (Value, bool) {
	v, ok := a.Attrs[name]
	return v, ok
}

// FirstAttr returns the first present attribute among names.
func (a Annotation) FirstAttr(names ...string) (Value, bool) {
	for _, n := range names {
		if v, ok := a.Attrs[n]; ok {
			return v, true
		}
	}

	return Value{}, false
}

// Annotations is the ordered annotation list of a declaration.
type Annotations []Annotation

// Find returns the first annotation whose kind is one of kinds.
func (as Annotations) Find(kinds ...AnnotationKind) (Annotation, bool) {
	for _, a := range as {
		for _, k := range kinds {
			if a.Kind == k {
				return a, true
			}
		}
	}

	return Annotation{}, false
}

// Has reports whether any annotation has the given kind.
func (as Annotations) Has(kind AnnotationKind) bool {
	_, ok := as.Find(kind)
	return ok
}

// Routing returns the first routing annotation.
func (as Annotations) Routing() (Annotation, bool) {
	for _, a := range as {
		if a.Kind.IsRouting() {
			return a, true
		}
	}

	return Annotation{}, false
}
