package gosrc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reqschema/internal/source"
)

func TestParseDirectives(t *testing.T) {
	doc := "// Get loads one order.\n//\n// @Router /{id} [get]\n//   @PARAM id path int\n// @\n// not @a directive"

	got := parseDirectives(doc)
	assert.Equal(t, []directive{
		{key: "router", args: "/{id} [get]"},
		{key: "param", args: "id path int"},
	}, got)
}

func TestTypeAnnotations(t *testing.T) {
	annots := typeAnnotations("// OrderHandler serves orders.\n//\n// @Controller\n// @Route /api/orders extra\n// @Route")

	require.Len(t, annots, 2)
	assert.Equal(t, source.AnnotationRestController, annots[0].Kind)
	assert.Equal(t, source.AnnotationRequestMapping, annots[1].Kind)
	assert.Equal(t, source.StringValue("/api/orders"), annots[1].Attrs["value"])

	assert.Nil(t, typeAnnotations("// Plain type."))
}

func TestRouterAnnotation(t *testing.T) {
	tests := []struct {
		args   string
		kind   source.AnnotationKind
		method string
	}{
		{"/a [get]", source.AnnotationGetMapping, ""},
		{"/a [POST]", source.AnnotationPostMapping, ""},
		{"/a [put]", source.AnnotationPutMapping, ""},
		{"/a [delete]", source.AnnotationDeleteMapping, ""},
		{"/a [patch]", source.AnnotationPatchMapping, ""},
		{"/a [head]", source.AnnotationRequestMapping, "RequestMethod.HEAD"},
		{"/a", source.AnnotationRequestMapping, ""},
	}

	for _, tt := range tests {
		t.Run(tt.args, func(t *testing.T) {
			a := routerAnnotation(tt.args)
			assert.Equal(t, tt.kind, a.Kind)
			assert.Equal(t, source.StringValue("/a"), a.Attrs["value"])

			method, ok := a.Attrs["method"]
			if tt.method == "" {
				assert.False(t, ok)
				return
			}
			assert.Equal(t, source.ConstantValue(tt.method), method)
		})
	}
}

func TestMethodAnnotations(t *testing.T) {
	doc := `// Create stores an order.
//
// @Summary Create order
// @Description Stores the payload
// @Router / [post]
// @Accept mpfd
// @Param order body Order true "payload"
// @Param id path int
// @Param x header string
// @Param lonely`

	annots, params := methodAnnotations(doc)
	require.Len(t, annots, 2)

	op := annots[0]
	assert.Equal(t, source.AnnotationApiOperation, op.Kind)
	assert.Equal(t, source.StringValue("Create order"), op.Attrs["value"])
	assert.Equal(t, source.StringValue("Stores the payload"), op.Attrs["notes"])

	route := annots[1]
	assert.Equal(t, source.AnnotationPostMapping, route.Kind)
	assert.Equal(t, source.StringValue("multipart/form-data"), route.Attrs["consumes"])

	require.Len(t, params, 2)
	assert.Equal(t, source.AnnotationRequestBody, params["order"][0].Kind)
	assert.Equal(t, source.AnnotationPathVariable, params["id"][0].Kind)

	annots, params = methodAnnotations("// Reset is not routed.")
	assert.Nil(t, annots)
	assert.Nil(t, params)
}

func TestAcceptType(t *testing.T) {
	assert.Equal(t, "application/json", acceptType("JSON"))
	assert.Equal(t, "application/x-www-form-urlencoded", acceptType("x-www-form-urlencoded"))
	assert.Equal(t, "text/csv", acceptType("text/csv"))
}
