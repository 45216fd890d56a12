package endpoint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reqschema/internal/classify"
	"reqschema/internal/schema"
	"reqschema/internal/source"
)

const controllerModel = `
package: com.shop.api
imports:
  - org.springframework.http.MediaType
  - org.springframework.web.multipart.MultipartFile
classes:
  - name: Consts
    fields:
      - {name: BASE, type: String, static: true, final: true, constant: /api}
      - {name: CSV, type: String, static: true, final: true, constant: text/csv}
  - name: Order
    doc: "/** Order payload */"
    fields:
      - {name: id, type: Long}
      - {name: items, type: "List<Item>"}
  - name: Item
    fields:
      - {name: sku, type: String}
  - name: Page
    typeParams: [T]
    fields:
      - {name: rows, type: "List<T>"}
      - {name: total, type: long}
  - name: Service
    kind: interface
  - name: ServiceImpl
    implements: [Service]
    fields:
      - {name: up, type: boolean}
  - name: UserController
    annotations:
      - RestController
      - {name: RequestMapping, value: /api}
    methods:
      - name: get
        doc: "/** Loads one user. */"
        returns: Order
        annotations:
          - {name: GetMapping, value: "/users/{id}"}
        params:
          - {name: id, type: Long, annotations: [PathVariable]}
      - name: search
        returns: "ResponseEntity<Page<Order>>"
        annotations:
          - {name: GetMapping, value: [/search, /find]}
          - {name: ApiOperation, value: Search orders, notes: Paged search}
        params:
          - {name: q, type: String, annotations: [{name: RequestParam, value: query}]}
          - {name: page, type: int, annotations: [RequestParam]}
          - {name: ignored, type: HttpServletRequest}
      - name: create
        returns: "List<Order>"
        annotations:
          - {name: PostMapping, consumes: !const MediaType.APPLICATION_JSON_VALUE}
        params:
          - {name: order, type: Order, annotations: [RequestBody]}
          - {name: dryRun, type: boolean, annotations: [RequestParam]}
      - name: upload
        annotations:
          - {name: PostMapping, value: /upload}
        params:
          - {name: file, type: MultipartFile, annotations: [RequestParam]}
          - {name: note, type: String, annotations: [{name: RequestParam, attrs: {name: memo}}]}
      - name: importCsv
        returns: "Mono<Service>"
        annotations:
          - {name: PutMapping, value: import, consumes: !const Consts.CSV}
        params:
          - {name: raw, type: "byte[]", annotations: [{name: RequestBody, consumes: text/plain}]}
          - {name: orders, type: "Order[]", annotations: [RequestBody]}
      - name: form
        annotations:
          - name: RequestMapping
            value: /form
            method: !expr RequestMethod.PATCH
            consumes: application/x-www-form-urlencoded
        params:
          - {name: name, type: String, annotations: [RequestParam]}
      - name: stream
        returns: "Flux<Item>"
        annotations:
          - {name: RequestMapping, value: /stream}
      - name: head
        annotations:
          - {name: RequestMapping, method: [!const RequestMethod.HEAD]}
      - name: helper
        returns: String
  - name: RootController
    annotations: [Controller]
    methods:
      - name: ping
        returns: String
        annotations:
          - {name: DeleteMapping, value: "/ping/"}
      - name: report
        annotations:
          - {name: GetMapping, value: !concat [!const Consts.BASE, /reports/, !const Consts.CSV]}
`

func newTestExtractor(t *testing.T) (*Extractor, *source.Index) {
	t.Helper()

	files, err := source.ParseModel([]byte(controllerModel))
	require.NoError(t, err)

	ix := source.BuildIndex(files...)

	return NewExtractor(ix, schema.Options{}), ix
}

func extract(t *testing.T, owner, method string) Descriptor {
	t.Helper()

	e, ix := newTestExtractor(t)

	class, ok := ix.Class(owner)
	require.True(t, ok)

	m, ok := class.Method(method)
	require.True(t, ok)

	return e.Extract(class, m)
}

func names(nodes []schema.ParamNode) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Name)
	}

	return out
}

func TestExtract_ScenarioB(t *testing.T) {
	d := extract(t, "com.shop.api.UserController", "get")

	assert.Equal(t, "/api/users/{id}", d.URL)
	assert.Equal(t, VerbGet, d.Verb)
	assert.Equal(t, "get", d.Name)
	assert.Equal(t, "get", d.MethodName)
	assert.Equal(t, "Loads one user.", d.Description)
	assert.Equal(t, "com.shop.api.UserController", d.Owner)
	assert.Equal(t, []string{"java.lang.Long"}, d.ParamTypes)

	require.Len(t, d.Params, 1)
	assert.Equal(t, "id", d.Params[0].Name)
	assert.Equal(t, classify.DataKindInteger, d.Params[0].Kind)
	assert.Equal(t, schema.LocationPath, d.Params[0].Location)
	assert.Empty(t, d.Body)

	assert.Equal(t, []string{"id", "items"}, names(d.Response))
	assert.Equal(t, classify.DataKindArray, d.Response[1].Kind)
}

func TestExtract_QueryAndStructuredDocs(t *testing.T) {
	d := extract(t, "com.shop.api.UserController", "search")

	assert.Equal(t, "/api/search", d.URL, "first array path")
	assert.Equal(t, "Search orders", d.Name)
	assert.Equal(t, "Paged search", d.Description)

	assert.Equal(t, []string{"query", "page"}, names(d.Params), "renamed, unmarked ignored")
	for _, p := range d.Params {
		assert.Equal(t, schema.LocationQuery, p.Location)
	}

	assert.Equal(t, []string{"rows", "total"}, names(d.Response), "ResponseEntity unwrapped, generics bound")
	rows := d.Response[0]
	assert.Equal(t, "List<Order>", rows.RawType)
	assert.Equal(t, []string{"id", "items"}, names(rows.Children))
}

func TestExtract_BodyAndJSONConsumes(t *testing.T) {
	d := extract(t, "com.shop.api.UserController", "create")

	assert.Equal(t, VerbPost, d.Verb)
	assert.Equal(t, "/api", d.URL)
	assert.Equal(t, MediaTypeJSON, d.ContentType)

	require.Len(t, d.Body, 1)
	body := d.Body[0]
	assert.Equal(t, "order", body.Name)
	assert.Equal(t, schema.LocationBody, body.Location)
	assert.Equal(t, MediaTypeJSON, body.ContentType, "inherits method consumes")
	assert.Equal(t, "Order", body.RawType)
	assert.Equal(t, "Order payload", body.Description)
	assert.Equal(t, []string{"id", "items"}, names(body.Children))

	require.Len(t, d.Params, 1, "json consumes keeps request params in the query")
	assert.Equal(t, "dryRun", d.Params[0].Name)
	assert.Equal(t, schema.LocationQuery, d.Params[0].Location)

	require.Len(t, d.Response, 1, "collection return is one ARRAY root")
	assert.Equal(t, classify.DataKindArray, d.Response[0].Kind)
	assert.Equal(t, []string{"id", "items"}, names(d.Response[0].Children))
}

func TestExtract_FormDefaults(t *testing.T) {
	d := extract(t, "com.shop.api.UserController", "upload")

	assert.Equal(t, "/api/upload", d.URL)
	assert.Empty(t, d.Params)
	require.Len(t, d.Body, 2)

	assert.Equal(t, "file", d.Body[0].Name)
	assert.Equal(t, classify.DataKindFile, d.Body[0].Kind)
	assert.Equal(t, MediaTypeMultipart, d.Body[0].ContentType)

	assert.Equal(t, "memo", d.Body[1].Name, "name attribute renames")
	assert.Equal(t, MediaTypeForm, d.Body[1].ContentType)
	assert.Nil(t, d.Response, "void")
}

func TestExtract_RawArraysAndConstants(t *testing.T) {
	d := extract(t, "com.shop.api.UserController", "importCsv")

	assert.Equal(t, VerbPut, d.Verb)
	assert.Equal(t, "/api/import", d.URL)
	assert.Equal(t, "text/csv", d.ContentType, "model constant folded")

	require.Len(t, d.Body, 2)
	assert.Equal(t, "byte[]", d.Body[0].RawType)
	assert.Equal(t, classify.DataKindArray, d.Body[0].Kind)
	assert.Equal(t, "text/plain", d.Body[0].ContentType, "marker consumes wins")

	assert.Equal(t, "com.shop.api.Order[]", d.Body[1].RawType)
	assert.Empty(t, d.Body[1].Children, "raw arrays bypass the tree builder")
	assert.Equal(t, "text/csv", d.Body[1].ContentType)

	assert.Equal(t, []string{"up"}, names(d.Response), "Mono unwrapped, interface resolved")
}

func TestExtract_RequestMapping(t *testing.T) {
	d := extract(t, "com.shop.api.UserController", "form")
	assert.Equal(t, VerbPatch, d.Verb)
	assert.Equal(t, "/api/form", d.URL)
	require.Len(t, d.Body, 1)
	assert.Equal(t, MediaTypeForm, d.Body[0].ContentType)

	d = extract(t, "com.shop.api.UserController", "stream")
	assert.Equal(t, VerbGet, d.Verb, "no method attribute defaults to GET")
	require.Len(t, d.Response, 1, "Flux is one ARRAY root")
	assert.Equal(t, []string{"sku"}, names(d.Response[0].Children))

	d = extract(t, "com.shop.api.UserController", "head")
	assert.Equal(t, VerbGet, d.Verb, "a method attribute naming no supported verb defaults to GET")
	assert.Equal(t, "/api", d.URL)
}

func TestExtract_ConcatenatedPath(t *testing.T) {
	d := extract(t, "com.shop.api.RootController", "report")
	assert.Equal(t, VerbGet, d.Verb)
	assert.Equal(t, "/api/reports/text/csv", d.URL)

	e, _ := newTestExtractor(t)

	tests := []struct {
		name  string
		value source.Value
		want  string
		ok    bool
	}{
		{
			name:  "model constant",
			value: source.ConcatValue(source.ConstantValue("Consts.BASE"), source.StringValue("/x")),
			want:  "/api/x",
			ok:    true,
		},
		{
			name:  "media type constant",
			value: source.ConcatValue(source.ConstantValue("MediaType.TEXT_PLAIN_VALUE"), source.StringValue(";q=1")),
			want:  "text/plain;q=1",
			ok:    true,
		},
		{
			name:  "unknown operand",
			value: source.ConcatValue(source.ConstantValue("Consts.NONE"), source.StringValue("/x")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := e.Fold(tt.value)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_Unrouted(t *testing.T) {
	d := extract(t, "com.shop.api.UserController", "helper")
	assert.Equal(t, VerbUnknown, d.Verb)
	assert.Equal(t, "/api", d.URL, "base path only")
	assert.Nil(t, d.Response, "scalar return")

	e, _ := newTestExtractor(t)
	empty := e.Extract(nil, nil)
	assert.Equal(t, VerbUnknown, empty.Verb)
}

func TestExtract_NoBasePath(t *testing.T) {
	d := extract(t, "com.shop.api.RootController", "ping")
	assert.Equal(t, VerbDelete, d.Verb)
	assert.Equal(t, "/ping/", d.URL)
	assert.Equal(t, "com.shop.api.RootController#ping", d.Key())
}

func TestExtract_Idempotent(t *testing.T) {
	e, ix := newTestExtractor(t)

	class, ok := ix.Class("com.shop.api.UserController")
	require.True(t, ok)

	for i := range class.Methods {
		m := &class.Methods[i]
		assert.Equal(t, e.Extract(class, m), e.Extract(class, m), m.Name)
	}
}

func TestIsRouted(t *testing.T) {
	_, ix := newTestExtractor(t)

	class, ok := ix.Class("com.shop.api.UserController")
	require.True(t, ok)

	get, _ := class.Method("get")
	helper, _ := class.Method("helper")
	assert.True(t, IsRouted(get))
	assert.False(t, IsRouted(helper))
	assert.False(t, IsRouted(nil))
	assert.False(t, IsRouted(&source.Method{
		Constructor: true,
		Annotations: source.Annotations{source.NewAnnotation("GetMapping", nil)},
	}))
}

func TestJoinURL(t *testing.T) {
	tests := []struct {
		base, path, expected string
	}{
		{"", "/users", "/users"},
		{"", "users", "users"},
		{"/api", "/users", "/api/users"},
		{"api", "users", "/api/users"},
		{"/api/", "//users", "/api/users"},
		{"/api", "", "/api"},
		{"/api/", "", "/api/"},
		{"", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.base+"|"+tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, JoinURL(tt.base, tt.path))
		})
	}
}

func TestUnwrap(t *testing.T) {
	tests := []struct {
		expr, expected string
	}{
		{"ResponseEntity<Order>", "Order"},
		{"Mono<ResponseEntity<List<Order>>>", "List<Order>"},
		{"Optional<? extends Order>", "Order"},
		{"CompletableFuture<Void>", "Void"},
		{"ResponseEntity", "ResponseEntity"},
		{"Page<Order>", "Page<Order>"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			assert.Equal(t, tt.expected, Unwrap(source.ParseType(tt.expr)).String())
		})
	}
}

func TestMediaTypeConstant(t *testing.T) {
	v, ok := MediaTypeConstant("MediaType.MULTIPART_FORM_DATA_VALUE")
	require.True(t, ok)
	assert.Equal(t, MediaTypeMultipart, v)

	v, ok = MediaTypeConstant("org.springframework.http.MediaType.APPLICATION_JSON_VALUE")
	require.True(t, ok)
	assert.Equal(t, MediaTypeJSON, v)

	_, ok = MediaTypeConstant("MediaType.UNKNOWN_VALUE")
	assert.False(t, ok)

	_, ok = MediaTypeConstant("Other.APPLICATION_JSON_VALUE")
	assert.False(t, ok)

	assert.True(t, IsFormContentType("multipart/form-data; boundary=x"))
	assert.False(t, IsFormContentType("application/json"))
}

func TestVerb_Text(t *testing.T) {
	v, err := ParseVerb("post")
	require.NoError(t, err)
	assert.Equal(t, VerbPost, v)

	_, err = ParseVerb("TRACE")
	require.Error(t, err)

	text, err := VerbDelete.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "DELETE", string(text))
	assert.Equal(t, "UNKNOWN", Verb(42).String())
}
