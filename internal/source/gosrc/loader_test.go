package gosrc

import (
	"context"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reqschema/internal/classify"
	"reqschema/internal/diagnostic"
	"reqschema/internal/endpoint"
	"reqschema/internal/schema"
	"reqschema/internal/source"
)

const shopPkg = "reqschema/examples/shop"

func loadShop(t *testing.T) *Result {
	t.Helper()

	res, err := Load(context.Background(), []string{shopPkg}, Options{})
	require.NoError(t, err)
	require.Empty(t, res.Diagnostics.Warnings)

	return res
}

func shopClass(t *testing.T, res *Result, name string) *source.Class {
	t.Helper()

	c, ok := res.Index.Class(shopPkg + "." + name)
	require.True(t, ok, name)

	return c
}

func fieldNames(c *source.Class) []string {
	out := make([]string, 0, len(c.Fields))
	for _, f := range c.Fields {
		out = append(out, f.Name)
	}

	return out
}

func nodeNames(nodes []schema.ParamNode) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Name)
	}

	return out
}

func TestLoad_Classes(t *testing.T) {
	res := loadShop(t)

	assert.Equal(t, []string{shopPkg}, res.Packages)

	var names []string
	for _, c := range res.Index.Classes() {
		names = append(names, c.Name)
	}

	assert.Equal(t, []string{
		"Audit", "Category", "EmailNotifier", "Notifier", "Order",
		"OrderHandler", "OrderItem", "OrderStatus", "Page", "Product",
	}, names, "Cents is a plain alias")
}

func TestLoad_StructFields(t *testing.T) {
	res := loadShop(t)

	product := shopClass(t, res, "Product")
	assert.Equal(t, []string{
		"id", "sku", "name", "description", "price_cents", "inventory_count", "attributes",
	}, fieldNames(product))

	sku := product.Fields[1]
	assert.Equal(t, source.AnnotationSchema, sku.Annotations[0].Kind)

	price := product.Fields[4]
	assert.Equal(t, source.RefPrimitive, price.Type.Kind)
	assert.Equal(t, "int64", price.Type.Name)
	assert.Contains(t, price.Doc, "PriceCents is the price")

	order := shopClass(t, res, "Order")
	require.NotNil(t, order.Super, "embedded Audit")
	assert.Equal(t, shopPkg+".Audit", order.Super.Qualified)
	assert.Equal(t, []string{"id", "customer_id", "status", "total_cents", "items", "ordered_at"}, fieldNames(order))

	items := order.Fields[4]
	assert.Equal(t, source.RefArray, items.Type.Kind)
	assert.Equal(t, shopPkg+".OrderItem", items.Type.Elem.Qualified)
	assert.Equal(t, "// Ordered line items.", items.Doc)

	orderedAt := order.Fields[5]
	assert.Equal(t, "time.Time", orderedAt.Type.Qualified, "pointers are transparent")

	page := shopClass(t, res, "Page")
	assert.Equal(t, []string{"T"}, page.TypeParams)
	assert.Equal(t, source.RefTypeParam, page.Fields[0].Type.Elem.Kind)
}

func TestLoad_EnumsAndInterfaces(t *testing.T) {
	res := loadShop(t)

	status := shopClass(t, res, "OrderStatus")
	assert.Equal(t, source.KindEnum, status.Kind)
	assert.Equal(t, []string{"PENDING", "PAID", "SHIPPED", "CANCELLED"}, status.EnumConstants)

	notifier := shopClass(t, res, "Notifier")
	assert.Equal(t, source.KindInterface, notifier.Kind)

	impls := res.Index.Implementations(notifier)
	require.Len(t, impls, 1)
	assert.Equal(t, "EmailNotifier", impls[0].Name)
}

func TestLoad_Handler(t *testing.T) {
	res := loadShop(t)

	h := shopClass(t, res, "OrderHandler")
	assert.True(t, h.Annotations.Has(source.AnnotationRestController))
	assert.Empty(t, h.Fields, "unexported fields are skipped")

	get, ok := h.Method("Get")
	require.True(t, ok)
	require.Len(t, get.Params, 2)
	assert.Empty(t, get.Params[0].Annotations, "context parameter")
	assert.Equal(t, source.AnnotationPathVariable, get.Params[1].Annotations[0].Kind)
	require.NotNil(t, get.Return)
	assert.Equal(t, shopPkg+".Order", get.Return.Qualified)

	upload, ok := h.Method("Upload")
	require.True(t, ok)
	assert.Nil(t, upload.Return, "error results are dropped")

	reset, ok := h.Method("Reset")
	require.True(t, ok)
	assert.False(t, endpoint.IsRouted(reset))
}

func TestLoad_Endpoints(t *testing.T) {
	res := loadShop(t)
	ex := endpoint.NewExtractor(res.Index, schema.Options{})
	h := shopClass(t, res, "OrderHandler")

	extract := func(t *testing.T, name string) endpoint.Descriptor {
		t.Helper()

		m, ok := h.Method(name)
		require.True(t, ok, name)

		return ex.Extract(h, m)
	}

	t.Run("get", func(t *testing.T) {
		d := extract(t, "Get")

		assert.Equal(t, endpoint.VerbGet, d.Verb)
		assert.Equal(t, "/api/orders/{id}", d.URL)
		assert.Equal(t, "Get loads one order.", d.Description)
		assert.Equal(t, []string{"context.Context", "int64"}, d.ParamTypes)
		require.Len(t, d.Params, 1)
		assert.Equal(t, classify.DataKindInteger, d.Params[0].Kind)

		assert.Equal(t, []string{
			"id", "customer_id", "status", "total_cents", "items", "ordered_at", "created_by", "created_at",
		}, nodeNames(d.Response))
		assert.Equal(t, classify.DataKindEnum, d.Response[2].Kind)
		assert.Equal(t, classify.DataKindString, d.Response[5].Kind)
		assert.Equal(t, []string{"product_id", "name", "quantity", "unit_price"}, nodeNames(d.Response[4].Children))
		assert.Equal(t, "CreatedBy names who created the record.", d.Response[6].Description)
	})

	t.Run("search", func(t *testing.T) {
		d := extract(t, "Search")

		assert.Equal(t, "Search orders", d.Name)
		assert.Equal(t, "Filters by status", d.Description)
		assert.Equal(t, []string{"status", "page"}, nodeNames(d.Params))
		assert.Equal(t, schema.LocationQuery, d.Params[0].Location)
		assert.Equal(t, classify.DataKindEnum, d.Params[0].Kind)

		require.Equal(t, []string{"rows", "total"}, nodeNames(d.Response))
		assert.Equal(t, "id", d.Response[0].Children[0].Name)
	})

	t.Run("create", func(t *testing.T) {
		d := extract(t, "Create")

		assert.Equal(t, endpoint.VerbPost, d.Verb)
		assert.Equal(t, "/api/orders", d.URL)
		require.Len(t, d.Body, 1)
		assert.Equal(t, endpoint.MediaTypeJSON, d.Body[0].ContentType)
		assert.Equal(t, "Order is a transaction made by a customer.", d.Body[0].Description)
	})

	t.Run("upload", func(t *testing.T) {
		d := extract(t, "Upload")

		assert.Equal(t, endpoint.VerbPut, d.Verb)
		require.Len(t, d.Body, 1)
		assert.Equal(t, classify.DataKindFile, d.Body[0].Kind)
		assert.Equal(t, endpoint.MediaTypeMultipart, d.Body[0].ContentType)
		assert.Nil(t, d.Response)
	})

	t.Run("unsupported verb", func(t *testing.T) {
		d := extract(t, "Categories")

		assert.Equal(t, endpoint.VerbGet, d.Verb, "unsupported verbs default to GET")
		require.Len(t, d.Response, 1)
		assert.Equal(t, classify.DataKindArray, d.Response[0].Kind)
		assert.Equal(t, []string{"name", "parent"}, nodeNames(d.Response[0].Children))
	})

	t.Run("interface response", func(t *testing.T) {
		d := extract(t, "Notifier")

		assert.Equal(t, []string{"address"}, nodeNames(d.Response))
	})
}

func TestLoad_MissingPackage(t *testing.T) {
	res, err := Load(context.Background(), []string{"reqschema/examples/missing"}, Options{})
	if err != nil {
		return
	}

	assert.NotEmpty(t, res.Diagnostics.Warnings, "an unresolvable pattern is reported")
	assert.Equal(t, diagnostic.CodePackageError, res.Diagnostics.Warnings[0].Code)
}

func TestJSONName(t *testing.T) {
	tests := []struct {
		tag      reflect.StructTag
		expected string
		ok       bool
	}{
		{`json:"my_field"`, "my_field", true},
		{`json:"my_field,omitempty"`, "my_field", true},
		{``, "MyField", true},
		{`json:",omitempty"`, "MyField", true},
		{`json:"-"`, "", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.tag), func(t *testing.T) {
			name, ok := jsonName("MyField", tt.tag)
			assert.Equal(t, tt.expected, name)
			assert.Equal(t, tt.ok, ok)
		})
	}
}
