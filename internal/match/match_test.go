package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"OrderItem", "orderitem"},
		{"order_item", "orderitem"},
		{"Order-Item ", "orderitem"},
		{"", ""},
		{"ÄPFEL", "äpfel"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestSimpleName(t *testing.T) {
	assert.Equal(t, "Order", SimpleName("com.shop.Order"))
	assert.Equal(t, "Order", SimpleName("reqschema/examples/shop.Order"))
	assert.Equal(t, "Address", SimpleName("com.shop.Customer.Address"))
	assert.Equal(t, "Order", SimpleName("Order"))
}

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"a", "b", 1},
		{"ab", "abc", 1},
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},
		{"Hello", "hello", 1},
		{"größe", "grosse", 3},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, Distance(tt.a, tt.b))
			assert.Equal(t, tt.want, Distance(tt.b, tt.a), "symmetric")
		})
	}
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, Similarity("", ""), 1e-9)
	assert.InDelta(t, 1.0, Similarity("order_id", "OrderID"), 1e-9)
	assert.InDelta(t, 0.0, Similarity("abc", "xyz"), 1e-9)
	assert.InDelta(t, 0.75, Similarity("Node", "Code"), 1e-9)
}

func TestSuggest(t *testing.T) {
	classes := []string{
		"com.shop.api.OrderController",
		"com.shop.api.CustomerController",
		"com.shop.model.Order",
		"com.shop.model.Customer.Address",
		"com.shop.model.Order",
	}

	tests := []struct {
		name  string
		input string
		limit int
		want  []string
	}{
		{name: "typo", input: "Ordr", limit: 3, want: []string{"com.shop.model.Order"}},
		{name: "substring", input: "customer", limit: 3, want: []string{"com.shop.api.CustomerController"}},
		{name: "best first", input: "OrderControler", limit: 3, want: []string{"com.shop.api.OrderController", "com.shop.api.CustomerController"}},
		{name: "qualified input", input: "com.shop.Adress", limit: 3, want: []string{"com.shop.model.Customer.Address"}},
		{name: "limit", input: "Ordr", limit: 1, want: []string{"com.shop.model.Order"}},
		{name: "nothing close", input: "Invoice", limit: 3, want: []string{}},
		{name: "empty input", input: "", limit: 3, want: nil},
		{name: "zero limit", input: "Order", limit: 0, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Suggest(tt.input, classes, tt.limit))
		})
	}
}
