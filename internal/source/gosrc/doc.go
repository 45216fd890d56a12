// Package gosrc builds a source model from Go packages.
//
// Packages are loaded with golang.org/x/tools/go/packages and every named
// struct, interface and string or integer enum becomes a source.Class. Struct
// fields are named by their json tag; embedding a loaded struct without a tag
// is treated as inheritance. Handlers are marked with comment directives:
//
//	// OrderHandler serves orders.
//	//
//	// @Controller
//	// @Route /api/orders
//	type OrderHandler struct{}
//
//	// Get loads one order.
//	//
//	// @Router /{id} [get]
//	// @Param id path int true "order id"
//	func (h *OrderHandler) Get(ctx context.Context, id int64) (*Order, error)
//
// Key types:
//   - Options: package directory and logger
//   - Result: the linked index, loaded package paths and diagnostics
package gosrc
