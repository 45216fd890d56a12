package match

import (
	"strings"
	"unicode"
)

// Normalize lower-cases s and drops separators, so "order_item",
// "Order-Item" and "OrderItem" compare equal.
func Normalize(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		if isSeparator(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

// SimpleName strips a package or enclosing-class qualifier: "com.shop.Order"
// and "reqschema/examples/shop.Order" both become "Order".
func SimpleName(s string) string {
	if i := strings.LastIndexAny(s, "./"); i >= 0 {
		return s[i+1:]
	}

	return s
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}
