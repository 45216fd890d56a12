package common

import "strings"

// SplitQualified splits a dotted qualified name into its package and simple name.
// "com.shop.Order" yields ("com.shop", "Order"); "Order" yields ("", "Order").
func SplitQualified(qualified string) (pkg, name string) {
	i := strings.LastIndex(qualified, ".")
	if i < 0 {
		return "", qualified
	}

	return qualified[:i], qualified[i+1:]
}

// JoinQualified joins a package and simple name with a dot, omitting the dot
// when pkg is empty.
func JoinQualified(pkg, name string) string {
	if pkg == "" {
		return name
	}

	return pkg + "." + name
}

// SimpleName returns the last dotted segment of a qualified name.
func SimpleName(qualified string) string {
	_, name := SplitQualified(qualified)
	return name
}
