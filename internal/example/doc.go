// Package example renders sample JSON payloads from parameter trees.
//
// Objects keep the order of their nodes. ARRAY nodes with an element schema
// render one element object, leaf nodes a placeholder for their kind.
package example
