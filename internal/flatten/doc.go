// Package flatten turns nested parameter trees into flat, path-named rows
// suitable for tabular editing.
//
// Top-level objects are unwrapped: their fields appear without the wrapper's
// name. Nested object fields are joined with dots ("address.city") and array
// children get an index segment ("items[0].sku").
package flatten
