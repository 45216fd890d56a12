// Package generic builds and applies type-parameter substitution maps.
//
// A Bindings value maps type parameter names to the concrete types bound at
// one use site. Maps are built fresh for every recursive step and never
// modified afterwards; Merge returns a new map.
package generic
