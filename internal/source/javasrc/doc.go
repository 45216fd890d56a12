// Package javasrc reads Java source files into the source model using the
// tree-sitter Java grammar.
//
// The parser is declaration-only: it records packages, imports, classes,
// interfaces, enums and records (nested ones included), fields with their
// string constant initializers, methods with parameters, annotations with
// their attribute expressions, and the Javadoc block preceding each
// declaration. Method bodies are not inspected.
//
// Key types:
//   - File: one parsed compilation unit
//   - Options: include patterns, excluded directories and parse parallelism
//   - Result: the linked Index plus per-file diagnostics
package javasrc
