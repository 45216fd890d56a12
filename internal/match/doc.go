// Package match ranks known identifiers by their similarity to a misspelled
// one, for "did you mean" hints on unknown class and method names.
//
// Key functions:
//   - Normalize: folds an identifier to its comparable form
//   - Distance: edit distance between two strings
//   - Suggest: the closest candidates to a name
package match
