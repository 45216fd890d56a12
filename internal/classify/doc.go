// Package classify maps declared types to the semantic DataKind shown in a
// request schema.
//
// Checks run in a fixed order and the first match wins: integer, boolean,
// number and string families, temporal types, arrays, wildcards and type
// parameters, then classes resolved through the source model (enum,
// collection, file, object). Anything left over is STRING. Java and Go
// spellings are both recognized.
package classify
