// Package endpoint derives the request/response description of one
// request-handling method: HTTP verb, full URL, path/query/body parameters
// and the response payload tree.
//
// Key types:
//   - Descriptor: the extracted description of one method
//   - Verb: the HTTP verb
//   - Extractor: builds Descriptors using a schema.Builder
//
// Extraction never fails. Unresolvable types degrade to STRING leaves,
// unsupported attribute expressions are treated as absent.
package endpoint
