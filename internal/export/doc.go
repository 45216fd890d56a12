// Package export serializes extracted endpoints.
//
// A Document is the descriptor listing written as JSON or YAML. OpenAPI
// converts the same descriptors into an OpenAPI 3.0 document built with
// kin-openapi.
//
// Key types:
//   - Document: endpoint descriptors plus generator metadata
//   - Format: the serialization format of a document
//   - Info: title and version of an OpenAPI document
package export
