// Package source defines the read-only source model the schema engine walks.
//
// Adapters (javasrc, gosrc, and the YAML model files in this package) turn
// declarations into Class values, register them in an Index and call Link
// once. After that the Index is immutable and safe for concurrent reads.
//
// Key types:
//   - TypeRef: a declared type as written at a use site
//   - Class, Field, Method, Param: declarations
//   - Annotation: one annotation with a closed AnnotationKind
//   - Model: the lookup interface consumed by the engine
//   - Index: the in-memory Model implementation
//
// # Model files
//
// Classes can be described in YAML, one package per document:
//
//	package: com.shop.api
//	imports: [java.util.List]
//	classes:
//	  - name: UserController
//	    annotations:
//	      - RestController
//	      - {name: RequestMapping, value: /api}
//	    methods:
//	      - name: get
//	        returns: User
//	        annotations:
//	          - {name: GetMapping, value: "/users/{id}"}
//	        params:
//	          - {name: id, type: Long, annotations: [PathVariable]}
//
// Attribute values are string literals unless tagged: "!const MediaType.X"
// is a constant reference and "!expr ..." keeps raw expression text.
package source
