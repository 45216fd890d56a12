// Package doc extracts human-readable descriptions for methods, fields and
// classes.
//
// Structured documentation annotations (ApiOperation, Operation, ApiModel,
// ApiModelProperty, Schema) win over free-text doc comments. Doc comments are
// cleaned with Clean.
package doc
