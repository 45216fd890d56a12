// Package scan lists the request-handling methods of a source model.
//
// Scan visits every class carrying a Controller or RestController annotation,
// extracts a descriptor for each routed method on a bounded worker pool and
// filters the results by keyword before paging them. Results keep the
// declaration order of the model regardless of the worker count.
package scan
