// Package cli implements the reqschema command line.
//
// Every subcommand takes a source directory, loads it with the adapter named
// by --source (or source.kind in the config file) and works on the resulting
// model:
//
//	reqschema scan ./src --keyword orders --mode url
//	reqschema describe ./src --class OrderController --method get
//	reqschema schema ./src --class Order --flat --format yaml
//	reqschema example ./src --class OrderController --method create --random
//	reqschema openapi ./src --title "Shop API" > openapi.yaml
//
// Usage mistakes are reported as errors matching ErrUsage. The caller maps
// them to exit code 2.
package cli
