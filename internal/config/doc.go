// Package config loads the reqschema configuration file.
//
// The file is YAML, read from --config or ~/.reqschema/config.yaml, and
// every setting can be overridden by a REQSCHEMA_* environment variable.
package config
