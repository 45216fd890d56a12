package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"reqschema/internal/endpoint"
)

// Format is the serialization format of an exported document.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// String returns the lower-case format name.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// ParseFormat parses "json", "yaml" or "yml", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return FormatJSON, fmt.Errorf("unknown output format %q", s)
	}
}

// Document is the exported listing of endpoint descriptors.
type Document struct {
	Version   string                `json:"version" yaml:"version"`
	Source    string                `json:"source,omitempty" yaml:"source,omitempty"`
	Endpoints []endpoint.Descriptor `json:"endpoints" yaml:"endpoints"`
}

// DocumentVersion is the schema version of Document.
const DocumentVersion = "1"

// NewDocument wraps descriptors extracted from source.
func NewDocument(source string, endpoints []endpoint.Descriptor) *Document {
	if endpoints == nil {
		endpoints = []endpoint.Descriptor{}
	}

	return &Document{
		Version:   DocumentVersion,
		Source:    source,
		Endpoints: endpoints,
	}
}

// Marshal serializes v in the given format. JSON is indented with two spaces.
func Marshal(v any, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		var buf bytes.Buffer

		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)

		if err := enc.Encode(v); err != nil {
			return nil, fmt.Errorf("failed to encode YAML: %w", err)
		}

		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode YAML: %w", err)
		}

		return buf.Bytes(), nil

	default:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode JSON: %w", err)
		}

		return append(data, '\n'), nil
	}
}

// Write serializes v to w in the given format.
func Write(w io.Writer, v any, format Format) error {
	data, err := Marshal(v, format)
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}

// ParseDocument decodes a document written by Marshal. YAML is a superset
// of JSON, so both formats decode the same way.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse descriptor document: %w", err)
	}

	return &doc, nil
}
