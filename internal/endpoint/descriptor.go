package endpoint

import (
	"reqschema/internal/schema"
)

// Descriptor is the extracted description of one request-handling method.
type Descriptor struct {
	// Name is the operation summary, else the method name.
	Name       string `json:"name" yaml:"name"`
	MethodName string `json:"methodName" yaml:"methodName"`
	URL        string `json:"url" yaml:"url"`
	Verb       Verb   `json:"httpMethod" yaml:"httpMethod"`
	// Params holds path and query parameters.
	Params      []schema.ParamNode `json:"params" yaml:"params"`
	Body        []schema.ParamNode `json:"bodyParams" yaml:"bodyParams"`
	ParamTypes  []string           `json:"paramTypes" yaml:"paramTypes"`
	Description string             `json:"description" yaml:"description"`
	Response    []schema.ParamNode `json:"responseParams" yaml:"responseParams"`
	// Owner is the qualified name of the declaring class.
	Owner string `json:"className" yaml:"className"`
	// ContentType is the method-level consumes value, if any.
	ContentType string `json:"contentType,omitempty" yaml:"contentType,omitempty"`
}

// Key returns "Owner#MethodName".
func (d *Descriptor) Key() string {
	return d.Owner + "#" + d.MethodName
}
