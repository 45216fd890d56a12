package endpoint

import (
	"fmt"
	"strings"
)

// Verb is the HTTP verb of an endpoint.
type Verb int

const (
	VerbUnknown Verb = iota
	VerbGet
	VerbPost
	VerbPut
	VerbDelete
	VerbPatch
	// VerbRequest marks a generic mapping in documents produced by tools that
	// do not resolve its method. Extraction itself never yields it.
	VerbRequest
)

var verbNames = [...]string{
	VerbUnknown: "UNKNOWN",
	VerbGet:     "GET",
	VerbPost:    "POST",
	VerbPut:     "PUT",
	VerbDelete:  "DELETE",
	VerbPatch:   "PATCH",
	VerbRequest: "REQUEST",
}

// String returns the upper-case verb name.
func (v Verb) String() string {
	if v < 0 || int(v) >= len(verbNames) {
		return verbNames[VerbUnknown]
	}

	return verbNames[v]
}

// ParseVerb parses a verb name, case-insensitively.
func ParseVerb(s string) (Verb, error) {
	for i, name := range verbNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return Verb(i), nil
		}
	}

	return VerbUnknown, fmt.Errorf("unknown HTTP verb %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (v Verb) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Verb) UnmarshalText(text []byte) error {
	parsed, err := ParseVerb(string(text))
	if err != nil {
		return err
	}
	*v = parsed

	return nil
}
