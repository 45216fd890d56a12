package schema

import (
	"fmt"
	"strings"
)

// VisitPolicy selects how the Builder guards against cycles.
type VisitPolicy int

const (
	// SharedVisited expands each concrete class at most once per traversal.
	SharedVisited VisitPolicy = iota
	// PathLocal cuts a class only when it is already on the current path and
	// enforces Options.MaxDepth.
	PathLocal
)

// String returns the config name of the policy.
func (p VisitPolicy) String() string {
	switch p {
	case SharedVisited:
		return "shared"
	case PathLocal:
		return "path"
	default:
		return fmt.Sprintf("VisitPolicy(%d)", int(p))
	}
}

// ParseVisitPolicy parses "shared" or "path". The empty string is SharedVisited.
func ParseVisitPolicy(s string) (VisitPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "shared":
		return SharedVisited, nil
	case "path", "path-local", "pathlocal":
		return PathLocal, nil
	default:
		return SharedVisited, fmt.Errorf("unknown visit policy %q", s)
	}
}

// Visited is the set of class identities already expanded in one traversal.
// It is not safe for concurrent use.
type Visited struct {
	seen map[string]bool
}

// NewVisited creates an empty set.
func NewVisited() *Visited {
	return &Visited{seen: make(map[string]bool)}
}

// Add registers key and reports whether it was new.
func (v *Visited) Add(key string) bool {
	if v.seen[key] {
		return false
	}

	v.seen[key] = true

	return true
}
