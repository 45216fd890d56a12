package generic

import (
	"reqschema/internal/source"
)

// Bindings maps type parameter names to concrete types.
type Bindings map[string]source.TypeRef

// Bind pairs params with args positionally, up to the shorter of the two.
// Bounded wildcard arguments bind to their bound.
func Bind(params []string, args []source.TypeRef) Bindings {
	n := min(len(params), len(args))

	b := make(Bindings, n)
	for i := range n {
		b[params[i]] = args[i].Bound().Clone()
	}

	return b
}

// Resolve returns the type bound to name.
func (b Bindings) Resolve(name string) (source.TypeRef, bool) {
	t, ok := b[name]
	return t, ok
}

// Len returns the number of bound parameters.
func (b Bindings) Len() int {
	return len(b)
}

// Merge returns a fresh map holding parent's entries overlaid by local's.
func Merge(parent, local Bindings) Bindings {
	out := make(Bindings, len(parent)+len(local))
	for k, v := range parent {
		out[k] = v
	}

	for k, v := range local {
		out[k] = v
	}

	return out
}

// ResolveRef returns the type bound to t when t names a bound parameter:
// either a type-parameter reference or a bare unqualified class name with no
// arguments that the adapter could not classify.
func (b Bindings) ResolveRef(t source.TypeRef) (source.TypeRef, bool) {
	if len(b) == 0 || !isParamShaped(t) {
		return source.TypeRef{}, false
	}

	bound, ok := b[t.Name]
	if !ok {
		return source.TypeRef{}, false
	}

	return bound.Clone(), true
}

// Substitute returns a copy of t with every bound parameter replaced, at any
// depth. Replacement types are not substituted again.
func Substitute(t source.TypeRef, b Bindings) source.TypeRef {
	if bound, ok := b.ResolveRef(t); ok {
		return bound
	}

	out := t
	if len(t.Args) > 0 {
		out.Args = make([]source.TypeRef, len(t.Args))
		for i, a := range t.Args {
			out.Args[i] = Substitute(a, b)
		}
	}

	if t.Elem != nil {
		elem := Substitute(*t.Elem, b)
		out.Elem = &elem
	}

	return out
}

func isParamShaped(t source.TypeRef) bool {
	switch t.Kind {
	case source.RefTypeParam:
		return true
	case source.RefClass:
		return t.Qualified == "" && len(t.Args) == 0
	default:
		return false
	}
}
