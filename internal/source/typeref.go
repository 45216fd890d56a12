package source

import (
	"regexp"
	"strings"

	"reqschema/internal/common"
)

// RefKind classifies the syntactic shape of a TypeRef.
type RefKind int

const (
	RefClass     RefKind = iota // named class or interface, possibly generic
	RefPrimitive                // int, boolean, double, ...
	RefArray                    // T[] (Elem holds the component)
	RefWildcard                 // ? / ? extends T / ? super T (Elem holds the bound)
	RefTypeParam                // symbol naming an in-scope type parameter
)

// String returns a human-readable representation of the RefKind.
func (k RefKind) String() string {
	switch k {
	case RefClass:
		return "class"
	case RefPrimitive:
		return "primitive"
	case RefArray:
		return "array"
	case RefWildcard:
		return "wildcard"
	case RefTypeParam:
		return "type-param"
	default:
		return common.UnknownStr
	}
}

// TypeRef is a declared type as written at a use site.
type TypeRef struct {
	Kind RefKind
	// Name is the simple name as written ("List", "int", "T").
	Name string
	// Qualified is the resolved qualified name when the adapter knows it
	// ("java.util.List", "reqschema/examples/shop.Order").
	Qualified string
	// Args are the use-site type arguments.
	Args []TypeRef
	// Elem is the array component or the wildcard bound.
	Elem *TypeRef
	// Lower is true for "? super T" wildcards.
	Lower bool
}

// Named returns a class reference with the given simple name and type arguments.
func Named(name string, args ...TypeRef) TypeRef {
	pkg, simple := common.SplitQualified(name)
	ref := TypeRef{Kind: RefClass, Name: simple, Args: args}
	if pkg != "" {
		ref.Qualified = name
	}

	return ref
}

// Primitive returns a primitive type reference.
func Primitive(name string) TypeRef {
	return TypeRef{Kind: RefPrimitive, Name: name}
}

// ArrayOf returns an array reference over elem.
func ArrayOf(elem TypeRef) TypeRef {
	return TypeRef{Kind: RefArray, Elem: &elem}
}

// TypeParam returns a reference to a type parameter symbol.
func TypeParam(name string) TypeRef {
	return TypeRef{Kind: RefTypeParam, Name: name}
}

// IsZero reports whether the reference carries no type at all.
func (t TypeRef) IsZero() bool {
	return t.Name == "" && t.Elem == nil && t.Kind == RefClass
}

// String returns the presentable text of the type, using simple names.
func (t TypeRef) String() string {
	return t.format(false)
}

// Canonical returns the type text using qualified names where known.
func (t TypeRef) Canonical() string {
	return t.format(true)
}

func (t TypeRef) format(qualified bool) string {
	switch t.Kind {
	case RefArray:
		if t.Elem == nil {
			return "[]"
		}
		return t.Elem.format(qualified) + "[]"

	case RefWildcard:
		if t.Elem == nil {
			return "?"
		}
		if t.Lower {
			return "? super " + t.Elem.format(qualified)
		}
		return "? extends " + t.Elem.format(qualified)
	}

	name := t.Name
	if qualified && t.Qualified != "" {
		name = t.Qualified
	}

	if len(t.Args) == 0 {
		return name
	}

	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.format(qualified)
	}

	return name + "<" + strings.Join(args, ", ") + ">"
}

// Bound returns the wildcard bound, or the reference itself for non-wildcards.
// An unbounded wildcard returns itself.
func (t TypeRef) Bound() TypeRef {
	if t.Kind == RefWildcard && t.Elem != nil {
		return *t.Elem
	}

	return t
}

// Walk calls fn for t and every nested reference, depth first.
func (t *TypeRef) Walk(fn func(*TypeRef)) {
	fn(t)

	for i := range t.Args {
		t.Args[i].Walk(fn)
	}

	if t.Elem != nil {
		t.Elem.Walk(fn)
	}
}

// Clone returns a deep copy of t.
func (t TypeRef) Clone() TypeRef {
	out := t
	if len(t.Args) > 0 {
		out.Args = make([]TypeRef, len(t.Args))
		for i, a := range t.Args {
			out.Args[i] = a.Clone()
		}
	}

	if t.Elem != nil {
		elem := t.Elem.Clone()
		out.Elem = &elem
	}

	return out
}

var primitiveNames = map[string]bool{
	"int": true, "long": true, "short": true, "byte": true, "char": true,
	"boolean": true, "float": true, "double": true, "void": true,
}

// IsPrimitiveName reports whether name is a Java primitive keyword.
func IsPrimitiveName(name string) bool {
	return primitiveNames[name]
}

var inlineAnnotation = regexp.MustCompile(`@[\w.$]+(\s*\([^()]*\))?`)

// ParseType parses a type expression such as "Map<String, List<? extends T>>[]".
// Names listed in typeParams become RefTypeParam references. Type-use
// annotations are ignored. Malformed input degrades to a class reference named
// after the trimmed expression.
func ParseType(expr string, typeParams ...string) TypeRef {
	cleaned := strings.TrimSpace(inlineAnnotation.ReplaceAllString(expr, " "))

	p := &typeParser{
		toks:   tokenizeType(cleaned),
		params: make(map[string]bool, len(typeParams)),
	}
	for _, tp := range typeParams {
		p.params[tp] = true
	}

	ref, ok := p.parseType()
	if !ok || p.pos != len(p.toks) {
		return TypeRef{Kind: RefClass, Name: cleaned}
	}

	return ref
}

type typeParser struct {
	toks   []string
	pos    int
	params map[string]bool
}

func (p *typeParser) peek() string {
	if p.pos < len(p.toks) {
		return p.toks[p.pos]
	}

	return ""
}

func (p *typeParser) next() string {
	tok := p.peek()
	if tok != "" {
		p.pos++
	}

	return tok
}

func (p *typeParser) parseType() (TypeRef, bool) {
	if p.peek() == "?" {
		p.next()

		ref := TypeRef{Kind: RefWildcard, Name: "?"}
		switch p.peek() {
		case "extends", "super":
			ref.Lower = p.next() == "super"

			bound, ok := p.parseType()
			if !ok {
				return TypeRef{}, false
			}
			ref.Elem = &bound
		}

		return ref, true
	}

	name := p.next()
	if !isIdentTok(name) {
		return TypeRef{}, false
	}

	ref := p.refForName(name)

	if p.peek() == "<" {
		p.next()

		for p.peek() != ">" {
			arg, ok := p.parseType()
			if !ok {
				return TypeRef{}, false
			}
			ref.Args = append(ref.Args, arg)

			if p.peek() == "," {
				p.next()
				if p.peek() == ">" {
					return TypeRef{}, false
				}

				continue
			}

			if p.peek() != ">" {
				return TypeRef{}, false
			}
		}
		p.next()
	}

	for {
		switch p.peek() {
		case "[":
			p.next()
			if p.next() != "]" {
				return TypeRef{}, false
			}
			ref = ArrayOf(ref)

			continue

		case "...":
			p.next()
			ref = ArrayOf(ref)

			continue
		}

		return ref, true
	}
}

func (p *typeParser) refForName(name string) TypeRef {
	switch {
	case p.params[name]:
		return TypeParam(name)
	case primitiveNames[name]:
		return Primitive(name)
	default:
		return Named(name)
	}
}

func isIdentTok(tok string) bool {
	if tok == "" {
		return false
	}

	switch tok {
	case "<", ">", ",", "[", "]", "?", "...":
		return false
	}

	return true
}

func tokenizeType(s string) []string {
	var toks []string

	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++

		case strings.HasPrefix(s[i:], "..."):
			toks = append(toks, "...")
			i += 3

		case c == '<' || c == '>' || c == ',' || c == '[' || c == ']' || c == '?':
			toks = append(toks, string(c))
			i++

		default:
			j := i
			for j < len(s) && isIdentByte(s[j]) && !strings.HasPrefix(s[j:], "...") {
				j++
			}
			if j == i {
				// Unknown punctuation: keep it so the parse fails and degrades.
				toks = append(toks, string(c))
				i++

				continue
			}
			toks = append(toks, s[i:j])
			i = j
		}
	}

	return toks
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' || c == '.' || c == '/' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') ||
		c >= 0x80
}
