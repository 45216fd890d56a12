package source

import (
	"strings"

	"reqschema/internal/common"
)

// javaLang lists the implicitly imported java.lang types the engine cares about.
var javaLang = map[string]bool{
	"String": true, "Integer": true, "Long": true, "Short": true, "Byte": true,
	"Boolean": true, "Double": true, "Float": true, "Character": true,
	"Object": true, "Number": true, "Void": true, "CharSequence": true, "Iterable": true,
}

// Index is the in-memory Model implementation populated by the adapters.
// Add classes, call Link once, then treat the Index as read-only.
type Index struct {
	classes   []*Class
	byName    map[string]*Class
	bySimple  map[string][]*Class
	constants map[string]string
}

var _ Model = (*Index)(nil)

// NewIndex creates an empty Index.
func NewIndex() *Index {
	return &Index{
		byName:    make(map[string]*Class),
		bySimple:  make(map[string][]*Class),
		constants: make(map[string]string),
	}
}

// Add registers classes. A later class with the same qualified name replaces
// the earlier lookup entry but keeps declaration order.
func (ix *Index) Add(classes ...*Class) {
	for _, c := range classes {
		if c == nil {
			continue
		}

		ix.classes = append(ix.classes, c)
		ix.byName[c.QualifiedName()] = c
		ix.bySimple[c.Name] = append(ix.bySimple[c.Name], c)
	}
}

// Len returns the number of registered classes.
func (ix *Index) Len() int {
	return len(ix.classes)
}

// Class implements Model.
func (ix *Index) Class(qualifiedName string) (*Class, bool) {
	c, ok := ix.byName[qualifiedName]
	return c, ok
}

// Classes implements Model.
func (ix *Index) Classes() []*Class {
	return ix.classes
}

// Lookup implements Model. Qualified names match exactly, then by suffix
// ("shop.Order" vs "com.acme.shop.Order"); unqualified names fall back to the
// first class with that simple name.
func (ix *Index) Lookup(ref TypeRef) (*Class, bool) {
	if ref.Kind != RefClass || ref.Name == "" {
		return nil, false
	}

	if ref.Qualified != "" {
		if c, ok := ix.byName[ref.Qualified]; ok {
			return c, true
		}

		for _, c := range ix.bySimple[ref.Name] {
			qn := c.QualifiedName()
			if strings.HasSuffix(qn, "."+ref.Qualified) || strings.HasSuffix(qn, "/"+ref.Qualified) {
				return c, true
			}
		}

		return nil, false
	}

	if v, ok := common.First(ix.bySimple[ref.Name]); ok {
		return v, true
	}

	return nil, false
}

// Implementations implements Model.
func (ix *Index) Implementations(iface *Class) []*Class {
	if iface == nil || !iface.IsInterface() {
		return nil
	}

	target := iface.QualifiedName()

	var out []*Class
	for _, c := range ix.classes {
		if c.Package != iface.Package || !c.IsConcrete() {
			continue
		}

		if ix.implements(c, target, make(map[*Class]bool)) {
			out = append(out, c)
		}
	}

	return out
}

func (ix *Index) implements(c *Class, target string, seen map[*Class]bool) bool {
	if c == nil || seen[c] {
		return false
	}
	seen[c] = true

	for _, ref := range c.Interfaces {
		parent, ok := ix.Lookup(ref)
		if !ok {
			continue
		}

		if parent.QualifiedName() == target || ix.implements(parent, target, seen) {
			return true
		}
	}

	if c.Super != nil {
		if parent, ok := ix.Lookup(*c.Super); ok {
			return ix.implements(parent, target, seen)
		}
	}

	return false
}

// Constant implements Model.
func (ix *Index) Constant(ref string) (string, bool) {
	v, ok := ix.constants[strings.TrimSpace(ref)]
	return v, ok
}

// Link resolves unqualified class references against imports, the declaring
// package, nested classes and java.lang, reclassifies references that name an
// in-scope type parameter, and indexes constant fields.
func (ix *Index) Link() {
	for _, c := range ix.classes {
		r := resolver{ix: ix, class: c, params: toSet(c.TypeParams)}

		if c.Super != nil {
			r.resolve(c.Super)
		}

		for i := range c.Interfaces {
			r.resolve(&c.Interfaces[i])
		}

		for i := range c.Fields {
			f := &c.Fields[i]
			r.resolve(&f.Type)

			if f.IsConstant() && f.Constant != "" {
				ix.addConstant(c, f)
			}
		}

		for i := range c.Methods {
			m := &c.Methods[i]
			mr := r.withParams(m.TypeParams)

			if m.Return != nil {
				mr.resolve(m.Return)
			}

			for j := range m.Params {
				mr.resolve(&m.Params[j].Type)
			}
		}
	}
}

func (ix *Index) addConstant(c *Class, f *Field) {
	owner := c.Name
	if c.Enclosing != "" {
		owner = c.Enclosing + "." + c.Name
	}

	ix.constants[c.Name+"."+f.Name] = f.Constant
	ix.constants[owner+"."+f.Name] = f.Constant
	ix.constants[c.QualifiedName()+"."+f.Name] = f.Constant
}

type resolver struct {
	ix     *Index
	class  *Class
	params map[string]bool
}

func (r resolver) withParams(extra []string) resolver {
	if len(extra) == 0 {
		return r
	}

	params := make(map[string]bool, len(r.params)+len(extra))
	for k := range r.params {
		params[k] = true
	}

	for _, p := range extra {
		params[p] = true
	}

	return resolver{ix: r.ix, class: r.class, params: params}
}

func (r resolver) resolve(ref *TypeRef) {
	ref.Walk(func(t *TypeRef) {
		if t.Kind != RefClass {
			return
		}

		if t.Qualified == "" && len(t.Args) == 0 && r.params[t.Name] {
			t.Kind = RefTypeParam
			return
		}

		if qn, ok := r.qualify(t); ok {
			t.Qualified = qn
		}
	})
}

func (r resolver) qualify(t *TypeRef) (string, bool) {
	written := t.Name
	if t.Qualified != "" {
		if _, ok := r.ix.byName[t.Qualified]; ok {
			return t.Qualified, true
		}
		written = t.Qualified
	}

	head, rest, dotted := strings.Cut(written, ".")

	var candidates []string

	for _, imp := range r.class.Imports {
		if strings.HasPrefix(imp, "static ") {
			continue
		}

		pkg, ok := strings.CutSuffix(imp, ".*")
		if ok {
			candidates = append(candidates, pkg+"."+written)
			continue
		}

		if common.SimpleName(imp) == head {
			if dotted {
				candidates = append(candidates, imp+"."+rest)
			} else {
				candidates = append(candidates, imp)
			}
		}
	}

	candidates = append(candidates,
		r.class.QualifiedName()+"."+written,
		common.JoinQualified(r.class.Package, written),
	)

	for _, qn := range candidates {
		if _, ok := r.ix.byName[qn]; ok {
			return qn, true
		}
	}

	// Explicit single-type imports resolve even for classes outside the index.
	for _, imp := range r.class.Imports {
		if !strings.HasSuffix(imp, ".*") && !strings.HasPrefix(imp, "static ") && common.SimpleName(imp) == head && !dotted {
			return imp, true
		}
	}

	if !dotted && javaLang[written] {
		return "java.lang." + written, true
	}

	return "", false
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, it := range items {
		set[it] = true
	}

	return set
}
