package schema

import (
	"strings"

	"reqschema/internal/classify"
	"reqschema/internal/doc"
	"reqschema/internal/generic"
	"reqschema/internal/source"
)

// DefaultMaxDepth is the depth budget of the PathLocal policy when
// Options.MaxDepth is not set.
const DefaultMaxDepth = 10

// Options configures a Builder.
type Options struct {
	Policy VisitPolicy
	// MaxDepth bounds nesting under PathLocal. Zero means DefaultMaxDepth.
	MaxDepth int
}

func (o Options) maxDepth() int {
	if o.MaxDepth > 0 {
		return o.MaxDepth
	}

	return DefaultMaxDepth
}

// Builder converts classes and declared types into ParamNode trees.
// A Builder holds no per-traversal state and may be shared between goroutines
// when its model is safe for concurrent reads.
type Builder struct {
	model      source.Model
	classifier *classify.Classifier
	docs       *doc.Extractor
	opts       Options
}

// NewBuilder creates a Builder over model.
func NewBuilder(model source.Model, opts Options) *Builder {
	return &Builder{
		model:      model,
		classifier: classify.New(model),
		docs:       doc.New(model),
		opts:       opts,
	}
}

// Classifier returns the type classifier the Builder uses.
func (b *Builder) Classifier() *classify.Classifier {
	return b.classifier
}

// Docs returns the description extractor the Builder uses.
func (b *Builder) Docs() *doc.Extractor {
	return b.docs
}

// Build returns one node per field of class, in declaration order, with a
// fresh visited set. docOverride is the description of fields that have none.
func (b *Builder) Build(class *source.Class, docOverride string, bindings generic.Bindings) []ParamNode {
	return b.BuildWith(class, docOverride, NewVisited(), bindings)
}

// BuildWith is Build with a caller-owned visited set, which keeps growing
// across calls that share it.
func (b *Builder) BuildWith(class *source.Class, docOverride string, visited *Visited, bindings generic.Bindings) []ParamNode {
	if class == nil {
		return nil
	}

	if visited == nil {
		visited = NewVisited()
	}

	w := b.newWalk(visited)

	return w.fields(class, docOverride, bindings, 0)
}

// Node returns a root node named name for the declared type t. Objects expand
// into their fields and collections into their element's fields; the root
// class itself is not registered in the visited set.
func (b *Builder) Node(name string, t source.TypeRef, description string, bindings generic.Bindings) ParamNode {
	w := b.newWalk(NewVisited())
	t = generic.Substitute(t, bindings)

	return w.typeNode(name, t, description, bindings, 0, true)
}

type walk struct {
	b       *Builder
	visited *Visited
	// path holds the classes being expanded on the current branch.
	path map[string]bool
}

func (b *Builder) newWalk(visited *Visited) *walk {
	return &walk{b: b, visited: visited, path: make(map[string]bool)}
}

func (w *walk) fields(class *source.Class, docOverride string, bindings generic.Bindings, depth int) []ParamNode {
	var out []ParamNode

	seenNames := make(map[string]bool)
	seenClasses := make(map[*source.Class]bool)

	for class != nil && !seenClasses[class] {
		seenClasses[class] = true

		for i := range class.Fields {
			f := &class.Fields[i]
			if f.IsConstant() || seenNames[f.Name] {
				continue
			}
			seenNames[f.Name] = true

			out = append(out, w.field(f, docOverride, bindings, depth))
		}

		if class.Super == nil {
			break
		}

		superRef := generic.Substitute(*class.Super, bindings)

		super, ok := w.lookup(superRef)
		if !ok {
			break
		}

		class = super
		bindings = generic.Bind(super.TypeParams, superRef.Args)
	}

	return out
}

func (w *walk) field(f *source.Field, docOverride string, bindings generic.Bindings, depth int) ParamNode {
	t := generic.Substitute(f.Type, bindings)

	desc := w.b.docs.Field(f)
	if desc == "" {
		desc = docOverride
	}

	return w.typeNode(f.Name, t, desc, bindings, depth, false)
}

// typeNode builds the node for an already substituted type.
func (w *walk) typeNode(name string, t source.TypeRef, desc string, bindings generic.Bindings, depth int, root bool) ParamNode {
	kind := w.b.classifier.Classify(&t)

	node := ParamNode{
		Name:        name,
		Kind:        kind,
		Description: desc,
		RawType:     t.String(),
	}

	switch kind {
	case classify.DataKindEnum:
		if class, ok := w.lookup(t); ok {
			node.RawType = class.Name
			node.Enum = append([]string(nil), class.EnumConstants...)
		}

	case classify.DataKindArray:
		w.expandArray(&node, t, bindings, depth, root)

	case classify.DataKindObject:
		w.expandObject(&node, t, bindings, depth, root)
	}

	return node
}

func (w *walk) expandArray(node *ParamNode, t source.TypeRef, bindings generic.Bindings, depth int, root bool) {
	elem, ok := elementOf(t)
	if !ok {
		return
	}

	elem = elem.Bound()
	if w.b.classifier.Classify(&elem) != classify.DataKindObject {
		return
	}

	class, ok := w.lookup(elem)
	if !ok {
		return
	}

	if node.Description == "" {
		node.Description = w.b.docs.Class(class)
	}

	w.expandClass(node, class, elem.Args, bindings, depth, root)
}

func (w *walk) expandObject(node *ParamNode, t source.TypeRef, bindings generic.Bindings, depth int, root bool) {
	t = t.Bound()

	class, ok := w.lookup(t)
	if !ok {
		return
	}

	node.RawType = class.Name

	if node.Description == "" && root {
		node.Description = w.b.docs.Class(class)
	}

	w.expandClass(node, class, t.Args, bindings, depth, root)
}

// expandClass fills node's children from class. Interfaces expand into their
// implementation and generic classes into a fresh map pairing their own
// parameters with args; other classes keep the current bindings.
func (w *walk) expandClass(node *ParamNode, class *source.Class, args []source.TypeRef, bindings generic.Bindings, depth int, root bool) {
	if class.IsInterface() {
		impl, ok := w.b.Implementation(class)
		if !ok {
			return
		}
		class = impl
		bindings = scope(impl, args, bindings)
	} else if len(class.TypeParams) > 0 {
		bindings = scope(class, args, bindings)
	}

	node.Children, node.Recursive = w.expand(class, bindings, depth, root)
}

// scope returns the bindings visible inside class. A nested class also sees
// the parameters of its enclosing classes, shadowed by its own.
func scope(class *source.Class, args []source.TypeRef, parent generic.Bindings) generic.Bindings {
	local := generic.Bind(class.TypeParams, args)
	if class.Enclosing == "" || parent.Len() == 0 {
		return local
	}

	return generic.Merge(parent, local)
}

// expand applies the cycle guard and walks class's fields one level deeper.
// The root of a traversal is neither guarded nor registered.
func (w *walk) expand(class *source.Class, bindings generic.Bindings, depth int, root bool) ([]ParamNode, bool) {
	if root {
		return w.fields(class, "", bindings, depth), false
	}

	key := class.QualifiedName()
	if w.path[key] {
		return nil, true
	}

	switch w.b.opts.Policy {
	case PathLocal:
		if depth >= w.b.opts.maxDepth() {
			return nil, true
		}

	default:
		if class.IsConcrete() && !w.visited.Add(key) {
			return nil, true
		}
	}

	w.path[key] = true
	defer delete(w.path, key)

	return w.fields(class, "", bindings, depth+1), false
}

// Implementation picks the class an interface expands into: the only concrete
// class implementing it in its package, or among several the one uniquely
// named *Impl or Default*.
func (b *Builder) Implementation(iface *source.Class) (*source.Class, bool) {
	if b.model == nil || iface == nil {
		return nil, false
	}

	impls := b.model.Implementations(iface)
	if len(impls) == 1 {
		return impls[0], true
	}

	var preferred []*source.Class
	for _, c := range impls {
		if isPreferredImplName(c.Name) {
			preferred = append(preferred, c)
		}
	}

	if len(preferred) == 1 {
		return preferred[0], true
	}

	return nil, false
}

func (w *walk) lookup(t source.TypeRef) (*source.Class, bool) {
	if w.b.model == nil || t.Kind != source.RefClass {
		return nil, false
	}

	return w.b.model.Lookup(t)
}

// elementOf returns the element type of an array or one-argument collection.
func elementOf(t source.TypeRef) (source.TypeRef, bool) {
	switch {
	case t.Kind == source.RefArray && t.Elem != nil:
		return *t.Elem, true
	case t.Kind == source.RefClass && len(t.Args) == 1 && classify.IsCollection(t):
		return t.Args[0], true
	default:
		return source.TypeRef{}, false
	}
}

func isPreferredImplName(name string) bool {
	return strings.HasSuffix(name, "Impl") || strings.HasPrefix(name, "Default")
}
