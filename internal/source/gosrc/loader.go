package gosrc

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/constant"
	"go/types"
	"log/slog"
	"reflect"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"

	"reqschema/internal/diagnostic"
	"reqschema/internal/source"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// ErrNoPackages is returned when the patterns match no package.
var ErrNoPackages = errors.New("no packages matched")

// Options configures a Load.
type Options struct {
	// Dir is the directory packages are resolved from. Empty means the
	// current directory.
	Dir    string
	Logger *slog.Logger
}

// Result is the outcome of loading Go packages.
type Result struct {
	Index       *source.Index
	Packages    []string
	Diagnostics diagnostic.Diagnostics
}

// Load loads the packages matching patterns (e.g. "./...", "reqschema/examples/shop")
// and converts their named types into an Index. Package errors become
// diagnostics; the packages that did type-check are still converted.
func Load(ctx context.Context, patterns []string, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	cfg := &packages.Config{
		Mode:    LoadMode,
		Context: ctx,
		Dir:     opts.Dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	if len(pkgs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoPackages, strings.Join(patterns, " "))
	}

	l := newLoader()
	res := &Result{Index: source.NewIndex()}

	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			logger.Warn("package error", slog.String("package", pkg.PkgPath), slog.String("error", e.Msg))
			res.Diagnostics.AddWarning(diagnostic.CodePackageError, e.Msg, e.Pos, pkg.PkgPath)
		}

		if pkg.Types == nil {
			continue
		}

		l.declare(pkg)
		res.Packages = append(res.Packages, pkg.PkgPath)
	}

	for _, pkg := range l.pkgs {
		classes := l.convert(pkg)
		logger.Debug("go package loaded", slog.String("package", pkg.PkgPath), slog.Int("classes", len(classes)))
		res.Index.Add(classes...)
	}

	res.Index.Link()

	return res, nil
}

// loader converts go/types declarations into source classes. Declaration
// runs first over every package so type references can tell loaded classes
// from external types.
type loader struct {
	pkgs    []*packages.Package
	classes map[*types.TypeName]*source.Class
	order   map[*packages.Package][]*types.TypeName
	enums   map[*types.TypeName][]string
	docs    map[*packages.Package]*docIndex
}

func newLoader() *loader {
	return &loader{
		classes: make(map[*types.TypeName]*source.Class),
		order:   make(map[*packages.Package][]*types.TypeName),
		enums:   make(map[*types.TypeName][]string),
		docs:    make(map[*packages.Package]*docIndex),
	}
}

// declare registers the struct, interface and enum types of pkg.
func (l *loader) declare(pkg *packages.Package) {
	l.pkgs = append(l.pkgs, pkg)
	l.docs[pkg] = indexDocs(pkg.Syntax)
	l.collectEnums(pkg)

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		typeName, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || typeName.IsAlias() {
			continue
		}

		named, ok := typeName.Type().(*types.Named)
		if !ok {
			continue
		}

		c := &source.Class{
			Package: pkg.PkgPath,
			Name:    name,
			Doc:     l.docs[pkg].types[name],
		}

		switch named.Underlying().(type) {
		case *types.Struct:
			c.Kind = source.KindClass
		case *types.Interface:
			c.Kind = source.KindInterface
		case *types.Basic:
			consts, isEnum := l.enums[typeName]
			if !isEnum {
				continue
			}
			c.Kind = source.KindEnum
			c.EnumConstants = consts
		default:
			continue
		}

		if tps := named.TypeParams(); tps != nil {
			for i := 0; i < tps.Len(); i++ {
				c.TypeParams = append(c.TypeParams, tps.At(i).Obj().Name())
			}
		}

		c.Annotations = typeAnnotations(c.Doc)
		if pos := pkg.Fset.Position(typeName.Pos()); pos.IsValid() {
			c.File = pos.Filename
		}

		l.classes[typeName] = c
		l.order[pkg] = append(l.order[pkg], typeName)
	}
}

// collectEnums groups the typed constants of pkg by their named basic type,
// in declaration order. String constants contribute their value, others
// their name.
func (l *loader) collectEnums(pkg *packages.Package) {
	scope := pkg.Types.Scope()

	var consts []*types.Const
	for _, name := range scope.Names() {
		c, ok := scope.Lookup(name).(*types.Const)
		if !ok {
			continue
		}

		named, ok := c.Type().(*types.Named)
		if !ok || named.Obj().Pkg() != pkg.Types {
			continue
		}

		if _, ok := named.Underlying().(*types.Basic); ok {
			consts = append(consts, c)
		}
	}

	sort.Slice(consts, func(i, j int) bool { return consts[i].Pos() < consts[j].Pos() })

	for _, c := range consts {
		owner := c.Type().(*types.Named).Obj()

		value := c.Name()
		if c.Val().Kind() == constant.String {
			value = constant.StringVal(c.Val())
		}

		l.enums[owner] = append(l.enums[owner], value)
	}
}

// convert fills in the fields, methods and interfaces of pkg's classes.
func (l *loader) convert(pkg *packages.Package) []*source.Class {
	docs := l.docs[pkg]

	var out []*source.Class

	for _, typeName := range l.order[pkg] {
		c := l.classes[typeName]
		named := typeName.Type().(*types.Named)

		if st, ok := named.Underlying().(*types.Struct); ok {
			l.structFields(c, st, docs.fields[c.Name])
			l.methods(c, named, docs)
			l.interfaces(c, named, pkg)
		}

		out = append(out, c)
	}

	return out
}

func (l *loader) structFields(c *source.Class, st *types.Struct, docs map[string]string) {
	for i := 0; i < st.NumFields(); i++ {
		field := st.Field(i)
		tag := reflect.StructTag(st.Tag(i))

		if !field.Exported() && !field.Embedded() {
			continue
		}

		name, ok := jsonName(field.Name(), tag)
		if !ok {
			continue
		}

		if field.Embedded() && tag.Get("json") == "" {
			if ref, ok := l.embedded(field.Type()); ok && c.Super == nil {
				c.Super = &ref
				continue
			}

			if !field.Exported() {
				continue
			}
		}

		c.Fields = append(c.Fields, source.Field{
			Name:        name,
			Type:        l.ref(field.Type()),
			Doc:         docs[field.Name()],
			Annotations: tagAnnotations(tag),
		})
	}
}

// embedded returns the class reference of an embedded loaded struct.
func (l *loader) embedded(t types.Type) (source.TypeRef, bool) {
	if p, ok := t.(*types.Pointer); ok {
		t = p.Elem()
	}

	named, ok := t.(*types.Named)
	if !ok {
		return source.TypeRef{}, false
	}

	c, ok := l.classes[named.Origin().Obj()]
	if !ok || c.Kind != source.KindClass {
		return source.TypeRef{}, false
	}

	return l.ref(named), true
}

// methods converts the exported methods declared on named (value and
// pointer receivers). The first non-error result becomes the return type.
func (l *loader) methods(c *source.Class, named *types.Named, docs *docIndex) {
	for i := 0; i < named.NumMethods(); i++ {
		fn := named.Method(i)
		if !fn.Exported() {
			continue
		}

		sig := fn.Type().(*types.Signature)
		doc := docs.funcs[c.Name+"."+fn.Name()]
		annots, markers := methodAnnotations(doc)

		m := source.Method{
			Name:        fn.Name(),
			Doc:         doc,
			Annotations: annots,
		}

		for j := 0; j < sig.Params().Len(); j++ {
			p := sig.Params().At(j)
			m.Params = append(m.Params, source.Param{
				Name:        p.Name(),
				Type:        l.ref(p.Type()),
				Annotations: markers[p.Name()],
			})
		}

		for j := 0; j < sig.Results().Len(); j++ {
			rt := sig.Results().At(j).Type()
			if isError(rt) {
				continue
			}

			ret := l.ref(rt)
			m.Return = &ret

			break
		}

		c.Methods = append(c.Methods, m)
	}
}

// interfaces records every non-empty interface of pkg that named satisfies.
func (l *loader) interfaces(c *source.Class, named *types.Named, pkg *packages.Package) {
	if named.TypeParams().Len() > 0 {
		return
	}

	ptr := types.NewPointer(named)

	for _, typeName := range l.order[pkg] {
		iface, ok := typeName.Type().Underlying().(*types.Interface)
		if !ok || iface.NumMethods() == 0 || typeName.Type().(*types.Named).TypeParams().Len() > 0 {
			continue
		}

		if types.Implements(named, iface) || types.Implements(ptr, iface) {
			c.Interfaces = append(c.Interfaces, l.classes[typeName].Ref())
		}
	}
}

// ref converts a go/types type into a source reference. Pointers are
// transparent, slices and arrays become array references and named types
// outside the loaded classes keep their import-path qualified name.
func (l *loader) ref(t types.Type) source.TypeRef {
	switch tt := t.(type) {
	case *types.Pointer:
		return l.ref(tt.Elem())

	case *types.Slice:
		return source.ArrayOf(l.ref(tt.Elem()))

	case *types.Array:
		return source.ArrayOf(l.ref(tt.Elem()))

	case *types.Basic:
		return source.Primitive(tt.Name())

	case *types.TypeParam:
		return source.TypeParam(tt.Obj().Name())

	case *types.Named:
		return l.namedRef(tt)

	default:
		return source.TypeRef{Kind: source.RefClass, Name: types.TypeString(t, relativeTo)}
	}
}

func (l *loader) namedRef(named *types.Named) source.TypeRef {
	obj := named.Origin().Obj()
	if obj.Pkg() == nil {
		return source.TypeRef{Kind: source.RefClass, Name: obj.Name()}
	}

	var args []source.TypeRef
	if targs := named.TypeArgs(); targs != nil {
		for i := 0; i < targs.Len(); i++ {
			args = append(args, l.ref(targs.At(i)))
		}
	}

	ref := source.TypeRef{
		Kind:      source.RefClass,
		Name:      obj.Name(),
		Qualified: obj.Pkg().Path() + "." + obj.Name(),
		Args:      args,
	}

	if _, ok := l.classes[obj]; ok || !l.isLoaded(obj.Pkg()) {
		return ref
	}

	// A loaded named type that is not a class is a plain alias of its
	// underlying type ("type Cents int64", "type Items []Item").
	return l.ref(named.Underlying())
}

func (l *loader) isLoaded(pkg *types.Package) bool {
	for _, p := range l.pkgs {
		if p.Types == pkg {
			return true
		}
	}

	return false
}

func relativeTo(pkg *types.Package) string {
	return pkg.Name()
}

func isError(t types.Type) bool {
	named, ok := t.(*types.Named)
	return ok && named.Obj().Pkg() == nil && named.Obj().Name() == "error"
}

// jsonName returns the JSON tag name if present, otherwise the field name.
// A "-" tag reports false.
func jsonName(field string, tag reflect.StructTag) (string, bool) {
	v, ok := tag.Lookup("json")
	if !ok {
		return field, true
	}

	name, _, _ := strings.Cut(v, ",")

	switch name {
	case "-":
		return "", false
	case "":
		return field, true
	default:
		return name, true
	}
}

// tagAnnotations maps a `description:"..."` struct tag to a Schema annotation.
func tagAnnotations(tag reflect.StructTag) source.Annotations {
	desc, ok := tag.Lookup("description")
	if !ok || desc == "" {
		return nil
	}

	return source.Annotations{source.NewAnnotation("Schema", map[string]source.Value{
		"description": source.StringValue(desc),
	})}
}

// docIndex holds the raw doc comments of one package.
type docIndex struct {
	types  map[string]string
	fields map[string]map[string]string
	// funcs is keyed by "Receiver.Method".
	funcs map[string]string
}

func indexDocs(files []*ast.File) *docIndex {
	ix := &docIndex{
		types:  make(map[string]string),
		fields: make(map[string]map[string]string),
		funcs:  make(map[string]string),
	}

	for _, f := range files {
		for _, decl := range f.Decls {
			switch d := decl.(type) {
			case *ast.GenDecl:
				ix.addGenDecl(d)
			case *ast.FuncDecl:
				if recv := receiverName(d); recv != "" {
					ix.funcs[recv+"."+d.Name.Name] = commentText(d.Doc)
				}
			}
		}
	}

	return ix
}

func (ix *docIndex) addGenDecl(d *ast.GenDecl) {
	for _, spec := range d.Specs {
		ts, ok := spec.(*ast.TypeSpec)
		if !ok {
			continue
		}

		doc := ts.Doc
		if doc == nil && len(d.Specs) == 1 {
			doc = d.Doc
		}
		ix.types[ts.Name.Name] = commentText(doc)

		st, ok := ts.Type.(*ast.StructType)
		if !ok {
			continue
		}

		fields := make(map[string]string)
		for _, f := range st.Fields.List {
			text := commentText(f.Doc)
			if text == "" {
				text = commentText(f.Comment)
			}

			for _, n := range f.Names {
				fields[n.Name] = text
			}
		}
		ix.fields[ts.Name.Name] = fields
	}
}

func receiverName(d *ast.FuncDecl) string {
	if d.Recv == nil || len(d.Recv.List) == 0 {
		return ""
	}

	expr := d.Recv.List[0].Type
	if star, ok := expr.(*ast.StarExpr); ok {
		expr = star.X
	}

	switch e := expr.(type) {
	case *ast.Ident:
		return e.Name
	case *ast.IndexExpr:
		if id, ok := e.X.(*ast.Ident); ok {
			return id.Name
		}
	case *ast.IndexListExpr:
		if id, ok := e.X.(*ast.Ident); ok {
			return id.Name
		}
	}

	return ""
}

// commentText returns the comment group with its "//" markers, so directive
// lines survive intact.
func commentText(cg *ast.CommentGroup) string {
	if cg == nil {
		return ""
	}

	lines := make([]string, 0, len(cg.List))
	for _, c := range cg.List {
		lines = append(lines, c.Text)
	}

	return strings.Join(lines, "\n")
}
