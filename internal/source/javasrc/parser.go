package javasrc

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"

	"reqschema/internal/common"
	"reqschema/internal/source"
)

// Tree-sitter Java node types the parser inspects.
const (
	nodePackage        = "package_declaration"
	nodeImport         = "import_declaration"
	nodeClass          = "class_declaration"
	nodeInterface      = "interface_declaration"
	nodeEnum           = "enum_declaration"
	nodeRecord         = "record_declaration"
	nodeAnnotationType = "annotation_type_declaration"
	nodeModifiers      = "modifiers"
	nodeAnnotation     = "annotation"
	nodeMarker         = "marker_annotation"
	nodeField          = "field_declaration"
	nodeConstant       = "constant_declaration"
	nodeDeclarator     = "variable_declarator"
	nodeMethod         = "method_declaration"
	nodeConstructor    = "constructor_declaration"
	nodeCompactCtor    = "compact_constructor_declaration"
	nodeEnumConstant   = "enum_constant"
	nodeEnumBodyDecls  = "enum_body_declarations"
	nodeFormalParam    = "formal_parameter"
	nodeSpreadParam    = "spread_parameter"
	nodeTypeParam      = "type_parameter"
	nodeTypeList       = "type_list"
	nodeExtendsIfaces  = "extends_interfaces"
	nodeValuePair      = "element_value_pair"
	nodeValueArray     = "element_value_array_initializer"
	nodeArrayInit      = "array_initializer"
	nodeString         = "string_literal"
	nodeBinary         = "binary_expression"
	nodeParenthesized  = "parenthesized_expression"
	nodeFieldAccess    = "field_access"
	nodeIdentifier     = "identifier"
	nodeScopedIdent    = "scoped_identifier"
	nodeVoid           = "void_type"
	nodeBlockComment   = "block_comment"
	nodeLineComment    = "line_comment"
	nodeComment        = "comment"
)

// File is the parsed content of one Java compilation unit.
type File struct {
	Path    string
	Package string
	Imports []string
	// Classes holds every declared type, nested ones included, outer first.
	Classes []*source.Class
	// HasErrors is true when the tree contains syntax error nodes. Classes
	// still holds whatever could be recovered.
	HasErrors bool
}

// ParseFile parses one Java source file. Each call uses its own tree-sitter
// parser, so ParseFile is safe for concurrent use.
func ParseFile(ctx context.Context, src []byte, path string) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("java parse canceled before start: %w", err)
	}

	parser := sitter.NewParser()
	parser.SetLanguage(java.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse failed: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()

	u := &unit{src: src, file: &File{Path: path, HasErrors: root.HasError()}}
	u.program(root)

	for _, c := range u.file.Classes {
		c.Imports = u.file.Imports
	}

	return u.file, nil
}

type unit struct {
	src  []byte
	file *File
	// owner is the in-file name of the class being declared, class the one
	// whose body is being read.
	owner string
	class *source.Class
}

func (u *unit) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}

	return n.Content(u.src)
}

func (u *unit) fieldText(n *sitter.Node, field string) string {
	return u.text(n.ChildByFieldName(field))
}

func (u *unit) program(root *sitter.Node) {
	for i := 0; i < int(root.NamedChildCount()); i++ {
		n := root.NamedChild(i)

		switch n.Type() {
		case nodePackage:
			u.file.Package = u.packageName(n)
		case nodeImport:
			if imp := importPath(u.text(n)); imp != "" {
				u.file.Imports = append(u.file.Imports, imp)
			}
		default:
			if isTypeDecl(n.Type()) {
				u.declare(n, "")
			}
		}
	}
}

func (u *unit) packageName(n *sitter.Node) string {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() == nodeScopedIdent || child.Type() == nodeIdentifier {
			return u.text(child)
		}
	}

	return ""
}

// importPath normalizes "import static a.b.C.d;" to "static a.b.C.d" and
// "import a.b.*;" to "a.b.*".
func importPath(decl string) string {
	decl = strings.TrimSpace(decl)
	decl = strings.TrimPrefix(decl, "import")
	decl = strings.TrimSuffix(strings.TrimSpace(decl), ";")

	parts := strings.Fields(decl)
	if len(parts) == 0 {
		return ""
	}

	if parts[0] == "static" {
		return "static " + strings.Join(parts[1:], "")
	}

	return strings.Join(parts, "")
}

func isTypeDecl(nodeType string) bool {
	switch nodeType {
	case nodeClass, nodeInterface, nodeEnum, nodeRecord, nodeAnnotationType:
		return true
	default:
		return false
	}
}

func (u *unit) declare(n *sitter.Node, enclosing string) {
	name := u.fieldText(n, "name")
	if name == "" {
		return
	}

	nestedIn := name
	if enclosing != "" {
		nestedIn = enclosing + "." + name
	}

	owner, class := u.owner, u.class
	defer func() { u.owner, u.class = owner, class }()
	u.owner = nestedIn

	mods := u.modifiers(n)

	c := &source.Class{
		Package:     u.file.Package,
		Enclosing:   enclosing,
		Name:        name,
		Abstract:    mods.has("abstract"),
		Annotations: mods.annotations,
		Doc:         u.docComment(n),
		File:        u.file.Path,
	}

	switch n.Type() {
	case nodeInterface:
		c.Kind = source.KindInterface
	case nodeEnum:
		c.Kind = source.KindEnum
	case nodeAnnotationType:
		c.Kind = source.KindAnnotation
	}

	c.TypeParams = u.typeParams(n.ChildByFieldName("type_parameters"))

	if sc := n.ChildByFieldName("superclass"); sc != nil && sc.NamedChildCount() > 0 {
		super := source.ParseType(u.text(sc.NamedChild(0)), c.TypeParams...)
		c.Super = &super
	}

	c.Interfaces = u.typeList(n.ChildByFieldName("interfaces"), c.TypeParams)
	if c.IsInterface() {
		c.Interfaces = append(c.Interfaces, u.typeList(childOfType(n, nodeExtendsIfaces), c.TypeParams)...)
	}

	if n.Type() == nodeRecord {
		u.recordComponents(c, n.ChildByFieldName("parameters"))
	}

	u.file.Classes = append(u.file.Classes, c)

	u.class = c
	u.body(c, n.ChildByFieldName("body"), nestedIn)
}

func (u *unit) body(c *source.Class, body *sitter.Node, nestedIn string) {
	if body == nil {
		return
	}

	for i := 0; i < int(body.NamedChildCount()); i++ {
		m := body.NamedChild(i)

		switch m.Type() {
		case nodeField:
			u.fields(c, m, c.IsInterface())
		case nodeConstant:
			u.fields(c, m, true)
		case nodeMethod, nodeConstructor, nodeCompactCtor:
			u.method(c, m)
		case nodeEnumConstant:
			if name := u.fieldText(m, "name"); name != "" {
				c.EnumConstants = append(c.EnumConstants, name)
			}
		case nodeEnumBodyDecls:
			u.body(c, m, nestedIn)
		default:
			if isTypeDecl(m.Type()) {
				u.declare(m, nestedIn)
			}
		}
	}
}

// recordComponents turns the header of a record into final instance fields.
func (u *unit) recordComponents(c *source.Class, params *sitter.Node) {
	for _, p := range u.params(params, c.TypeParams) {
		c.Fields = append(c.Fields, source.Field{
			Name:        p.Name,
			Type:        p.Type,
			Final:       true,
			Annotations: p.Annotations,
		})
	}
}

func (u *unit) fields(c *source.Class, n *sitter.Node, implicitConstant bool) {
	mods := u.modifiers(n)
	typeText := u.fieldText(n, "type")
	doc := u.docComment(n)

	for i := 0; i < int(n.NamedChildCount()); i++ {
		d := n.NamedChild(i)
		if d.Type() != nodeDeclarator {
			continue
		}

		f := source.Field{
			Name:        u.fieldText(d, "name"),
			Type:        source.ParseType(typeText+dims(u.fieldText(d, "dimensions")), c.TypeParams...),
			Static:      implicitConstant || mods.has("static"),
			Final:       implicitConstant || mods.has("final"),
			Annotations: mods.annotations,
			Doc:         doc,
		}

		if f.IsConstant() {
			if s, ok := u.stringConstant(d.ChildByFieldName("value")); ok {
				f.Constant = s
			}
		}

		c.Fields = append(c.Fields, f)
	}
}

func (u *unit) method(c *source.Class, n *sitter.Node) {
	mods := u.modifiers(n)

	m := source.Method{
		Name:        u.fieldText(n, "name"),
		TypeParams:  u.typeParams(n.ChildByFieldName("type_parameters")),
		Annotations: mods.annotations,
		Doc:         u.docComment(n),
		Constructor: n.Type() != nodeMethod,
	}

	scope := append(append([]string{}, c.TypeParams...), m.TypeParams...)

	if !m.Constructor {
		if t := n.ChildByFieldName("type"); t != nil && t.Type() != nodeVoid {
			ret := source.ParseType(u.text(t)+dims(u.fieldText(n, "dimensions")), scope...)
			m.Return = &ret
		}
	}

	m.Params = u.params(n.ChildByFieldName("parameters"), scope)
	c.Methods = append(c.Methods, m)
}

func (u *unit) params(list *sitter.Node, scope []string) []source.Param {
	if list == nil {
		return nil
	}

	var out []source.Param

	for i := 0; i < int(list.NamedChildCount()); i++ {
		p := list.NamedChild(i)

		var name, typeText string

		switch p.Type() {
		case nodeFormalParam:
			name = u.fieldText(p, "name")
			typeText = u.fieldText(p, "type") + dims(u.fieldText(p, "dimensions"))

		case nodeSpreadParam:
			for j := 0; j < int(p.NamedChildCount()); j++ {
				child := p.NamedChild(j)
				switch child.Type() {
				case nodeModifiers:
				case nodeDeclarator:
					name = u.fieldText(child, "name")
				default:
					if typeText == "" {
						typeText = u.text(child) + "..."
					}
				}
			}

		default:
			continue
		}

		out = append(out, source.Param{
			Name:        name,
			Type:        source.ParseType(typeText, scope...),
			Annotations: u.modifiers(p).annotations,
		})
	}

	return out
}

// typeParams returns the declared names of a type_parameters node.
func (u *unit) typeParams(n *sitter.Node) []string {
	if n == nil {
		return nil
	}

	var out []string

	for i := 0; i < int(n.NamedChildCount()); i++ {
		tp := n.NamedChild(i)
		if tp.Type() != nodeTypeParam {
			continue
		}

		for _, tok := range strings.Fields(u.text(tp)) {
			if !strings.HasPrefix(tok, "@") {
				out = append(out, tok)
				break
			}
		}
	}

	return out
}

func (u *unit) typeList(n *sitter.Node, typeParams []string) []source.TypeRef {
	list := childOfType(n, nodeTypeList)
	if list == nil {
		return nil
	}

	out := make([]source.TypeRef, 0, list.NamedChildCount())
	for i := 0; i < int(list.NamedChildCount()); i++ {
		out = append(out, source.ParseType(u.text(list.NamedChild(i)), typeParams...))
	}

	return out
}

type modifierSet struct {
	keywords    map[string]bool
	annotations source.Annotations
}

func (m modifierSet) has(keyword string) bool {
	return m.keywords[keyword]
}

func (u *unit) modifiers(n *sitter.Node) modifierSet {
	set := modifierSet{keywords: make(map[string]bool)}

	mods := childOfType(n, nodeModifiers)
	if mods == nil {
		return set
	}

	for i := 0; i < int(mods.ChildCount()); i++ {
		child := mods.Child(i)

		switch child.Type() {
		case nodeAnnotation, nodeMarker:
			set.annotations = append(set.annotations, u.annotation(child))
		default:
			if !child.IsNamed() {
				set.keywords[child.Type()] = true
			}
		}
	}

	return set
}

// annotation reads one annotation. A single unnamed argument is stored as
// the "value" attribute.
func (u *unit) annotation(n *sitter.Node) source.Annotation {
	args := n.ChildByFieldName("arguments")
	if args == nil || args.NamedChildCount() == 0 {
		return source.NewAnnotation(u.fieldText(n, "name"), nil)
	}

	attrs := make(map[string]source.Value)

	for i := 0; i < int(args.NamedChildCount()); i++ {
		arg := args.NamedChild(i)

		switch arg.Type() {
		case nodeValuePair:
			attrs[u.fieldText(arg, "key")] = u.value(arg.ChildByFieldName("value"))
		case nodeBlockComment, nodeLineComment, nodeComment:
		default:
			attrs["value"] = u.value(arg)
		}
	}

	return source.NewAnnotation(u.fieldText(n, "name"), attrs)
}

func (u *unit) value(n *sitter.Node) source.Value {
	if n == nil {
		return source.Value{Kind: source.ValueExpr}
	}

	switch n.Type() {
	case nodeString:
		return source.StringValue(unquoteJava(u.text(n)))

	case nodeValueArray, nodeArrayInit:
		items := make([]source.Value, 0, n.NamedChildCount())
		for i := 0; i < int(n.NamedChildCount()); i++ {
			item := n.NamedChild(i)
			if isComment(item) {
				continue
			}
			items = append(items, u.value(item))
		}

		return source.ArrayValue(items...)

	case nodeIdentifier:
		return source.ConstantValue(u.qualify(u.text(n)))

	case nodeFieldAccess, nodeScopedIdent:
		return source.ConstantValue(u.text(n))

	case nodeParenthesized:
		if n.NamedChildCount() == 1 {
			return u.value(n.NamedChild(0))
		}

	case nodeBinary:
		if parts, ok := u.operands(n); ok {
			return source.ConcatValue(parts...)
		}
	}

	return source.Value{Kind: source.ValueExpr, Text: u.text(n)}
}

// operands flattens a "+" chain of string literals and constant references.
func (u *unit) operands(n *sitter.Node) ([]source.Value, bool) {
	if n == nil {
		return nil, false
	}

	switch n.Type() {
	case nodeString:
		return []source.Value{source.StringValue(unquoteJava(u.text(n)))}, true

	case nodeIdentifier:
		return []source.Value{source.ConstantValue(u.qualify(u.text(n)))}, true

	case nodeFieldAccess, nodeScopedIdent:
		return []source.Value{source.ConstantValue(u.text(n))}, true

	case nodeParenthesized:
		if n.NamedChildCount() == 1 {
			return u.operands(n.NamedChild(0))
		}

	case nodeBinary:
		if u.fieldText(n, "operator") != "+" {
			return nil, false
		}

		left, ok := u.operands(n.ChildByFieldName("left"))
		if !ok {
			return nil, false
		}

		right, ok := u.operands(n.ChildByFieldName("right"))
		if !ok {
			return nil, false
		}

		return append(left, right...), true
	}

	return nil, false
}

// qualify prefixes a bare constant name with the class it is written in.
func (u *unit) qualify(name string) string {
	if u.owner == "" {
		return name
	}

	return u.owner + "." + name
}

// stringConstant folds a constant initializer made of string literals and
// constants declared earlier in the same class.
func (u *unit) stringConstant(n *sitter.Node) (string, bool) {
	if n == nil {
		return "", false
	}

	switch n.Type() {
	case nodeString:
		return unquoteJava(u.text(n)), true
	case nodeIdentifier:
		return u.localConstant(u.text(n))
	case nodeBinary:
		return u.concat(n)
	case nodeParenthesized:
		if n.NamedChildCount() == 1 {
			return u.stringConstant(n.NamedChild(0))
		}
	}

	return "", false
}

func (u *unit) localConstant(name string) (string, bool) {
	if u.class == nil {
		return "", false
	}

	for _, f := range u.class.Fields {
		if f.Name == name && f.Constant != "" {
			return f.Constant, true
		}
	}

	return "", false
}

func (u *unit) concat(n *sitter.Node) (string, bool) {
	if u.fieldText(n, "operator") != "+" {
		return "", false
	}

	left, ok := u.stringConstant(n.ChildByFieldName("left"))
	if !ok {
		return "", false
	}

	right, ok := u.stringConstant(n.ChildByFieldName("right"))
	if !ok {
		return "", false
	}

	return left + right, true
}

// docComment returns the Javadoc block directly preceding n.
func (u *unit) docComment(n *sitter.Node) string {
	prev := n.PrevSibling()
	if prev == nil || !isComment(prev) {
		return ""
	}

	text := u.text(prev)
	if !strings.HasPrefix(text, "/**") {
		return ""
	}

	return text
}

func isComment(n *sitter.Node) bool {
	switch n.Type() {
	case nodeBlockComment, nodeLineComment, nodeComment:
		return true
	default:
		return false
	}
}

func childOfType(n *sitter.Node, nodeType string) *sitter.Node {
	if n == nil {
		return nil
	}

	for i := 0; i < int(n.ChildCount()); i++ {
		if child := n.Child(i); child.Type() == nodeType {
			return child
		}
	}

	return nil
}

// dims normalizes a C-style dimensions suffix ("[] []") to "[][]".
func dims(s string) string {
	return strings.Join(strings.Fields(s), "")
}

func unquoteJava(lit string) string {
	if strings.HasPrefix(lit, `"""`) && strings.HasSuffix(lit, `"""`) && len(lit) >= 6 {
		return strings.TrimSpace(lit[3 : len(lit)-3])
	}

	if s, err := strconv.Unquote(lit); err == nil {
		return s
	}

	return common.Unquote(lit)
}
