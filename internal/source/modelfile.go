package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Tags that mark non-literal attribute values in model files.
const (
	tagConst  = "!const"
	tagExpr   = "!expr"
	tagConcat = "!concat"
)

// ModelFile is the YAML description of the classes of one package.
// A file may hold several documents separated by "---".
type ModelFile struct {
	Package string     `yaml:"package"`
	Imports []string   `yaml:"imports,omitempty"`
	Classes []ClassDoc `yaml:"classes"`
}

// ClassDoc describes one class in a model file.
type ClassDoc struct {
	Name          string          `yaml:"name"`
	Kind          string          `yaml:"kind,omitempty"`
	Abstract      bool            `yaml:"abstract,omitempty"`
	TypeParams    []string        `yaml:"typeParams,omitempty"`
	Extends       string          `yaml:"extends,omitempty"`
	Implements    []string        `yaml:"implements,omitempty"`
	Doc           string          `yaml:"doc,omitempty"`
	Annotations   []AnnotationDoc `yaml:"annotations,omitempty"`
	Fields        []FieldDoc      `yaml:"fields,omitempty"`
	Methods       []MethodDoc     `yaml:"methods,omitempty"`
	EnumConstants []string        `yaml:"enumConstants,omitempty"`
	Nested        []ClassDoc      `yaml:"nested,omitempty"`
}

// FieldDoc describes one field in a model file.
type FieldDoc struct {
	Name        string          `yaml:"name"`
	Type        string          `yaml:"type"`
	Static      bool            `yaml:"static,omitempty"`
	Final       bool            `yaml:"final,omitempty"`
	Doc         string          `yaml:"doc,omitempty"`
	Constant    string          `yaml:"constant,omitempty"`
	Annotations []AnnotationDoc `yaml:"annotations,omitempty"`
}

// MethodDoc describes one method in a model file.
type MethodDoc struct {
	Name        string          `yaml:"name"`
	TypeParams  []string        `yaml:"typeParams,omitempty"`
	Returns     string          `yaml:"returns,omitempty"`
	Params      []ParamDoc      `yaml:"params,omitempty"`
	Doc         string          `yaml:"doc,omitempty"`
	Constructor bool            `yaml:"constructor,omitempty"`
	Annotations []AnnotationDoc `yaml:"annotations,omitempty"`
}

// ParamDoc describes one method parameter in a model file.
type ParamDoc struct {
	Name        string          `yaml:"name"`
	Type        string          `yaml:"type"`
	Annotations []AnnotationDoc `yaml:"annotations,omitempty"`
}

// AnnotationDoc describes one annotation. It accepts either a bare name
// ("RestController") or a mapping of "name" plus attributes. Attributes whose
// key collides with "name" or "attrs" go under an explicit "attrs" mapping.
type AnnotationDoc struct {
	Name  string
	Attrs map[string]Value
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (a *AnnotationDoc) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		a.Name = node.Value
		return nil

	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, val := node.Content[i], node.Content[i+1]
			switch key.Value {
			case "name":
				a.Name = val.Value
				continue

			case "attrs":
				var attrs map[string]Value
				if err := val.Decode(&attrs); err != nil {
					return fmt.Errorf("annotation %s attrs: %w", a.Name, err)
				}

				if a.Attrs == nil {
					a.Attrs = make(map[string]Value, len(attrs))
				}
				for k, v := range attrs {
					a.Attrs[k] = v
				}

				continue
			}

			var v Value
			if err := val.Decode(&v); err != nil {
				return fmt.Errorf("annotation %s attribute %s: %w", a.Name, key.Value, err)
			}

			if a.Attrs == nil {
				a.Attrs = make(map[string]Value)
			}
			a.Attrs[key.Value] = v
		}

		return nil

	default:
		return fmt.Errorf("expected annotation name or mapping, got %v", node.Kind)
	}
}

// MarshalYAML implements yaml.Marshaler.
func (a AnnotationDoc) MarshalYAML() (any, error) {
	if len(a.Attrs) == 0 {
		return a.Name, nil
	}

	if _, ok := a.Attrs["name"]; ok {
		return map[string]any{"name": a.Name, "attrs": a.Attrs}, nil
	}

	if _, ok := a.Attrs["attrs"]; ok {
		return map[string]any{"name": a.Name, "attrs": a.Attrs}, nil
	}

	out := map[string]any{"name": a.Name}
	for k, v := range a.Attrs {
		out[k] = v
	}

	return out, nil
}

// UnmarshalYAML implements yaml.Unmarshaler. Plain scalars are string
// literals, "!const X.Y" is a constant reference, "!expr ..." raw text and
// sequences are arrays, or concatenations when tagged "!concat".
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		switch node.Tag {
		case tagConst:
			*v = ConstantValue(node.Value)
		case tagExpr:
			*v = Value{Kind: ValueExpr, Text: node.Value}
		default:
			*v = StringValue(node.Value)
		}

		return nil

	case yaml.SequenceNode:
		items := make([]Value, 0, len(node.Content))
		for _, item := range node.Content {
			var iv Value
			if err := item.Decode(&iv); err != nil {
				return err
			}
			items = append(items, iv)
		}
		*v = ArrayValue(items...)
		if node.Tag == tagConcat {
			v.Kind = ValueConcat
		}

		return nil

	default:
		return fmt.Errorf("expected scalar or sequence attribute value, got %v", node.Kind)
	}
}

// MarshalYAML implements yaml.Marshaler.
func (v Value) MarshalYAML() (any, error) {
	switch v.Kind {
	case ValueConstant:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tagConst, Value: v.Text}, nil
	case ValueExpr:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tagExpr, Value: v.Text}, nil
	case ValueArray:
		return v.Items, nil
	case ValueConcat:
		node := &yaml.Node{}
		if err := node.Encode(v.Items); err != nil {
			return nil, err
		}
		node.Tag = tagConcat

		return node, nil
	default:
		return v.Text, nil
	}
}

// LoadModelFile loads and parses a YAML model file from the given path.
func LoadModelFile(path string) ([]ModelFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file %s: %w", path, err)
	}

	files, err := ParseModel(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return files, nil
}

// ParseModel parses every YAML document in data.
func ParseModel(data []byte) ([]ModelFile, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var files []ModelFile
	for {
		var mf ModelFile

		err := dec.Decode(&mf)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse model YAML: %w", err)
		}

		files = append(files, mf)
	}

	return files, nil
}

// Marshal serializes a ModelFile to YAML.
func (mf *ModelFile) Marshal() ([]byte, error) {
	return yaml.Marshal(mf)
}

// BuildIndex converts model files into a linked Index.
func BuildIndex(files ...ModelFile) *Index {
	ix := NewIndex()
	for i := range files {
		ix.Add(files[i].ToClasses()...)
	}
	ix.Link()

	return ix
}

// LoadIndex loads the model files at paths into a linked Index.
func LoadIndex(paths ...string) (*Index, error) {
	var all []ModelFile
	for _, p := range paths {
		files, err := LoadModelFile(p)
		if err != nil {
			return nil, err
		}
		all = append(all, files...)
	}

	return BuildIndex(all...), nil
}

// ToClasses converts the file's class docs, nested ones included.
func (mf *ModelFile) ToClasses() []*Class {
	var out []*Class
	for i := range mf.Classes {
		out = append(out, mf.Classes[i].toClasses(mf.Package, "", mf.Imports)...)
	}

	return out
}

func (cd *ClassDoc) toClasses(pkg, enclosing string, imports []string) []*Class {
	c := &Class{
		Package:       pkg,
		Enclosing:     enclosing,
		Name:          cd.Name,
		Kind:          parseClassKind(cd.Kind),
		Abstract:      cd.Abstract,
		TypeParams:    cd.TypeParams,
		Doc:           cd.Doc,
		Annotations:   toAnnotations(cd.Annotations),
		EnumConstants: cd.EnumConstants,
		Imports:       imports,
	}

	if cd.Extends != "" {
		super := ParseType(cd.Extends, cd.TypeParams...)
		c.Super = &super
	}

	for _, impl := range cd.Implements {
		c.Interfaces = append(c.Interfaces, ParseType(impl, cd.TypeParams...))
	}

	for _, fd := range cd.Fields {
		c.Fields = append(c.Fields, Field{
			Name:        fd.Name,
			Type:        ParseType(fd.Type, cd.TypeParams...),
			Static:      fd.Static,
			Final:       fd.Final,
			Doc:         fd.Doc,
			Constant:    fd.Constant,
			Annotations: toAnnotations(fd.Annotations),
		})
	}

	for _, md := range cd.Methods {
		scope := append(append([]string{}, cd.TypeParams...), md.TypeParams...)

		m := Method{
			Name:        md.Name,
			TypeParams:  md.TypeParams,
			Doc:         md.Doc,
			Constructor: md.Constructor,
			Annotations: toAnnotations(md.Annotations),
		}

		if md.Returns != "" && md.Returns != "void" {
			ret := ParseType(md.Returns, scope...)
			m.Return = &ret
		}

		for _, pd := range md.Params {
			m.Params = append(m.Params, Param{
				Name:        pd.Name,
				Type:        ParseType(pd.Type, scope...),
				Annotations: toAnnotations(pd.Annotations),
			})
		}

		c.Methods = append(c.Methods, m)
	}

	out := []*Class{c}

	nestedIn := cd.Name
	if enclosing != "" {
		nestedIn = enclosing + "." + cd.Name
	}

	for i := range cd.Nested {
		out = append(out, cd.Nested[i].toClasses(pkg, nestedIn, imports)...)
	}

	return out
}

func parseClassKind(s string) ClassKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "interface":
		return KindInterface
	case "enum":
		return KindEnum
	case "annotation":
		return KindAnnotation
	default:
		return KindClass
	}
}

func toAnnotations(docs []AnnotationDoc) Annotations {
	if len(docs) == 0 {
		return nil
	}

	out := make(Annotations, 0, len(docs))
	for _, d := range docs {
		out = append(out, NewAnnotation(d.Name, d.Attrs))
	}

	return out
}
