package source

import (
	"reqschema/internal/common"
)

// ClassKind is the declaration kind of a Class.
type ClassKind int

const (
	KindClass ClassKind = iota
	KindInterface
	KindEnum
	KindAnnotation
)

// String returns a human-readable representation of the ClassKind.
func (k ClassKind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindInterface:
		return "interface"
	case KindEnum:
		return "enum"
	case KindAnnotation:
		return "annotation"
	default:
		return common.UnknownStr
	}
}

// Class is one declared class, interface or enum.
type Class struct {
	// Package is the declaring package ("com.shop.api", or a Go import path).
	Package string
	// Enclosing is the dotted chain of enclosing class names for nested classes.
	Enclosing string
	// Name is the simple name.
	Name     string
	Kind     ClassKind
	Abstract bool
	// TypeParams are the declared type parameter names, in order.
	TypeParams  []string
	Super       *TypeRef
	Interfaces  []TypeRef
	Fields      []Field
	Methods     []Method
	Annotations Annotations
	// Doc is the raw doc comment, including delimiters.
	Doc           string
	EnumConstants []string
	// Imports are the single-type and on-demand imports of the declaring file.
	Imports []string
	// File is the path of the declaring source file, if any.
	File string
}

// QualifiedName returns package, enclosing classes and name joined by dots.
func (c *Class) QualifiedName() string {
	name := c.Name
	if c.Enclosing != "" {
		name = c.Enclosing + "." + name
	}

	return common.JoinQualified(c.Package, name)
}

// IsInterface reports whether c is an interface.
func (c *Class) IsInterface() bool {
	return c.Kind == KindInterface
}

// IsEnum reports whether c is an enum.
func (c *Class) IsEnum() bool {
	return c.Kind == KindEnum
}

// IsConcrete reports whether c can be instantiated: not an interface, abstract
// class, enum or annotation type.
func (c *Class) IsConcrete() bool {
	return c.Kind == KindClass && !c.Abstract
}

// Ref returns an unparameterized reference to c.
func (c *Class) Ref() TypeRef {
	return TypeRef{Kind: RefClass, Name: c.Name, Qualified: c.QualifiedName()}
}

// Method returns the first method with the given name.
func (c *Class) Method(name string) (*Method, bool) {
	for i := range c.Methods {
		if c.Methods[i].Name == name {
			return &c.Methods[i], true
		}
	}

	return nil, false
}

// Field is one declared field.
type Field struct {
	Name        string
	Type        TypeRef
	Static      bool
	Final       bool
	Annotations Annotations
	Doc         string
	// Constant holds the string literal initializer of a constant field.
	Constant string
}

// IsConstant reports whether the field is static and final.
func (f *Field) IsConstant() bool {
	return f.Static && f.Final
}

// Method is one declared method or constructor.
type Method struct {
	Name        string
	TypeParams  []string
	Params      []Param
	Return      *TypeRef // nil for void and constructors
	Annotations Annotations
	Doc         string
	Constructor bool
}

// ParamTypes returns the canonical type text of every declared parameter.
func (m *Method) ParamTypes() []string {
	out := make([]string, 0, len(m.Params))
	for _, p := range m.Params {
		out = append(out, p.Type.Canonical())
	}

	return out
}

// Param is one declared method parameter.
type Param struct {
	Name        string
	Type        TypeRef
	Annotations Annotations
}

// Model is the read-only source-model oracle the engine walks.
// Implementations must be safe for concurrent reads once built.
type Model interface {
	// Class returns the class with the given qualified name.
	Class(qualifiedName string) (*Class, bool)
	// Lookup resolves a class reference, best effort.
	Lookup(ref TypeRef) (*Class, bool)
	// Classes returns every class in declaration order.
	Classes() []*Class
	// Implementations returns the concrete classes declared alongside iface
	// (same package) that implement it.
	Implementations(iface *Class) []*Class
	// Constant returns the string value of a constant reference such as
	// "Consts.JSON" or "com.shop.Consts.JSON".
	Constant(ref string) (string, bool)
}
