package ast

import (
	"strings"

	"phlox/pkg/errors"
	"phlox/pkg/source"
)

// The declaration tree consumed by the lowering core. The parser that
// produces it is an external collaborator; nothing in this package is
// mutated after parse.

// NameSeparator separates namespace segments in qualified source names.
const NameSeparator = `\`

// SplitQualified splits a qualified name into its namespace part and its
// local (unqualified) part. Names without a separator have an empty
// namespace part.
func SplitQualified(name string) (ns, local string) {
	if i := strings.LastIndex(name, NameSeparator); i >= 0 {
		return name[:i], name[i+1:]
	}
	return "", name
}

// Visibility is the declared accessibility of a member.
type Visibility int

const (
	Public Visibility = iota
	Protected
	Private
	// Internal is never written in source; it marks compiler-synthesized
	// members visible only to generated code.
	Internal
)

func (v Visibility) String() string {
	switch v {
	case Public:
		return "public"
	case Protected:
		return "protected"
	case Private:
		return "private"
	case Internal:
		return "internal"
	}
	return "public"
}

// TypeRef is a by-name reference to another type, as written in an
// extends/implements clause or a member signature. A nonzero number of
// type arguments is not supported by the lowering core and faults there.
type TypeRef struct {
	Name     string     // qualified source name
	TypeArgs []*TypeRef // generic arguments, unsupported when non-empty
	Pos      errors.Position
}

// TypeDeclaration is one parsed class or interface declaration.
// Immutable post-parse; owned by its containing compilation unit.
type TypeDeclaration struct {
	Name string       // qualified source name
	Unit *source.Unit // containing compilation unit
	Pos  errors.Position
	Doc  string // doc comment text, if any

	IsAbstract  bool
	IsFinal     bool
	IsStatic    bool // static-only type: no instances, no instance members
	IsInterface bool

	// Conditional marks a declaration nested under code that may or may not
	// execute, which permits several same-named declarations in one program.
	Conditional bool

	Base       *TypeRef   // nil means the universal root type
	Interfaces []*TypeRef // implements clause, declaration order

	Members []MemberDecl // declaration order
}

// NamespaceName returns the namespace part of the declared name.
func (d *TypeDeclaration) NamespaceName() string {
	ns, _ := SplitQualified(d.Name)
	return ns
}

// LocalName returns the unqualified part of the declared name.
func (d *TypeDeclaration) LocalName() string {
	_, local := SplitQualified(d.Name)
	return local
}

// MemberDecl is one member declaration inside a type body: a method, a
// field list, or a constant list.
type MemberDecl interface {
	DeclPos() errors.Position
	memberDecl()
}

// Param is one formal parameter of a method.
type Param struct {
	Name       string
	ByRef      bool
	HasDefault bool
	Type       *TypeRef // optional type hint, may be nil
}

// MethodDecl declares one method.
type MethodDecl struct {
	Name       string
	Visibility Visibility
	IsStatic   bool
	IsAbstract bool
	IsFinal    bool
	ByRefRet   bool // returns by reference
	Params     []*Param
	HasBody    bool // false for abstract and interface methods
	Pos        errors.Position
}

func (d *MethodDecl) DeclPos() errors.Position { return d.Pos }
func (d *MethodDecl) memberDecl()              {}

// FieldDecl is a single field inside a FieldListDecl.
type FieldDecl struct {
	Name           string
	HasInitializer bool
	Pos            errors.Position
}

// FieldListDecl declares one or more fields sharing a visibility and
// static-ness, the way the source syntax groups them.
type FieldListDecl struct {
	Visibility Visibility
	IsStatic   bool
	Fields     []*FieldDecl
	Pos        errors.Position
}

func (d *FieldListDecl) DeclPos() errors.Position { return d.Pos }
func (d *FieldListDecl) memberDecl()              {}

// ConstDecl is a single constant inside a ConstListDecl.
type ConstDecl struct {
	Name string
	Pos  errors.Position
}

// ConstListDecl declares one or more class constants. Constants are always
// public and bound per execution context like static fields.
type ConstListDecl struct {
	Consts []*ConstDecl
	Pos    errors.Position
}

func (d *ConstListDecl) DeclPos() errors.Position { return d.Pos }
func (d *ConstListDecl) memberDecl()              {}
