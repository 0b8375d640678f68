package types

import (
	"fmt"

	"phlox/pkg/ast"
)

// Sentinel names of compiler-synthesized members. None of them is legal as
// a source identifier, so synthesized members can never collide with user
// members.
const (
	ContextFieldName       = "<ctx>"
	RuntimeFieldsFieldName = "<runtimeFields>"
	ConstructionShimName   = "<new>"
	InstanceInitName       = "<init>"
	StaticCtorName         = "<cctor>"
	StaticsHolderName      = "<statics>"

	// InvokeShimName is the target-visible method implementing the callable
	// contract. InvokeMethodName is the source naming convention that
	// triggers its synthesis.
	InvokeShimName   = "Invoke"
	InvokeMethodName = "__invoke"
)

// Member is one entry of a type's member table. Member identity is pointer
// identity, and a member returned once from the table is never replaced.
type Member interface {
	// Name returns the member's external name.
	Name() string
	// Static reports whether the member belongs to the type rather than to instances.
	Static() bool
	// Container returns the type the member is declared on.
	Container() Type

	memberNode()
}

// Field is a field or constant member, either declared in source or
// synthesized by the compiler (context field, runtime-fields field, statics
// holder entries).
type Field struct {
	FieldName      string
	Owner          Type // containing type; the statics holder for re-homed statics
	Type           Type // declared or synthesized field type
	Visibility     ast.Visibility
	IsStatic       bool
	IsConst        bool
	Synthesized    bool
	HasInitializer bool
}

func (f *Field) Name() string    { return f.FieldName }
func (f *Field) Static() bool    { return f.IsStatic }
func (f *Field) Container() Type { return f.Owner }
func (f *Field) memberNode()     {}

func (f *Field) String() string {
	kind := "field"
	if f.IsConst {
		kind = "const"
	}
	return fmt.Sprintf("%s %s.%s", kind, f.Owner.Name(), f.FieldName)
}

// Method is a method member, either declared in source or synthesized (the
// construction shim, instance initializer, static constructor, invoke shim).
type Method struct {
	MethodName  string
	Owner       Type
	Visibility  ast.Visibility
	IsStatic    bool
	IsAbstract  bool
	IsFinal     bool
	Synthesized bool
	Decl        *ast.MethodDecl // nil for synthesized methods
}

func (m *Method) Name() string    { return m.MethodName }
func (m *Method) Static() bool    { return m.IsStatic }
func (m *Method) Container() Type { return m.Owner }
func (m *Method) memberNode()     {}

func (m *Method) String() string {
	return fmt.Sprintf("method %s.%s", m.Owner.Name(), m.MethodName)
}

// NestedType is a member entry that introduces a nested type, used for the
// statics holder.
type NestedType struct {
	Holder *StaticsHolder
	Owner  Type
}

func (n *NestedType) Name() string    { return n.Holder.Name() }
func (n *NestedType) Static() bool    { return true }
func (n *NestedType) Container() Type { return n.Owner }
func (n *NestedType) memberNode()     {}

// StaticsHolder is the nested type grouping a class's static fields and
// constants. Statics are bound to a particular runtime-context instance
// rather than shared process-wide, so they live on a holder the context can
// instantiate per execution, not on the class itself.
type StaticsHolder struct {
	DeclaringType *SourceType
	fields        []*Field // holder-owned, declaration order
}

func (h *StaticsHolder) String() string { return h.QualifiedName() }
func (h *StaticsHolder) Name() string   { return StaticsHolderName }
func (h *StaticsHolder) QualifiedName() string {
	return h.DeclaringType.QualifiedName() + "." + StaticsHolderName
}
func (h *StaticsHolder) typeNode() {}

// Fields returns the holder's members in declaration order.
func (h *StaticsHolder) Fields() []*Field { return h.fields }

// IsEmpty reports whether the holder has no members. Empty holders are
// never surfaced in the declaring type's member table.
func (h *StaticsHolder) IsEmpty() bool { return len(h.fields) == 0 }

// lookup finds a holder field by folded name.
func (h *StaticsHolder) lookup(folded string) *Field {
	for _, f := range h.fields {
		if foldName(f.FieldName) == folded {
			return f
		}
	}
	return nil
}
