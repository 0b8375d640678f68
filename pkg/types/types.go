package types

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"phlox/pkg/ast"
)

const typesDebug = false

func debugPrintf(format string, args ...interface{}) {
	if typesDebug {
		fmt.Printf(format, args...)
	}
}

// foldName normalizes an identifier for comparison. Source identifiers are
// case-insensitive, so every name-keyed map in this package is keyed by the
// Unicode case-folded form.
func foldName(name string) string {
	return cases.Fold().String(name)
}

// Type is the interface implemented by all type representations the
// lowering core produces or consumes.
type Type interface {
	// String returns a string representation of the type, suitable for debugging or printing.
	String() string
	// Name returns the unqualified external name of the type.
	Name() string
	// QualifiedName returns the full external name of the type.
	QualifiedName() string

	// typeNode() is a marker method to ensure only types defined in this package
	// can be assigned to the Type interface. This keeps the type system closed.
	typeNode()
}

// --- External (runtime foundation) Types ---

// ExternalType represents a type supplied by the target runtime rather than
// compiled from source: the universal root, the ambient context type, the
// dynamic property container, and the callable contract. External types are
// singletons; pointer identity is their identity.
type ExternalType struct {
	FullName string // dot-qualified runtime name
}

func (e *ExternalType) String() string { return e.FullName }
func (e *ExternalType) Name() string {
	if i := strings.LastIndex(e.FullName, "."); i >= 0 {
		return e.FullName[i+1:]
	}
	return e.FullName
}
func (e *ExternalType) QualifiedName() string { return e.FullName }
func (e *ExternalType) typeNode()             {}

// --- Missing Placeholder ---

// MissingType is the placeholder produced when a base or interface
// reference does not resolve in the whole-program table. Resolution never
// fails the declaring type: the reference becomes a MissingType and a
// BindError is recorded for a later pass to surface.
type MissingType struct {
	Ref string // the qualified name that failed to resolve
}

func (m *MissingType) String() string { return fmt.Sprintf("missing(%s)", m.Ref) }
func (m *MissingType) Name() string {
	_, local := ast.SplitQualified(m.Ref)
	return local
}
func (m *MissingType) QualifiedName() string { return m.Ref }
func (m *MissingType) typeNode()             {}

// IsMissing reports whether t is a missing-type placeholder.
func IsMissing(t Type) bool {
	_, ok := t.(*MissingType)
	return ok
}

// --- Core (injected) Types ---

// CoreTypes bundles the well-known runtime foundation types the lowering
// core needs. They are supplied by the embedding driver; the core never
// fabricates them past DefaultCoreTypes.
type CoreTypes struct {
	Root     *ExternalType // universal root of the class hierarchy
	Context  *ExternalType // ambient execution context
	Dynamic  *ExternalType // associative container backing dynamic properties
	Callable *ExternalType // contract interface for function-like invocation
}

// DefaultCoreTypes returns the conventional runtime foundation set.
func DefaultCoreTypes() CoreTypes {
	return CoreTypes{
		Root:     &ExternalType{FullName: "runtime.Object"},
		Context:  &ExternalType{FullName: "runtime.Context"},
		Dynamic:  &ExternalType{FullName: "runtime.DynamicTable"},
		Callable: &ExternalType{FullName: "runtime.Callable"},
	}
}
