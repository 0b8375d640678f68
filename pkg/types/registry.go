package types

import (
	"fmt"
	"sync"

	"phlox/pkg/ast"
	"phlox/pkg/errors"
)

// Registry is the whole-program symbol table. It owns one SourceType per
// loaded declaration and resolves qualified names for base and interface
// references. The table is fully populated at construction and immutable
// afterwards; only the diagnostic list grows.
type Registry struct {
	Core CoreTypes

	byName map[string]*SourceType // folded disambiguated qualified name
	plain  map[string]*SourceType // folded source name, first declaration wins
	all    []*SourceType          // whole-program declaration order

	diagMu sync.Mutex
	diags  []errors.PhloxError
}

// NewRegistry loads every declaration of the program, in whole-program
// declaration order, and runs the name-disambiguation pre-pass. Computing
// disambiguated names here keeps the per-type accessors free of hidden
// whole-program scans.
func NewRegistry(core CoreTypes, decls []*ast.TypeDeclaration) *Registry {
	r := &Registry{
		Core:   core,
		byName: make(map[string]*SourceType, len(decls)),
		plain:  make(map[string]*SourceType, len(decls)),
	}

	// Pre-pass: ordinal of each conditional declaration among earlier
	// conditional declarations of the same folded name and namespace. The
	// first conditional occurrence already receives ordinal 0.
	condSeen := make(map[string]int)

	for _, decl := range decls {
		ordinal := -1
		extName := decl.LocalName()
		if decl.Conditional {
			key := foldName(decl.NamespaceName()) + NameSep + foldName(decl.LocalName())
			ordinal = condSeen[key]
			condSeen[key] = ordinal + 1
			extName = fmt.Sprintf("%s@%d", decl.LocalName(), ordinal)
		}

		t := newSourceType(r, decl, extName, ordinal)

		key := foldName(t.QualifiedName())
		if prev, exists := r.byName[key]; exists {
			// Two unconditional declarations of one name. The first one
			// stays authoritative; later passes surface the diagnostic.
			r.addDiag(&errors.BindError{
				Position: decl.Pos,
				Msg: fmt.Sprintf("type '%s' already declared in %s",
					decl.Name, prev.Decl.Unit.DisplayPath()),
			})
			debugPrintf("// [Registry] duplicate declaration of '%s' ignored\n", decl.Name)
			continue
		}
		r.byName[key] = t
		r.all = append(r.all, t)

		// The plain source name of a conditionally-declared class still
		// resolves, to its first declaration.
		plainKey := foldName(decl.Name)
		if _, exists := r.plain[plainKey]; !exists {
			r.plain[plainKey] = t
		}

		debugPrintf("// [Registry] declared '%s' as '%s'\n", decl.Name, t.QualifiedName())
	}

	return r
}

// NameSep is the separator used when qualifying external names.
const NameSep = ast.NameSeparator

// Resolve looks up a type by qualified name, case-insensitively. It accepts
// both disambiguated external names and plain source names; a plain name
// shared by several conditional declarations resolves to the first one.
// Returns nil when the name is unknown.
func (r *Registry) Resolve(qualifiedName string) Type {
	key := foldName(qualifiedName)
	if t, ok := r.byName[key]; ok {
		return t
	}
	if t, ok := r.plain[key]; ok {
		return t
	}
	return nil
}

// Types returns every loaded descriptor in whole-program declaration order.
func (r *Registry) Types() []*SourceType { return r.all }

// Diagnostics returns the bind diagnostics recorded so far. The lowering
// core never fails on a missing reference; it records a BindError here and
// an external collaborator decides how to surface it.
func (r *Registry) Diagnostics() []errors.PhloxError {
	r.diagMu.Lock()
	defer r.diagMu.Unlock()
	return append([]errors.PhloxError(nil), r.diags...)
}

func (r *Registry) addDiag(err errors.PhloxError) {
	r.diagMu.Lock()
	r.diags = append(r.diags, err)
	r.diagMu.Unlock()
}

// resolveRef resolves one base or interface reference. A name that does not
// resolve yields a Missing placeholder, never a failure. A reference with
// type arguments is a generic instantiation, which this core does not
// support: it faults the pass rather than producing a wrong symbol.
func (r *Registry) resolveRef(ref *ast.TypeRef) Type {
	if len(ref.TypeArgs) != 0 {
		panic(&errors.InternalError{
			Position: ref.Pos,
			Msg:      fmt.Sprintf("generic type reference '%s' with %d type argument(s) is not supported", ref.Name, len(ref.TypeArgs)),
		})
	}
	if t := r.Resolve(ref.Name); t != nil {
		return t
	}
	r.addDiag(&errors.BindError{
		Position: ref.Pos,
		Msg:      fmt.Sprintf("unresolved type '%s'", ref.Name),
	})
	debugPrintf("// [Registry] unresolved reference '%s'\n", ref.Name)
	return &MissingType{Ref: ref.Name}
}
