package types

import (
	"fmt"
	"sync"

	"phlox/pkg/ast"
	"phlox/pkg/source"
)

// SourceType is the type descriptor produced by lowering one class or
// interface declaration. It is created once when its declaration is loaded
// into the registry, queried repeatedly and possibly out of order by the
// binding and emission passes, and lives for the whole compilation.
//
// Every lazily computed attribute materializes exactly once under the
// descriptor's mutex and is never recomputed or replaced; the member table
// only grows. Object identity of already-published members and fields is
// load-bearing: derived types share their ancestor's synthesized fields by
// pointer, and collaborators compare members by identity.
type SourceType struct {
	Decl *ast.TypeDeclaration

	reg     *Registry
	extName string // disambiguated external local name
	ordinal int    // conditional-declaration ordinal, -1 for unconditional

	mu sync.Mutex

	base     Type
	baseDone bool

	ifaces     []Type
	ifacesDone bool

	members      []Member
	membersBuilt bool

	// Synthesized-member slots. The done flags distinguish "not yet
	// computed" from a materialized nil (static-only types answer nil from
	// most accessors).
	synthFields map[string]*Field // folded name -> owned synthesized field
	synthOrder  []*Field          // owned synthesized fields, creation order
	ctxField    *Field
	ctxDone     bool
	rtField     *Field
	rtDone      bool
	newShim     *Method
	newDone     bool
	initMethod  *Method
	initDone    bool
	statics     *StaticsHolder
	staticsDone bool
	cctor       *Method // nil until requested, exactly one afterwards
	invoke      *Method
	invokeDone  bool
}

func newSourceType(reg *Registry, decl *ast.TypeDeclaration, extName string, ordinal int) *SourceType {
	return &SourceType{
		Decl:    decl,
		reg:     reg,
		extName: extName,
		ordinal: ordinal,
	}
}

func (t *SourceType) String() string {
	if t.Decl.IsInterface {
		return fmt.Sprintf("interface %s", t.QualifiedName())
	}
	return fmt.Sprintf("class %s", t.QualifiedName())
}

// Name returns the external local name: the declared name, suffixed with
// "@<ordinal>" for conditional declarations.
func (t *SourceType) Name() string { return t.extName }

// NamespaceName returns the namespace part of the declared name. Purely
// syntactic; no resolution is involved.
func (t *SourceType) NamespaceName() string { return t.Decl.NamespaceName() }

// QualifiedName returns the globally unique external name.
func (t *SourceType) QualifiedName() string {
	if ns := t.Decl.NamespaceName(); ns != "" {
		return ns + NameSep + t.extName
	}
	return t.extName
}

// Unit returns the compilation unit that declared this type.
func (t *SourceType) Unit() *source.Unit { return t.Decl.Unit }

// Ordinal returns the conditional-declaration ordinal, or -1 for an
// unconditional declaration.
func (t *SourceType) Ordinal() int { return t.ordinal }

func (t *SourceType) typeNode() {}

// hasInstanceState reports whether the type can carry per-instance state.
// Static-only types and interfaces cannot, and answer nil from every
// instance-related synthesized accessor.
func (t *SourceType) hasInstanceState() bool {
	return !t.Decl.IsStatic && !t.Decl.IsInterface
}

// BaseType resolves the base class. No declared base means the universal
// root; an unresolved name yields a Missing placeholder rather than a
// failure. The result is cached on first call.
func (t *SourceType) BaseType() Type {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.baseDone {
		if t.Decl.Base == nil {
			t.base = t.reg.Core.Root
		} else {
			t.base = t.reg.resolveRef(t.Decl.Base)
		}
		t.baseDone = true
		debugPrintf("// [SourceType] base of '%s' is '%s'\n", t.QualifiedName(), t.base.QualifiedName())
	}
	return t.base
}

// Interfaces returns the implemented interface set: the declared
// references, resolved and deduplicated by identity, plus the callable
// contract when the invoke shim exists. Enumeration order is insignificant.
func (t *SourceType) Interfaces() []Type {
	// Shim presence feeds the interface set, so synthesized-member
	// finalization is sequenced strictly before the set is computed.
	inv := t.InvokeShim()

	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.ifacesDone {
		seen := make(map[Type]bool)
		var out []Type
		for _, ref := range t.Decl.Interfaces {
			resolved := t.reg.resolveRef(ref)
			if !seen[resolved] {
				seen[resolved] = true
				out = append(out, resolved)
			}
		}
		if inv != nil && !seen[t.reg.Core.Callable] {
			out = append(out, t.reg.Core.Callable)
		}
		t.ifaces = out
		t.ifacesDone = true
	}
	return t.ifaces
}

// appendMemberLocked grows the member table by one entry, unless the exact
// member is already present. Callers hold t.mu.
func (t *SourceType) appendMemberLocked(m Member) {
	for _, existing := range t.members {
		if existing == m {
			return
		}
	}
	t.members = append(t.members, m)
}
