package types

import (
	"phlox/pkg/ast"
)

// The member table. Built once, memoized, append-only afterwards: a later
// synthesis request (static constructor, invoke shim, collaborator field)
// appends to the built table without disturbing the relative order or
// identity of anything previously returned.

// Members returns the full ordered member table, assembling it on first
// call. Repeated calls with no intervening synthesis request return an
// identical, order-stable sequence.
func (t *SourceType) Members() []Member {
	t.mu.Lock()
	if t.membersBuilt {
		m := t.members
		t.mu.Unlock()
		return m
	}
	t.mu.Unlock()

	// Assembly reads every synthesized slot, so synthesis runs to
	// completion first, outside the lock: the context-field climb takes
	// ancestor locks and must not nest under this descriptor's.
	t.finalizeSynthesized()

	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.membersBuilt {
		t.buildMembersLocked()
	}
	return t.members
}

// MembersNamed returns every member whose name matches case-insensitively,
// in member-table order.
func (t *SourceType) MembersNamed(name string) []Member {
	folded := foldName(name)
	var out []Member
	for _, m := range t.Members() {
		if foldName(m.Name()) == folded {
			out = append(out, m)
		}
	}
	return out
}

// buildMembersLocked assembles the member table. The construction order is
// enumeration-deterministic; lookups never depend on it. Callers hold t.mu,
// and finalizeSynthesized has already materialized every slot read here.
func (t *SourceType) buildMembersLocked() {
	debugPrintf("// [Members] building table for '%s'\n", t.QualifiedName())

	// 1. The statics holder, only when non-empty.
	if t.statics != nil {
		t.members = append(t.members, &NestedType{Holder: t.statics, Owner: t})
	}

	// 2. Source methods, declaration order.
	for _, decl := range t.Decl.Members {
		if md, ok := decl.(*ast.MethodDecl); ok {
			t.members = append(t.members, &Method{
				MethodName: md.Name,
				Owner:      t,
				Visibility: md.Visibility,
				IsStatic:   md.IsStatic,
				IsAbstract: md.IsAbstract,
				IsFinal:    md.IsFinal,
				Decl:       md,
			})
		}
	}

	// 3. The construction shim, omitted for types without instances.
	if t.newShim != nil {
		t.members = append(t.members, t.newShim)
	}

	// 4. The instance initializer.
	if t.initMethod != nil {
		t.members = append(t.members, t.initMethod)
	}

	// 5. The static constructor, only if a collaborator already requested it.
	if t.cctor != nil {
		t.members = append(t.members, t.cctor)
	}

	// 6. Source fields and constants. A declaration whose name already
	// exists in the statics holder is shadowed by the holder member, not
	// duplicated; in practice that re-homes every static field and
	// constant onto the holder.
	for _, decl := range t.Decl.Members {
		switch d := decl.(type) {
		case *ast.FieldListDecl:
			for _, fd := range d.Fields {
				if t.statics != nil && t.statics.lookup(foldName(fd.Name)) != nil {
					continue
				}
				t.members = append(t.members, &Field{
					FieldName:      fd.Name,
					Owner:          t,
					Type:           t.reg.Core.Root,
					Visibility:     d.Visibility,
					IsStatic:       d.IsStatic,
					HasInitializer: fd.HasInitializer,
				})
			}
		case *ast.ConstListDecl:
			for _, cd := range d.Consts {
				if t.statics != nil && t.statics.lookup(foldName(cd.Name)) != nil {
					continue
				}
				t.members = append(t.members, &Field{
					FieldName:  cd.Name,
					Owner:      t,
					Type:       t.reg.Core.Root,
					Visibility: ast.Public,
					IsStatic:   true,
					IsConst:    true,
				})
			}
		}
	}

	// 7. Synthesized fields this descriptor actually owns: the context and
	// runtime-fields fields when not inherited from an ancestor, plus any
	// collaborator-requested fields, in creation order.
	for _, f := range t.synthOrder {
		t.appendMemberLocked(f)
	}

	// The invoke shim is unioned in when created; include it now if it was
	// created before the table was built.
	if t.invoke != nil {
		t.appendMemberLocked(t.invoke)
	}

	t.membersBuilt = true
}
