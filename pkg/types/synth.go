package types

import (
	"fmt"

	"phlox/pkg/ast"
	"phlox/pkg/errors"
)

// Synthesized members: compiler-generated members absent from source that
// carry the runtime semantics of a class — ambient context access, dynamic
// properties, construction, per-context statics, callable invocation.

// finalizeSynthesized materializes every synthesized member whose presence
// is determined by the declaration alone. It runs as a distinct phase
// strictly before the member table is assembled and before the interface
// set is computed, so neither can observe a half-synthesized type. Safe to
// call any number of times; each slot initializes exactly once.
func (t *SourceType) finalizeSynthesized() {
	t.StaticsHolder()
	t.ContextField()
	t.RuntimeFieldsField()
	t.ConstructionShim()
	t.InstanceInitializer()
	t.InvokeShim()
}

// fieldOwner climbs the base chain to the type that owns the per-instance
// synthesized fields: the topmost source ancestor able to carry instance
// state. Every type below it shares the owner's field objects rather than
// declaring its own. The seen set makes a malformed inheritance cycle
// terminate instead of recursing forever.
func (t *SourceType) fieldOwner() *SourceType {
	owner := t
	seen := map[*SourceType]bool{t: true}
	for {
		base, ok := owner.BaseType().(*SourceType)
		if !ok || !base.hasInstanceState() {
			return owner
		}
		if seen[base] {
			// Inheritance cycle. There is no topmost type to defer to, so
			// every participant keeps its own field; were the starting
			// type not the owner, two cycle members would each wait on the
			// other's accessor.
			return t
		}
		seen[base] = true
		owner = base
	}
}

// ContextField returns the per-instance reference to the ambient execution
// context, shared with the nearest ancestor that owns one, or freshly
// created when this type is the owner. Nil for static-only types and
// interfaces.
func (t *SourceType) ContextField() *Field {
	if !t.hasInstanceState() {
		return nil
	}
	t.mu.Lock()
	if t.ctxDone {
		f := t.ctxField
		t.mu.Unlock()
		return f
	}
	t.mu.Unlock()

	// Computed outside t.mu: the owner climb takes other descriptors'
	// locks, never this one's.
	var f *Field
	if owner := t.fieldOwner(); owner == t {
		f = t.EnsureSynthesizedField(ContextFieldName, t.reg.Core.Context, ast.Protected, false)
	} else {
		f = owner.ContextField()
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.ctxDone {
		t.ctxField = f
		t.ctxDone = true
	}
	return t.ctxField
}

// RuntimeFieldsField returns the per-instance associative store for
// properties unknown at compile time, with the same inherit-or-create
// policy as the context field. Nil for static-only types and interfaces.
func (t *SourceType) RuntimeFieldsField() *Field {
	if !t.hasInstanceState() {
		return nil
	}
	t.mu.Lock()
	if t.rtDone {
		f := t.rtField
		t.mu.Unlock()
		return f
	}
	t.mu.Unlock()

	var f *Field
	if owner := t.fieldOwner(); owner == t {
		f = t.EnsureSynthesizedField(RuntimeFieldsFieldName, t.reg.Core.Dynamic, ast.Internal, false)
	} else {
		f = owner.RuntimeFieldsField()
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.rtDone {
		t.rtField = f
		t.rtDone = true
	}
	return t.rtField
}

// EnsureSynthesizedField returns the synthesized field with the given name
// on this type, creating it on first request. Repeated requests with the
// same shape return the same field object. A request that disagrees with
// the already-materialized field on type, visibility, or static-ness is a
// compiler bug and faults, rather than silently minting a second field
// under one name.
func (t *SourceType) EnsureSynthesizedField(name string, typ Type, vis ast.Visibility, static bool) *Field {
	t.mu.Lock()
	defer t.mu.Unlock()

	key := foldName(name)
	if t.synthFields == nil {
		t.synthFields = make(map[string]*Field)
	}
	if f, ok := t.synthFields[key]; ok {
		if f.Type != typ || f.Visibility != vis || f.IsStatic != static {
			panic(&errors.InternalError{
				Position: t.Decl.Pos,
				Msg: fmt.Sprintf("conflicting requests for synthesized field '%s' on '%s' (%s %v static=%v vs %s %v static=%v)",
					name, t.QualifiedName(), f.Type, f.Visibility, f.IsStatic, typ, vis, static),
			})
		}
		return f
	}

	f := &Field{
		FieldName:   name,
		Owner:       t,
		Type:        typ,
		Visibility:  vis,
		IsStatic:    static,
		Synthesized: true,
	}
	t.synthFields[key] = f
	t.synthOrder = append(t.synthOrder, f)
	if t.membersBuilt {
		t.appendMemberLocked(f)
	}
	debugPrintf("// [Synth] created field '%s' on '%s'\n", name, t.QualifiedName())
	return f
}

// ConstructionShim returns the synthesized method that allocates an
// instance and runs its field initializers without invoking any user
// constructor body. Allocation paths that bypass the user constructor call
// it directly; the user-visible constructor calls it first and then runs
// user logic. Nil for static-only types and interfaces.
func (t *SourceType) ConstructionShim() *Method {
	if !t.hasInstanceState() {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.newDone {
		t.newShim = &Method{
			MethodName:  ConstructionShimName,
			Owner:       t,
			Visibility:  ast.Internal,
			IsStatic:    true,
			Synthesized: true,
		}
		t.newDone = true
	}
	return t.newShim
}

// InstanceInitializer returns the synthesized instance method holding the
// field-initializer logic run by the construction shim. Nil for
// static-only types and interfaces.
func (t *SourceType) InstanceInitializer() *Method {
	if !t.hasInstanceState() {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.initDone {
		t.initMethod = &Method{
			MethodName:  InstanceInitName,
			Owner:       t,
			Visibility:  ast.Internal,
			Synthesized: true,
		}
		t.initDone = true
	}
	return t.initMethod
}

// StaticsHolder returns the nested type grouping this type's static fields
// and constants, which are bound to a particular runtime-context instance
// rather than shared process-wide. Returns nil when the type declares no
// statics; an empty holder is never created or surfaced.
func (t *SourceType) StaticsHolder() *StaticsHolder {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.staticsHolderLocked()
}

func (t *SourceType) staticsHolderLocked() *StaticsHolder {
	if !t.staticsDone {
		h := &StaticsHolder{DeclaringType: t}
		for _, decl := range t.Decl.Members {
			switch d := decl.(type) {
			case *ast.FieldListDecl:
				if !d.IsStatic {
					continue
				}
				for _, fd := range d.Fields {
					h.fields = append(h.fields, &Field{
						FieldName:      fd.Name,
						Owner:          h,
						Type:           t.reg.Core.Root,
						Visibility:     d.Visibility,
						IsStatic:       true,
						HasInitializer: fd.HasInitializer,
					})
				}
			case *ast.ConstListDecl:
				for _, cd := range d.Consts {
					h.fields = append(h.fields, &Field{
						FieldName:  cd.Name,
						Owner:      h,
						Type:       t.reg.Core.Root,
						Visibility: ast.Public,
						IsStatic:   true,
						IsConst:    true,
					})
				}
			}
		}
		if !h.IsEmpty() {
			t.statics = h
			debugPrintf("// [Synth] statics holder for '%s' with %d member(s)\n", t.QualifiedName(), len(h.fields))
		}
		t.staticsDone = true
	}
	return t.statics
}

// RequestStaticConstructor returns this type's static constructor, creating
// it on first request. Collaborators call it when they encounter a static
// initializer that needs a home; there is exactly one per type, and if the
// member table was already built the new member is appended to it.
func (t *SourceType) RequestStaticConstructor() *Method {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cctor == nil {
		t.cctor = &Method{
			MethodName:  StaticCtorName,
			Owner:       t,
			Visibility:  ast.Internal,
			IsStatic:    true,
			Synthesized: true,
		}
		if t.membersBuilt {
			t.appendMemberLocked(t.cctor)
		}
		debugPrintf("// [Synth] static constructor for '%s'\n", t.QualifiedName())
	}
	return t.cctor
}

// StaticConstructor returns the static constructor if one has been
// requested, nil otherwise. It never creates one.
func (t *SourceType) StaticConstructor() *Method {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cctor
}

// InvokeShim returns the synthesized method implementing the callable
// contract, created only when the declaration carries a method matching the
// invoke naming convention. Creation is idempotent: every call returns the
// same instance, and the shim is unioned into the member table and the
// interface set exactly once.
func (t *SourceType) InvokeShim() *Method {
	if !t.hasInstanceState() {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.invokeDone {
		if t.declaresInvoke() {
			t.invoke = &Method{
				MethodName:  InvokeShimName,
				Owner:       t,
				Visibility:  ast.Public,
				Synthesized: true,
			}
			if t.membersBuilt {
				t.appendMemberLocked(t.invoke)
			}
			debugPrintf("// [Synth] invoke shim for '%s'\n", t.QualifiedName())
		}
		t.invokeDone = true
	}
	return t.invoke
}

// declaresInvoke reports whether the declaration has an instance method
// matching the invoke naming convention.
func (t *SourceType) declaresInvoke() bool {
	want := foldName(InvokeMethodName)
	for _, decl := range t.Decl.Members {
		if md, ok := decl.(*ast.MethodDecl); ok && !md.IsStatic && foldName(md.Name) == want {
			return true
		}
	}
	return false
}
