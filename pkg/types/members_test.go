package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phlox/pkg/ast"
)

func TestMemberTableOrder(t *testing.T) {
	reg := load(t, classDecl(`App\Widget`,
		method("render"),
		staticMethod("create"),
		fieldList(ast.Public, false, "width", "height"),
		fieldList(ast.Private, true, "registry"),
		constList("VERSION"),
	))
	widget := lookup(t, reg, `App\Widget`)

	// Holder first, then source methods in declaration order, then the
	// construction shim and initializer, then unshadowed source fields,
	// then the owned synthesized fields.
	assert.Equal(t, []string{
		StaticsHolderName,
		"render",
		"create",
		ConstructionShimName,
		InstanceInitName,
		"width",
		"height",
		ContextFieldName,
		RuntimeFieldsFieldName,
	}, memberNames(widget.Members()))
}

func TestMembersStableAcrossCalls(t *testing.T) {
	reg := load(t, classDecl(`App\Widget`, method("render"), fieldList(ast.Public, false, "width")))
	widget := lookup(t, reg, `App\Widget`)

	first := widget.Members()
	second := widget.Members()
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Same(t, first[i], second[i], "member %d changed identity between calls", i)
	}
}

func TestStaticsShadowSourceFieldsAndConstants(t *testing.T) {
	reg := load(t, classDecl(`App\Config`,
		fieldList(ast.Public, false, "name"),
		fieldList(ast.Public, true, "defaults"),
		constList("VERSION"),
	))
	config := lookup(t, reg, `App\Config`)

	var holder *NestedType
	for _, m := range config.Members() {
		switch m := m.(type) {
		case *NestedType:
			holder = m
		case *Field:
			// Statics and constants live on the holder, never directly in
			// the outer table.
			assert.False(t, m.IsConst, "constant %q leaked into the outer table", m.Name())
			if !m.Synthesized {
				assert.False(t, m.Static(), "static field %q leaked into the outer table", m.Name())
			}
		}
	}
	require.NotNil(t, holder)
	var holderNames []string
	for _, f := range holder.Holder.Fields() {
		holderNames = append(holderNames, f.Name())
	}
	assert.Equal(t, []string{"defaults", "VERSION"}, holderNames)
	assert.Same(t, config, holder.Holder.DeclaringType)
}

func TestNoStaticsMeansNoHolder(t *testing.T) {
	reg := load(t, classDecl(`App\Widget`, method("render"), fieldList(ast.Public, false, "width")))
	widget := lookup(t, reg, `App\Widget`)

	assert.Nil(t, widget.StaticsHolder())
	for _, m := range widget.Members() {
		_, isNested := m.(*NestedType)
		assert.False(t, isNested, "member table must not expose a statics holder")
	}
}

func TestMembersNamedIsCaseInsensitive(t *testing.T) {
	reg := load(t, classDecl(`App\Widget`, method("Render"), fieldList(ast.Public, false, "render")))
	widget := lookup(t, reg, `App\Widget`)

	found := widget.MembersNamed("RENDER")
	require.Len(t, found, 2)
	_, isMethod := found[0].(*Method)
	_, isField := found[1].(*Field)
	assert.True(t, isMethod)
	assert.True(t, isField)

	assert.Empty(t, widget.MembersNamed("missing"))
}

func TestStaticConstructorRequestedBeforeBuild(t *testing.T) {
	reg := load(t, classDecl(`App\Widget`, method("render")))
	widget := lookup(t, reg, `App\Widget`)

	cctor := widget.RequestStaticConstructor()
	require.NotNil(t, cctor)

	names := memberNames(widget.Members())
	assert.Equal(t, []string{
		"render",
		ConstructionShimName,
		InstanceInitName,
		StaticCtorName,
		ContextFieldName,
		RuntimeFieldsFieldName,
	}, names)
}

func TestStaticConstructorAppendsAfterBuild(t *testing.T) {
	reg := load(t, classDecl(`App\Widget`, method("render")))
	widget := lookup(t, reg, `App\Widget`)

	before := widget.Members()
	require.Nil(t, widget.StaticConstructor())

	cctor := widget.RequestStaticConstructor()
	require.NotNil(t, cctor)
	assert.Same(t, cctor, widget.RequestStaticConstructor(), "second request must return the same instance")
	assert.Same(t, cctor, widget.StaticConstructor())

	after := widget.Members()
	require.Len(t, after, len(before)+1)
	// Strict superset by identity: every prior member keeps its slot.
	for i := range before {
		assert.Same(t, before[i], after[i], "member %d moved after append", i)
	}
	assert.Same(t, cctor, after[len(after)-1])
}

func TestMissingBaseStillYieldsFullMemberTable(t *testing.T) {
	decl := classDecl(`App\Widget`, method("render"), fieldList(ast.Public, false, "width"))
	decl.Base = &ast.TypeRef{Name: `App\NotLoaded`}
	reg := load(t, decl)
	widget := lookup(t, reg, `App\Widget`)

	base := widget.BaseType()
	require.True(t, IsMissing(base))
	assert.Equal(t, `App\NotLoaded`, base.QualifiedName())

	names := memberNames(widget.Members())
	assert.Contains(t, names, "render")
	assert.Contains(t, names, "width")
	// With no resolvable ancestor the type owns its synthesized fields.
	assert.Contains(t, names, ContextFieldName)

	diags := reg.Diagnostics()
	require.NotEmpty(t, diags)
	assert.Equal(t, "Bind", diags[0].Kind())
}

func TestBaseTypeDefaultsToRoot(t *testing.T) {
	reg := load(t, classDecl(`App\Widget`))
	widget := lookup(t, reg, `App\Widget`)
	assert.Same(t, Type(reg.Core.Root), widget.BaseType())
}

func TestInterfaceSetResolvesAndDeduplicates(t *testing.T) {
	iface := classDecl(`App\Renderable`)
	iface.IsInterface = true

	decl := classDecl(`App\Widget`)
	decl.Interfaces = []*ast.TypeRef{
		{Name: `App\Renderable`},
		{Name: `app\renderable`}, // same interface, different source casing
		{Name: `App\Gone`},
	}
	reg := load(t, decl, iface)
	widget := lookup(t, reg, `App\Widget`)

	set := widget.Interfaces()
	require.Len(t, set, 2)
	assert.Same(t, Type(lookup(t, reg, `App\Renderable`)), set[0])
	assert.True(t, IsMissing(set[1]))
}
