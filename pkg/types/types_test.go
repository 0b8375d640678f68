package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phlox/pkg/ast"
	"phlox/pkg/source"
)

// --- shared test builders ---

func testUnit(name string) *source.Unit {
	return source.NewUnit(name, "", "")
}

func classDecl(name string, members ...ast.MemberDecl) *ast.TypeDeclaration {
	return &ast.TypeDeclaration{
		Name:    name,
		Unit:    testUnit("test.phx"),
		Members: members,
	}
}

func method(name string) *ast.MethodDecl {
	return &ast.MethodDecl{Name: name, Visibility: ast.Public, HasBody: true}
}

func staticMethod(name string) *ast.MethodDecl {
	return &ast.MethodDecl{Name: name, Visibility: ast.Public, IsStatic: true, HasBody: true}
}

func fieldList(vis ast.Visibility, static bool, names ...string) *ast.FieldListDecl {
	d := &ast.FieldListDecl{Visibility: vis, IsStatic: static}
	for _, n := range names {
		d.Fields = append(d.Fields, &ast.FieldDecl{Name: n})
	}
	return d
}

func constList(names ...string) *ast.ConstListDecl {
	d := &ast.ConstListDecl{}
	for _, n := range names {
		d.Consts = append(d.Consts, &ast.ConstDecl{Name: n})
	}
	return d
}

func load(t *testing.T, decls ...*ast.TypeDeclaration) *Registry {
	t.Helper()
	return NewRegistry(DefaultCoreTypes(), decls)
}

func lookup(t *testing.T, reg *Registry, name string) *SourceType {
	t.Helper()
	typ := reg.Resolve(name)
	require.NotNil(t, typ, "type %q not found", name)
	st, ok := typ.(*SourceType)
	require.True(t, ok, "type %q is not a source type", name)
	return st
}

func memberNames(members []Member) []string {
	names := make([]string, len(members))
	for i, m := range members {
		names[i] = m.Name()
	}
	return names
}

// --- foundation types ---

func TestFoldName(t *testing.T) {
	assert.Equal(t, foldName("widget"), foldName("WIDGET"))
	assert.Equal(t, foldName("__invoke"), foldName("__Invoke"))
	assert.NotEqual(t, foldName("widget"), foldName("gadget"))
	// Folding goes past ASCII.
	assert.NotEqual(t, "İ", foldName("İ"))
}

func TestExternalTypeNames(t *testing.T) {
	core := DefaultCoreTypes()
	assert.Equal(t, "Object", core.Root.Name())
	assert.Equal(t, "runtime.Object", core.Root.QualifiedName())
	assert.Equal(t, "Context", core.Context.Name())
}

func TestMissingType(t *testing.T) {
	m := &MissingType{Ref: `App\Gone`}
	assert.True(t, IsMissing(m))
	assert.Equal(t, "Gone", m.Name())
	assert.Equal(t, `App\Gone`, m.QualifiedName())
	assert.False(t, IsMissing(DefaultCoreTypes().Root))
}
