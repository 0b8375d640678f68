package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitQualified(t *testing.T) {
	tests := []struct {
		name      string
		wantNs    string
		wantLocal string
	}{
		{`App\Widget`, "App", "Widget"},
		{`App\Ui\Widget`, `App\Ui`, "Widget"},
		{"Widget", "", "Widget"},
		{"", "", ""},
	}
	for _, tt := range tests {
		ns, local := SplitQualified(tt.name)
		assert.Equal(t, tt.wantNs, ns, "namespace of %q", tt.name)
		assert.Equal(t, tt.wantLocal, local, "local part of %q", tt.name)
	}
}

func TestDeclarationNameParts(t *testing.T) {
	d := &TypeDeclaration{Name: `App\Ui\Widget`}
	assert.Equal(t, `App\Ui`, d.NamespaceName())
	assert.Equal(t, "Widget", d.LocalName())

	flat := &TypeDeclaration{Name: "Widget"}
	assert.Equal(t, "", flat.NamespaceName())
	assert.Equal(t, "Widget", flat.LocalName())
}

func TestVisibilityString(t *testing.T) {
	assert.Equal(t, "public", Public.String())
	assert.Equal(t, "protected", Protected.String())
	assert.Equal(t, "private", Private.String())
	assert.Equal(t, "internal", Internal.String())
}
