package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandType(t *testing.T) {
	keywords := ExpandType("painting")
	require.NotNil(t, keywords)
	assert.Contains(t, keywords, "ulei")
	assert.Contains(t, keywords, "canvas")

	assert.Equal(t, ExpandType("painting"), ExpandType("  PAINTING "), "lookup normalizes case and spacing")
	assert.Nil(t, ExpandType("fresco"), "unknown canonical names expand to nothing")
	assert.Nil(t, ExpandType(""))
}

func TestClassifyLabel(t *testing.T) {
	tests := []struct {
		label string
		want  TypeName
	}{
		{"Ulei pe pânză", TypePainting},
		{"Pictură în tempera", TypePainting},
		{"Daguerreotype", TypePhotograph},
		{"Gravură în lemn", TypePrint},
		{"Pastel on canvas", TypeDrawing}, // first table row wins over painting
		{"Bust de bronz", TypeSculpture},
		{"Manuscris medieval", TypeManuscript},
		{"Instalație video", TypeInstallation},
		{"Covor oltenesc", TypeArtifact},
		{"Something unclassifiable", TypeArtifact},
		{"", TypeArtifact},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyLabel(tt.label))
		})
	}
}

func TestPaintingKeywordsDoNotMatchPhotographs(t *testing.T) {
	keywords := ExpandType("painting")
	for _, kw := range keywords {
		assert.NotContains(t, "daguerreotype", kw)
	}
}
