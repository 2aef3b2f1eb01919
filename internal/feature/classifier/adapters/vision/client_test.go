package vision

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mushroom_form/internal/feature/classifier/domain/entity"
)

func TestNearestColor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		r, g, b  float64
		expected string
	}{
		{"near white", 245, 245, 240, "white"},
		{"dark brown", 120, 60, 25, "brown"},
		{"mid gray", 120, 125, 130, "gray"},
		{"bright red", 220, 10, 10, "red"},
		{"exact palette yellow", 250, 220, 20, "yellow"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, NearestColor(tt.r, tt.g, tt.b))
		})
	}
}

func TestPaletteCoversCapColorOptions(t *testing.T) {
	t.Parallel()

	f, ok := entity.LookupFeature(capColorFeature)
	assert.True(t, ok)
	for _, o := range f.Options {
		_, ok := palette[o]
		assert.True(t, ok, "palette missing %q", o)
	}
}
