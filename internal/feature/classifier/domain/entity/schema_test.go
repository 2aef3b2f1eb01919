package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchema_Shape(t *testing.T) {
	t.Parallel()

	s := Schema()
	assert.Len(t, s, 22)
	assert.Len(t, RequiredFeatureNames(), 12)

	seen := map[string]bool{}
	for _, f := range s {
		assert.False(t, seen[f.Name], "duplicate feature %q", f.Name)
		seen[f.Name] = true
		assert.NotEmpty(t, f.Options, "feature %q has no options", f.Name)
	}
}

func TestSchema_ReturnsCopy(t *testing.T) {
	t.Parallel()

	s := Schema()
	s[0].Name = "mutated"

	assert.Equal(t, "cap-shape", Schema()[0].Name)
}

func TestRequiredFeatureNames_Order(t *testing.T) {
	t.Parallel()

	expected := []string{
		"cap-shape", "cap-surface", "cap-color", "bruises", "odor", "gill-size",
		"gill-color", "stalk-shape", "ring-type", "spore-print-color", "population", "habitat",
	}
	assert.Equal(t, expected, RequiredFeatureNames())
}

func TestLookupFeature(t *testing.T) {
	t.Parallel()

	f, ok := LookupFeature("odor")
	assert.True(t, ok)
	assert.True(t, f.Required)
	assert.True(t, f.Allows("foul"))
	assert.False(t, f.Allows("rotten"))
	assert.False(t, f.Allows(""))

	_, ok = LookupFeature("stem-height")
	assert.False(t, ok)
}

func TestHumanizeFeatureName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in       string
		expected string
	}{
		{"odor", "Odor"},
		{"spore-print-color", "Spore Print Color"},
		{"stalk-surface-above-ring", "Stalk Surface Above Ring"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, HumanizeFeatureName(tt.in))
		})
	}
}

func TestFeature_Label(t *testing.T) {
	t.Parallel()

	f, _ := LookupFeature("gill-color")
	assert.Equal(t, "Gill Color", f.Label())
}

func TestFeature_Normalize(t *testing.T) {
	t.Parallel()

	odor, ok := LookupFeature("odor")
	assert.True(t, ok)

	tests := []struct {
		in       string
		expected string
		matched  bool
	}{
		{"foul", "foul", true},
		{"Foul", "foul", true},
		{"  ALMOND ", "almond", true},
		{"rotten", "rotten", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, matched := odor.Normalize(tt.in)
		assert.Equal(t, tt.expected, got, tt.in)
		assert.Equal(t, tt.matched, matched, tt.in)
	}
}
