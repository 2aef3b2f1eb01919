// Package entity defines the domain models for the classifier feature.
package entity

import "strings"

// Feature describes one categorical attribute of a mushroom specimen.
type Feature struct {
	Name     string   // Wire name (e.g., "spore-print-color")
	Options  []string // Allowed values in display order
	Required bool     // Must be non-empty before submission
}

// Label returns the human-readable name: hyphen-split, each word capitalized.
func (f Feature) Label() string {
	return HumanizeFeatureName(f.Name)
}

// Allows reports whether v is one of the feature's options.
func (f Feature) Allows(v string) bool {
	for _, o := range f.Options {
		if o == v {
			return true
		}
	}
	return false
}

// Normalize maps v to the option it matches ignoring case and surrounding space.
func (f Feature) Normalize(v string) (string, bool) {
	v = strings.TrimSpace(v)
	for _, o := range f.Options {
		if strings.EqualFold(o, v) {
			return o, true
		}
	}
	return v, false
}

var (
	colors      = []string{"brown", "buff", "cinnamon", "gray", "green", "pink", "purple", "red", "white", "yellow"}
	gillColors  = []string{"black", "brown", "buff", "chocolate", "gray", "green", "orange", "pink", "purple", "red", "white", "yellow"}
	stalkColors = []string{"brown", "buff", "cinnamon", "gray", "orange", "pink", "red", "white", "yellow"}
	surfaces    = []string{"fibrous", "scaly", "silky", "smooth"}
)

// schema は特徴量の静的な定義表です。
// 表示順・検証順はこのスライスの順序で決まります（mapの反復順には依存しません）。
var schema = []Feature{
	{Name: "cap-shape", Required: true, Options: []string{"bell", "conical", "convex", "flat", "knobbed", "sunken"}},
	{Name: "cap-surface", Required: true, Options: []string{"fibrous", "grooves", "scaly", "smooth"}},
	{Name: "cap-color", Required: true, Options: colors},
	{Name: "bruises", Required: true, Options: []string{"yes", "no"}},
	{Name: "odor", Required: true, Options: []string{"almond", "anise", "creosote", "fishy", "foul", "musty", "none", "pungent", "spicy"}},
	{Name: "gill-attachment", Options: []string{"attached", "descending", "free", "notched"}},
	{Name: "gill-spacing", Options: []string{"close", "crowded", "distant"}},
	{Name: "gill-size", Required: true, Options: []string{"broad", "narrow"}},
	{Name: "gill-color", Required: true, Options: gillColors},
	{Name: "stalk-shape", Required: true, Options: []string{"enlarging", "tapering"}},
	{Name: "stalk-root", Options: []string{"bulbous", "club", "cup", "equal", "rhizomorphs", "rooted", "missing"}},
	{Name: "stalk-surface-above-ring", Options: surfaces},
	{Name: "stalk-surface-below-ring", Options: surfaces},
	{Name: "stalk-color-above-ring", Options: stalkColors},
	{Name: "stalk-color-below-ring", Options: stalkColors},
	{Name: "veil-type", Options: []string{"partial", "universal"}},
	{Name: "veil-color", Options: []string{"brown", "orange", "white", "yellow"}},
	{Name: "ring-number", Options: []string{"none", "one", "two"}},
	{Name: "ring-type", Required: true, Options: []string{"cobwebby", "evanescent", "flaring", "large", "none", "pendant", "sheathing", "zone"}},
	{Name: "spore-print-color", Required: true, Options: []string{"black", "brown", "buff", "chocolate", "green", "orange", "purple", "white", "yellow"}},
	{Name: "population", Required: true, Options: []string{"abundant", "clustered", "numerous", "scattered", "several", "solitary"}},
	{Name: "habitat", Required: true, Options: []string{"grasses", "leaves", "meadows", "paths", "urban", "waste", "woods"}},
}

var schemaIndex = func() map[string]int {
	m := make(map[string]int, len(schema))
	for i, f := range schema {
		m[f.Name] = i
	}
	return m
}()

// Schema returns a copy of the ordered feature schema.
func Schema() []Feature {
	out := make([]Feature, len(schema))
	copy(out, schema)
	return out
}

// LookupFeature returns the schema entry for name.
func LookupFeature(name string) (Feature, bool) {
	i, ok := schemaIndex[name]
	if !ok {
		return Feature{}, false
	}
	return schema[i], true
}

// RequiredFeatureNames returns the mandatory feature names in schema order.
func RequiredFeatureNames() []string {
	out := make([]string, 0, len(schema))
	for _, f := range schema {
		if f.Required {
			out = append(out, f.Name)
		}
	}
	return out
}

// HumanizeFeatureName は "spore-print-color" を "Spore Print Color" に変換します。
func HumanizeFeatureName(name string) string {
	parts := strings.Split(name, "-")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
