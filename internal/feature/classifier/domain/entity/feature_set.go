package entity

// FeatureSet maps every schema feature name to its selected value.
// An empty string means "not selected".
type FeatureSet map[string]string

// NewFeatureSet returns a FeatureSet with every schema feature present and empty.
func NewFeatureSet() FeatureSet {
	fs := make(FeatureSet, len(schema))
	for _, f := range schema {
		fs[f.Name] = ""
	}
	return fs
}

// Clone returns an independent copy.
func (fs FeatureSet) Clone() FeatureSet {
	out := make(FeatureSet, len(fs))
	for k, v := range fs {
		out[k] = v
	}
	return out
}

// MissingRequired は値が空の必須特徴量をスキーマ順で返します。
func (fs FeatureSet) MissingRequired() []string {
	var missing []string
	for _, f := range schema {
		if f.Required && fs[f.Name] == "" {
			missing = append(missing, f.Name)
		}
	}
	return missing
}
