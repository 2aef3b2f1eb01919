package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPredictionResult_Render(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		result           PredictionResult
		expectedHeadline string
		expectedConf     string
	}{
		{
			name:             "poisonous",
			result:           PredictionResult{Prediction: VerdictPoisonous, Confidence: 0.87},
			expectedHeadline: "This mushroom is predicted to be poisonous",
			expectedConf:     "Confidence: 87.00%",
		},
		{
			name:             "edible",
			result:           PredictionResult{Prediction: VerdictEdible, Confidence: 0.5},
			expectedHeadline: "This mushroom is predicted to be edible",
			expectedConf:     "Confidence: 50.00%",
		},
		{
			name:             "confidence above one is not clamped",
			result:           PredictionResult{Prediction: VerdictEdible, Confidence: 1.5},
			expectedHeadline: "This mushroom is predicted to be edible",
			expectedConf:     "Confidence: 150.00%",
		},
		{
			name:             "negative confidence is not clamped",
			result:           PredictionResult{Prediction: VerdictPoisonous, Confidence: -0.25},
			expectedHeadline: "This mushroom is predicted to be poisonous",
			expectedConf:     "Confidence: -25.00%",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expectedHeadline, tt.result.Headline())
			assert.Equal(t, tt.expectedConf, tt.result.ConfidenceText())
		})
	}
}

func TestPredictionResult_IsPoisonous(t *testing.T) {
	t.Parallel()

	assert.True(t, PredictionResult{Prediction: VerdictPoisonous}.IsPoisonous())
	assert.False(t, PredictionResult{Prediction: VerdictEdible}.IsPoisonous())
}

func TestVerdict_Valid(t *testing.T) {
	t.Parallel()

	assert.True(t, VerdictEdible.Valid())
	assert.True(t, VerdictPoisonous.Valid())
	assert.False(t, Verdict("").Valid())
	assert.False(t, Verdict("Edible").Valid())
}
