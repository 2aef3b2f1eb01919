package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	err := &ValidationError{Missing: []string{"odor", "spore-print-color"}}

	assert.Equal(t, "Please fill in all required fields: Odor, Spore Print Color", err.Error())
}

func TestAPIError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *APIError
		expected string
	}{
		{"server message verbatim", &APIError{StatusCode: 400, Message: "Missing feature: odor"}, "Missing feature: odor"},
		{"no message", &APIError{StatusCode: 503}, "prediction service returned HTTP 503"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}
