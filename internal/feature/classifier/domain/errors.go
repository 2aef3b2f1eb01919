// Package domain defines domain-level errors for the classifier feature.
package domain

import (
	"errors"
	"fmt"
	"strings"

	"mushroom_form/internal/feature/classifier/domain/entity"
)

// Domain errors for form operations.
var (
	// ErrUnknownFeature indicates a feature name outside the schema.
	ErrUnknownFeature = errors.New("unknown feature")

	// ErrInvalidOption indicates a value outside the feature's option whitelist.
	ErrInvalidOption = errors.New("invalid option for feature")

	// ErrSubmitInProgress is returned when a prediction is already in flight.
	ErrSubmitInProgress = errors.New("a prediction is already in progress")

	// ErrEmptyImage is returned when an upload carries no bytes.
	ErrEmptyImage = errors.New("image data is empty")

	// ErrNotImage is returned when the upload's content type is not image/*.
	ErrNotImage = errors.New("uploaded file is not an image")

	// ErrStaleAnalysis is returned when a newer upload superseded this one.
	ErrStaleAnalysis = errors.New("image analysis superseded by a newer upload")

	// ErrStalePrediction is returned when the form was reset while the prediction was in flight.
	ErrStalePrediction = errors.New("prediction discarded by a form reset")

	// ErrMalformedPrediction is returned when a 2xx prediction response carries no usable verdict.
	ErrMalformedPrediction = errors.New("prediction response has no valid verdict")
)

// ValidationError lists the required features that were left empty.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	labels := make([]string, 0, len(e.Missing))
	for _, name := range e.Missing {
		labels = append(labels, entity.HumanizeFeatureName(name))
	}
	return fmt.Sprintf("Please fill in all required fields: %s", strings.Join(labels, ", "))
}

// APIError is a non-2xx response from the prediction service.
// Message holds the server's "message" field verbatim when one was sent.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("prediction service returned HTTP %d", e.StatusCode)
}
