package usecase

import (
	"errors"

	"mushroom_form/internal/feature/classifier/domain"
)

// Outcome labels for submissions and image analyses.
const (
	OutcomeSuccess         = "success"
	OutcomeValidationError = "validation_error"
	OutcomeServerError     = "server_error"
	OutcomeTransportError  = "transport_error"
	OutcomeSuperseded      = "superseded"
)

// Recorder receives operation outcomes for metrics.
type Recorder interface {
	SubmissionOutcome(outcome string)
	Prediction(verdict string)
	ImageAnalysisOutcome(outcome string)
}

type nopRecorder struct{}

func (nopRecorder) SubmissionOutcome(string)    {}
func (nopRecorder) Prediction(string)           {}
func (nopRecorder) ImageAnalysisOutcome(string) {}

// classify maps an error to an outcome label.
func classify(err error) string {
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		return OutcomeServerError
	}
	return OutcomeTransportError
}
