package textgen

import "errors"

// Package-level error values and types returned by the textgen package.
var (
	// ErrRequestInFlight is returned by Submit when another submission
	// is still pending on the same Controller.
	ErrRequestInFlight = errors.New("textgen: a submission is already pending")

	// ErrMissingModel is returned when a Controller is constructed
	// without a completion model.
	ErrMissingModel = errors.New("textgen: missing CompletionModel")
)

// InvalidArgumentError indicates that a form field is outside the range
// the demo sliders enforce.
type InvalidArgumentError struct {
	// Parameter is the name of the invalid field.
	Parameter string
	// Value is the offending value.
	Value any
	// Message describes why the value is considered invalid.
	Message string
}

func (e *InvalidArgumentError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return "textgen: invalid argument for parameter " + e.Parameter + ": " + e.Message
}
