package applications

import "fmt"

// ValidationError names the first missing or invalid required field of a step
// payload. Recoverable: the candidate corrects the field and resubmits.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %q is invalid: %s", e.Field, e.Reason)
}

func newValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// OutOfSequenceError is returned when a submission targets a step beyond the
// candidate's next allowed step. The record is left unchanged.
type OutOfSequenceError struct {
	Current   int
	Requested int
}

func (e *OutOfSequenceError) Error() string {
	return fmt.Sprintf("step %d is out of sequence, current step is %d", e.Requested, e.Current)
}
