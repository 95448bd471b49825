package generation

import "fmt"

// GenerationError wraps a transport or API failure from the draft pass.
// Draft failures are fatal to the run.
type GenerationError struct {
	Message string
	Cause   error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generation error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("generation error: %s", e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// ValidationPassError records a failed review pass. It is never propagated as
// a failure: the draft output is returned instead and the error is surfaced
// as a warning.
type ValidationPassError struct {
	Cause error
}

func (e *ValidationPassError) Error() string {
	return fmt.Sprintf("validation pass failed, using draft output: %v", e.Cause)
}

func (e *ValidationPassError) Unwrap() error {
	return e.Cause
}
