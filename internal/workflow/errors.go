package workflow

import "fmt"

// PreconditionError means the workflow was started without the required
// selections or script. Surfaced to the user as guidance, never retried.
type PreconditionError struct {
	Reason string
}

func (e *PreconditionError) Error() string {
	return "precondition failed: " + e.Reason
}

// ValidationError blocks a call-log submission until the input is corrected,
// e.g. a failed outcome without a failure reason.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason
}

// BusyError is returned when an action is attempted while a previous one for
// the same entry is still in flight.
type BusyError struct{}

func (e *BusyError) Error() string {
	return "a submission for this call is already in progress"
}

// ExternalServiceError wraps a failed call to an external collaborator. The
// caller decides whether to retry; the workflow state is left untouched.
type ExternalServiceError struct {
	Op  string
	Err error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}
