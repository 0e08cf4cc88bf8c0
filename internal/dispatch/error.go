package dispatch

import (
	"errors"
	"fmt"
)

// SubmitError represents a failure of the external submit command
type SubmitError struct {
	Manager string // Batch manager name
	Script  string // Script file name
	Output  string // Combined output of the submit command
	Err     error  // Underlying error
}

func (e *SubmitError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("%s submission failed for %s: %v\nOutput: %s",
			e.Manager, e.Script, e.Err, e.Output)
	}
	return fmt.Sprintf("%s submission failed for %s: %v",
		e.Manager, e.Script, e.Err)
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}

// NewSubmitError creates a new SubmitError
func NewSubmitError(manager string, script string, output string, err error) *SubmitError {
	return &SubmitError{
		Manager: manager,
		Script:  script,
		Output:  output,
		Err:     err,
	}
}

// IsSubmitError checks if an error is a SubmitError
func IsSubmitError(err error) bool {
	var se *SubmitError
	return errors.As(err, &se)
}
