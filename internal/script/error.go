package script

import (
	"errors"
	"fmt"
)

// WriteError represents a failure writing a job script to disk
type WriteError struct {
	JobName string // Job name
	Path    string // Script path
	Err     error  // Underlying error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write script for job %s at %s: %v",
		e.JobName, e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// NewWriteError creates a new WriteError
func NewWriteError(jobName string, path string, err error) *WriteError {
	return &WriteError{
		JobName: jobName,
		Path:    path,
		Err:     err,
	}
}

// IsWriteError checks if an error is a WriteError
func IsWriteError(err error) bool {
	var we *WriteError
	return errors.As(err, &we)
}
