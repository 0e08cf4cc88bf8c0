package scheduler

import "errors"

// Common errors
var (
	// ErrUnsupportedManager indicates the manager name is not in the supported set
	ErrUnsupportedManager = errors.New("unsupported resource manager")

	// ErrArrayUnsupported indicates array mode was requested for a manager
	// without a task-array directive
	ErrArrayUnsupported = errors.New("resource manager does not support task arrays")

	// ErrNoManagerDetected indicates no submit binary was found on this host
	ErrNoManagerDetected = errors.New("no resource manager detected")
)
