package batch

import "errors"

// Common errors
var (
	// ErrMissingArgument indicates a required argument was not provided
	ErrMissingArgument = errors.New("missing required argument")
)
