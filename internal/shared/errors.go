package shared

import "fmt"

var (
	// Configuration errors
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Form errors
	ErrValidation         = fmt.Errorf("please fill in all fields")
	ErrSubmissionInFlight = fmt.Errorf("a submission is already in progress")
	ErrInvalidTransition  = fmt.Errorf("invalid view state transition")

	// Request errors
	ErrNetwork       = fmt.Errorf("network request failed")
	ErrParse         = fmt.Errorf("malformed response body")
	ErrRequestFailed = fmt.Errorf("playlist creation failed")

	// Storage errors
	ErrSubmissionNotFound = fmt.Errorf("submission not found")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
	ErrAborted         = fmt.Errorf("aborted by user")
)
