package shell

import "errors"

var (
	// ErrSyntax is returned for malformed command lines
	ErrSyntax = errors.New("shell: syntax error")

	// ErrUsage is returned when a command gets the wrong arguments
	ErrUsage = errors.New("usage")

	// ErrUnavailable is returned when a command's backing service was not configured
	ErrUnavailable = errors.New("shell: service unavailable")
)
