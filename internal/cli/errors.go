package cli

import "errors"

var (
	// ErrUsage indicates invalid flags or arguments.
	ErrUsage = errors.New("usage error")

	// ErrFailed indicates that one or more inputs could not be hashed.
	ErrFailed = errors.New("hashing failed")
)

// ExitCode maps an error returned by Run to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	if errors.Is(err, ErrUsage) {
		return 2
	}

	return 1
}
