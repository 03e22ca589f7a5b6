package cli

import (
	"errors"

	"github.com/yaklabco/marcup/pkg/runner"
)

// Exit codes for marcup.
const (
	// ExitSuccess indicates every file parsed.
	ExitSuccess = 0

	// ExitParseErrors indicates at least one file contained invalid syntax.
	ExitParseErrors = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrParseFailed is returned when one or more files failed. The files
// themselves have already been reported.
var ErrParseFailed = errors.New("one or more files failed to parse")

// ExitError attaches a process exit code to an error.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func withExitCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: code, Err: err}
}

func usageError(err error) error {
	return withExitCode(ExitInvalidUsage, err)
}

// ExitCode returns the exit code for an error returned by the root command.
// Errors without a code come from Cobra's own argument handling and count as
// invalid usage.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitInvalidUsage
}

// ExitCodeFromResult determines the exit code for a completed run. Syntax
// errors take precedence over files that could not be read.
func ExitCodeFromResult(result *runner.Result) int {
	switch {
	case result == nil:
		return ExitSuccess
	case result.HasParseErrors():
		return ExitParseErrors
	case result.HasFailures():
		return ExitIOError
	default:
		return ExitSuccess
	}
}
