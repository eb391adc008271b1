package cmd

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Exit codes of the mdfront process.
const (
	// exitSuccess indicates the command completed successfully.
	exitSuccess = 0

	// exitUser indicates a problem with the input: flags, arguments, config,
	// or a document without the expected frontmatter.
	exitUser = 1

	// exitSystem indicates a failure outside the user's control: reading or
	// writing files, or running a command.
	exitSystem = 2
)

// exitError attaches an exit code to an error. Hints of the wrapped error
// stay reachable through Unwrap.
type exitError struct {
	err  error
	code int
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit code %d", e.code)
	}

	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

// systemError marks err as a system failure. It returns nil for a nil err.
func systemError(err error) error {
	if err == nil {
		return nil
	}

	return &exitError{err: err, code: exitSystem}
}

// exitCode picks the process exit code for err. Errors that carry no code,
// including cobra's flag and argument errors, are user errors.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}

	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}

	return exitUser
}
