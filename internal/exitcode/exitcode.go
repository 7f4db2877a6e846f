// Package exitcode defines exit codes for the CLI.
package exitcode

import "errors"

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, invalid choice, bad date).
	UserError = 1

	// StoreError indicates a corrupt task file or a config error.
	StoreError = 2

	// Interrupted is used when the process is cancelled by a signal.
	Interrupted = 130
)

// Error carries an exit code alongside the underlying error.
type Error struct {
	Code int
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return "exit status"
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// New wraps err with code. A nil err stays nil.
func New(code int, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Err: err}
}

// Code returns the exit code for err: Success for nil, the code of the
// outermost *Error in the chain, or UserError otherwise.
func Code(err error) int {
	if err == nil {
		return Success
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return UserError
}
