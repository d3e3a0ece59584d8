package cli

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/madar/internal/app"
	"github.com/example/madar/internal/apperr"
)

// commandError marks an error returned by a command body, as opposed to
// cobra's own argument and flag errors.
type commandError struct{ err error }

func (e *commandError) Error() string { return e.err.Error() }
func (e *commandError) Unwrap() error { return e.err }

// usageError is shown to the user verbatim.
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func usagef(msg string) error { return &usageError{msg: msg} }

// run adapts a command body to cobra, marking its errors for Report.
func run(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return &commandError{err: err}
		}
		return nil
	}
}

// Report converts any command error into the message shown to the user.
// Unexpected errors are logged in full and reported generically.
func Report(err error, logger *zap.Logger) string {
	if err == nil {
		return ""
	}

	var cmdErr *commandError
	if !errors.As(err, &cmdErr) && apperr.KindOf(err) == apperr.KindInternal &&
		!errors.Is(err, app.ErrNotLoggedIn) && !errors.Is(err, app.ErrSessionExpired) {
		// cobra usage and startup errors
		return err.Error()
	}

	var usage *usageError
	switch {
	case errors.As(err, &usage):
		return usage.msg
	case errors.Is(err, app.ErrNotLoggedIn), errors.Is(err, app.ErrSessionExpired):
		return err.Error()
	}

	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		return apperr.Message(err)
	case apperr.KindInvalid, apperr.KindConflict:
		return "invalid data: " + apperr.Message(err)
	case apperr.KindDenied:
		return "access denied"
	}

	if logger != nil {
		logger.Error("operation failed", zap.Error(err))
	}
	return "operation failed"
}
