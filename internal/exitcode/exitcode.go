// Package exitcode defines exit codes for the CLI.
package exitcode

import (
	"errors"

	"taskboard/internal/service"
)

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, not found, rejected form input).
	UserError = 1

	// AuthError indicates the user is not logged in or credentials were rejected.
	AuthError = 2

	// BackendError indicates a backend/API/network error.
	BackendError = 3
)

// FromError maps a service error to an exit code.
func FromError(err error) int {
	switch {
	case err == nil:
		return Success
	case errors.Is(err, service.ErrInvalidCredentials):
		return AuthError
	case errors.Is(err, service.ErrUsernameTaken), errors.Is(err, service.ErrValidationFailed):
		return UserError
	}
	return BackendError
}
