package service

import (
	"errors"
	"fmt"
)

// Error kinds. Match with errors.Is.
var (
	ErrNetwork            = errors.New("network error")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username taken")
	ErrValidationFailed   = errors.New("validation failed")
	ErrServer             = errors.New("server error")
)

// Error is a failure reported by the remote API or the transport under it.
type Error struct {
	Kind    error  // one of the Err* kinds above
	Status  int    // HTTP status, 0 for transport failures
	Message string // server-supplied message, may be empty
	Err     error  // underlying cause, may be nil
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.Error()
		if e.Status != 0 {
			msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
		}
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// Message returns the server-supplied message carried by err,
// or fallback when there is none.
func Message(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
