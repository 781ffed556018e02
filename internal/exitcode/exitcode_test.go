package exitcode

import (
	"errors"
	"testing"

	"taskboard/internal/service"
)

func TestFromError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, Success},
		{&service.Error{Kind: service.ErrInvalidCredentials}, AuthError},
		{&service.Error{Kind: service.ErrUsernameTaken}, UserError},
		{&service.Error{Kind: service.ErrValidationFailed}, UserError},
		{&service.Error{Kind: service.ErrNetwork}, BackendError},
		{&service.Error{Kind: service.ErrServer, Status: 500}, BackendError},
		{errors.New("unknown"), BackendError},
	}
	for _, tt := range tests {
		if got := FromError(tt.err); got != tt.want {
			t.Errorf("FromError(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
