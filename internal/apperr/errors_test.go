package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"user message", WithMessage(ErrUnauthenticated, "Please log in to create activities."), "Please log in to create activities."},
		{"unauthorized verbatim", fmt.Errorf("store: update activity: %w: only the author can update this activity", ErrUnauthorized),
			"store: update activity: Unauthorized: only the author can update this activity"},
		{"anonymous", errors.New("Anonymous principals cannot create activities"), "Please log in to access this feature."},
		{"not authenticated", fmt.Errorf("tracker: %w", ErrUnauthenticated), "Please log in to perform this action."},
		{"connection", fmt.Errorf("tracker: %w", ErrConnectionUnavailable), "Connection not available. Please try again."},
		{"not found", fmt.Errorf("activity 7: %w", ErrNotFound), "activity 7: not found"},
		{"opaque", errors.New("sqlite: disk I/O error"), "An unexpected error occurred. Please try again."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Message(tt.err); got != tt.want {
				t.Errorf("Message() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUserErrorUnwraps(t *testing.T) {
	err := fmt.Errorf("wrap: %w", WithMessage(ErrConnectionUnavailable, "x"))
	if !errors.Is(err, ErrConnectionUnavailable) {
		t.Error("UserError should unwrap to its kind")
	}
}
