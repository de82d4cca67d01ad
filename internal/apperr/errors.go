// Package apperr holds the error taxonomy shared by the store, the tracker,
// and the transports, plus the normalisation of errors into user messages.
package apperr

import (
	"errors"
	"strings"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrAlreadyExists = errors.New("already exists")
	ErrInvalid       = errors.New("invalid input")

	// ErrUnauthorized is an authorization failure reported by the backend.
	// Its wrapped message is shown to users verbatim.
	ErrUnauthorized = errors.New("Unauthorized")

	// ErrUnauthenticated marks a mutation attempted without an identity. It
	// is raised before any backend call.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrConnectionUnavailable means no backend is attached yet.
	ErrConnectionUnavailable = errors.New("Connection not available. Please try again.")

	// ErrAlreadyAuthenticated is the stale-session login race.
	ErrAlreadyAuthenticated = errors.New("User is already authenticated")
)

// UserError carries a message written for end users alongside the sentinel
// it classifies as.
type UserError struct {
	Kind error
	Msg  string
}

func (e *UserError) Error() string { return e.Msg }
func (e *UserError) Unwrap() error { return e.Kind }

// WithMessage classifies msg under kind.
func WithMessage(kind error, msg string) error {
	return &UserError{Kind: kind, Msg: msg}
}

const (
	msgLogin      = "Please log in to perform this action."
	msgAnonymous  = "Please log in to access this feature."
	msgUnexpected = "An unexpected error occurred. Please try again."
)

// Message turns err into text suitable for end users.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var ue *UserError
	if errors.As(err, &ue) {
		return ue.Msg
	}
	text := err.Error()
	switch {
	case strings.Contains(text, "Unauthorized"):
		return text
	case strings.Contains(text, "Anonymous principals"):
		return msgAnonymous
	case errors.Is(err, ErrUnauthenticated), strings.Contains(text, "not authenticated"):
		return msgLogin
	case errors.Is(err, ErrConnectionUnavailable):
		return ErrConnectionUnavailable.Error()
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrInvalid),
		errors.Is(err, ErrConflict), errors.Is(err, ErrAlreadyExists):
		return text
	}
	return msgUnexpected
}
