package identity

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"
)

var (
	ErrMissingToken       = errors.New("missing bearer token")
	ErrInvalidToken       = errors.New("invalid bearer token")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrSessionsDisabled   = errors.New("sessions are not enabled")
)

// Authenticator turns a presented bearer token into a principal. An empty
// token is passed when the request carried none.
type Authenticator interface {
	Authenticate(token string) (Principal, error)
}

// Session is an issued login.
type Session struct {
	Token     string    `json:"token"`
	Principal Principal `json:"principal"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SessionManager is an Authenticator that can also log callers in and out.
type SessionManager interface {
	Authenticator
	Login(ctx context.Context, username, password string) (Session, error)
	Logout(ctx context.Context, token string) error
}

// Local treats every request as one fixed principal.
type Local struct {
	Principal Principal
}

// Authenticate implements Authenticator.
func (l Local) Authenticate(string) (Principal, error) { return l.Principal, nil }

// StaticToken accepts exactly one shared token.
type StaticToken struct {
	Token     string
	Principal Principal
}

// Authenticate implements Authenticator.
func (s StaticToken) Authenticate(token string) (Principal, error) {
	if token == "" {
		return Principal{}, ErrMissingToken
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(s.Token)) != 1 {
		return Principal{}, ErrInvalidToken
	}
	return s.Principal, nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", nil
	}
	if len(header) < len("Bearer ") || !strings.EqualFold(header[:len("Bearer ")], "bearer ") {
		return "", ErrInvalidToken
	}
	return strings.TrimSpace(header[len("Bearer "):]), nil
}
