// Package identity resolves callers into principals and manages login
// sessions.
package identity

import (
	"context"

	"github.com/google/uuid"
)

// namespace seeds deterministic principal ids.
var namespace = uuid.MustParse("6f0b4c1e-3c1a-5d7e-9a52-6b1f0d6c2e11")

// Principal is the identity a request acts as.
type Principal struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Anonymous is the principal of unauthenticated callers.
var Anonymous = Principal{ID: "anonymous"}

// IsAnonymous reports whether p carries no identity.
func (p Principal) IsAnonymous() bool { return p.ID == "" || p.ID == Anonymous.ID }

// PrincipalFor derives the stable principal for username.
func PrincipalFor(username string) Principal {
	return Principal{
		ID:       uuid.NewSHA1(namespace, []byte(username)).String(),
		Username: username,
	}
}

type contextKey string

const (
	principalKey contextKey = "daybook-principal"
	tokenKey     contextKey = "daybook-token"
)

// WithPrincipal stores p on the context.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// FromContext returns the principal stored by WithPrincipal, or Anonymous.
func FromContext(ctx context.Context) Principal {
	if p, ok := ctx.Value(principalKey).(Principal); ok {
		return p
	}
	return Anonymous
}

// Authenticated reports whether ctx carries a non-anonymous principal.
func Authenticated(ctx context.Context) bool {
	return !FromContext(ctx).IsAnonymous()
}

// WithToken stores the bearer token the request presented.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

// TokenFromContext returns the bearer token stored by WithToken.
func TokenFromContext(ctx context.Context) string {
	s, _ := ctx.Value(tokenKey).(string)
	return s
}
