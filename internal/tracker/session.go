package tracker

import (
	"context"
	"errors"

	"github.com/starford/daybook/internal/apperr"
	"github.com/starford/daybook/internal/identity"
)

// Login starts a session. When the caller still holds a live session the
// first attempt fails with apperr.ErrAlreadyAuthenticated; the stale session
// is then revoked, the caller's cache cleared, and login retried once.
func (s *Service) Login(ctx context.Context, username, password string) (identity.Session, error) {
	if s.sessions == nil {
		return identity.Session{}, identity.ErrSessionsDisabled
	}
	sess, err := s.sessions.Login(ctx, username, password)
	if !errors.Is(err, apperr.ErrAlreadyAuthenticated) {
		return sess, err
	}

	s.log.Info("stale session on login, retrying", "principal", identity.FromContext(ctx).ID)
	s.cache.InvalidatePrincipal(identity.FromContext(ctx).ID)
	if err := s.sessions.Logout(ctx, identity.TokenFromContext(ctx)); err != nil {
		return identity.Session{}, err
	}
	return s.sessions.Login(identity.WithToken(ctx, ""), username, password)
}

// Logout ends the caller's session and drops their cached reads.
func (s *Service) Logout(ctx context.Context) error {
	if s.sessions == nil {
		return identity.ErrSessionsDisabled
	}
	s.cache.InvalidatePrincipal(identity.FromContext(ctx).ID)
	return s.sessions.Logout(ctx, identity.TokenFromContext(ctx))
}
