package identity

import (
	"context"
	"crypto/subtle"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/starford/daybook/internal/apperr"
)

// IssuerConfig configures JWT sessions for a single local account.
type IssuerConfig struct {
	Secret   string
	Issuer   string
	TTL      time.Duration
	Username string
	Password string
	Now      func() time.Time
}

type sessionClaims struct {
	Username string `json:"name"`
	jwt.RegisteredClaims
}

// Issuer signs HS256 session tokens and tracks revoked ones by jti.
// Anonymous requests (no token) resolve to Anonymous.
type Issuer struct {
	cfg IssuerConfig

	mu      sync.Mutex
	revoked map[string]time.Time // jti -> token expiry
}

var _ SessionManager = (*Issuer)(nil)

// NewIssuer returns an Issuer for cfg.
func NewIssuer(cfg IssuerConfig) *Issuer {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}
	return &Issuer{cfg: cfg, revoked: make(map[string]time.Time)}
}

// Authenticate implements Authenticator.
func (i *Issuer) Authenticate(token string) (Principal, error) {
	if token == "" {
		return Anonymous, nil
	}
	c, err := i.parse(token)
	if err != nil {
		return Principal{}, err
	}
	return Principal{ID: c.Subject, Username: c.Username}, nil
}

func (i *Issuer) parse(token string) (*sessionClaims, error) {
	var c sessionClaims
	_, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(i.cfg.Secret), nil
	},
		jwt.WithIssuer(i.cfg.Issuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.cfg.Now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if c.Subject == "" || c.ID == "" {
		return nil, ErrInvalidToken
	}
	i.mu.Lock()
	_, gone := i.revoked[c.ID]
	i.mu.Unlock()
	if gone {
		return nil, fmt.Errorf("%w: session revoked", ErrInvalidToken)
	}
	return &c, nil
}

// Login checks the credentials and issues a session. It fails with
// apperr.ErrAlreadyAuthenticated when ctx still carries a live token.
func (i *Issuer) Login(ctx context.Context, username, password string) (Session, error) {
	if tok := TokenFromContext(ctx); tok != "" {
		if _, err := i.parse(tok); err == nil {
			return Session{}, apperr.ErrAlreadyAuthenticated
		}
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(i.cfg.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(i.cfg.Password)) == 1
	if !userOK || !passOK {
		return Session{}, ErrInvalidCredentials
	}

	p := PrincipalFor(username)
	now := i.cfg.Now()
	exp := now.Add(i.cfg.TTL)
	c := sessionClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   p.ID,
			Issuer:    i.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(i.cfg.Secret))
	if err != nil {
		return Session{}, fmt.Errorf("identity: sign session: %w", err)
	}
	return Session{Token: signed, Principal: p, ExpiresAt: exp}, nil
}

// Logout revokes token. Revoking an already invalid token is a no-op.
func (i *Issuer) Logout(_ context.Context, token string) error {
	c, err := i.parse(token)
	if err != nil {
		return nil
	}
	now := i.cfg.Now()
	i.mu.Lock()
	defer i.mu.Unlock()
	for id, exp := range i.revoked {
		if now.After(exp) {
			delete(i.revoked, id)
		}
	}
	i.revoked[c.ID] = c.ExpiresAt.Time
	return nil
}
