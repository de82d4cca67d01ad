package internal

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
	AuthModeJWT      = "jwt"
)

// Config represents the application configuration.
type Config struct {
	App          ApplicationConfig  `yaml:"app"`
	SQLite       SQLiteConfig       `yaml:"sqlite"`
	Auth         AuthConfig         `yaml:"auth"`
	Cache        CacheConfig        `yaml:"cache"`
	JournalVault JournalVaultConfig `yaml:"journal_vault"`
	Events       EventsConfig       `yaml:"events"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return fmt.Errorf("app: %w", err)
	}
	if err := c.SQLite.Validate(); err != nil {
		return fmt.Errorf("sqlite: %w", err)
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	if err := c.Cache.Validate(); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	if err := c.JournalVault.Validate(); err != nil {
		return fmt.Errorf("journal_vault: %w", err)
	}
	return c.Events.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
	// Timezone is the IANA zone calendar days are computed in. Empty means
	// the host's local zone.
	Timezone string `yaml:"timezone"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	if err := c.HTTP.Validate(); err != nil {
		return err
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Timezone, validation.By(func(any) error {
			_, err := c.Location()
			return err
		})),
	)
}

// Location resolves Timezone.
func (c *ApplicationConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q", c.Timezone)
	}
	return loc, nil
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// SQLiteConfig holds SQLite database configuration.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// AuthConfig holds authentication configuration.
//
// Mode controls how callers are identified:
//   - "disabled" (default): every request acts as Username.
//   - "token": a static Bearer token identifies Username; no token is anonymous.
//   - "jwt": Username/Password log in through /api/session and receive a
//     signed session token.
type AuthConfig struct {
	Mode       string        `yaml:"mode"`
	Username   string        `yaml:"username"`
	Token      string        `yaml:"token"`
	Secret     string        `yaml:"secret"`
	Issuer     string        `yaml:"issuer"`
	Password   string        `yaml:"password"`
	SessionTTL time.Duration `yaml:"session_ttl"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken, AuthModeJWT)),
		validation.Field(&c.Username, validation.Required),
		validation.Field(&c.SessionTTL, validation.Min(time.Duration(0))),
	); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	switch c.Mode {
	case AuthModeToken:
		if c.Token == "" {
			return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
		}
	case AuthModeJWT:
		if len(c.Secret) < 32 {
			return fmt.Errorf("auth: mode is %q and secret must be at least 32 bytes", AuthModeJWT)
		}
		if c.Password == "" {
			return fmt.Errorf("auth: mode is %q but password is empty", AuthModeJWT)
		}
	}
	return nil
}

// AuthEnabled returns true when requests must identify themselves.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode != AuthModeDisabled
}

// CacheConfig configures the query cache.
type CacheConfig struct {
	TTL time.Duration `yaml:"ttl"`
}

// Validate validates the cache configuration.
func (c *CacheConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.TTL, validation.Required, validation.Min(time.Second)),
	)
}

// JournalVaultConfig points at a directory of Markdown journal files. An
// empty Path turns the vault off.
type JournalVaultConfig struct {
	Path  string `yaml:"path"`
	Watch bool   `yaml:"watch"`
}

// Enabled reports whether a vault is configured.
func (c *JournalVaultConfig) Enabled() bool { return c.Path != "" }

// Validate validates the journal vault configuration.
func (c *JournalVaultConfig) Validate() error {
	if c.Watch && !c.Enabled() {
		return errors.New("watch requires a path")
	}
	return nil
}

// EventsConfig configures the SSE stream.
type EventsConfig struct {
	Throttle time.Duration `yaml:"throttle"`
}

// Validate validates the events configuration.
func (c *EventsConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Throttle, validation.Min(time.Duration(0))),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		SQLite: SQLiteConfig{
			Path: "./daybook.db",
		},
		Auth: AuthConfig{
			Mode:       AuthModeDisabled,
			Username:   "me",
			Issuer:     "daybook",
			SessionTTL: 24 * time.Hour,
		},
		Cache: CacheConfig{
			TTL: 5 * time.Minute,
		},
		Events: EventsConfig{
			Throttle: 500 * time.Millisecond,
		},
	}
}
