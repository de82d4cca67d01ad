// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/starford/daybook/internal/api"
	"github.com/starford/daybook/internal/identity"
	"github.com/starford/daybook/internal/journalvault"
	"github.com/starford/daybook/internal/localdate"
	"github.com/starford/daybook/internal/mcpserver"
	"github.com/starford/daybook/internal/querycache"
	"github.com/starford/daybook/internal/sse"
	"github.com/starford/daybook/internal/storage"
	"github.com/starford/daybook/internal/store"
	"github.com/starford/daybook/internal/tracker"
)

// components holds what the HTTP and MCP entry points share.
type components struct {
	cfg    *Config
	logger *slog.Logger
	cal    *localdate.Calendar
	owner  identity.Principal
	auth   identity.Authenticator
}

func newApplication(opts []Option) (*application, error) {
	app := &application{version: "dev", logOutput: os.Stdout}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	return app, nil
}

func (a *application) components() (*components, error) {
	cfg := a.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(a.logOutput, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	loc, err := cfg.App.Location()
	if err != nil {
		return nil, err
	}

	rt := &components{
		cfg:    cfg,
		logger: logger,
		cal:    localdate.New(loc, time.Now),
		owner:  identity.PrincipalFor(cfg.Auth.Username),
	}

	switch cfg.Auth.Mode {
	case AuthModeToken:
		rt.auth = identity.StaticToken{Token: cfg.Auth.Token, Principal: rt.owner}
	case AuthModeJWT:
		rt.auth = identity.NewIssuer(identity.IssuerConfig{
			Secret:   cfg.Auth.Secret,
			Issuer:   cfg.Auth.Issuer,
			TTL:      cfg.Auth.SessionTTL,
			Username: cfg.Auth.Username,
			Password: cfg.Auth.Password,
		})
	default:
		rt.auth = identity.Local{Principal: rt.owner}
	}

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.String("timezone", loc.String()),
		slog.String("auth_mode", cfg.Auth.Mode),
		slog.String("journal_vault", cfg.JournalVault.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	return rt, nil
}

func (rt *components) newTracker(opts ...tracker.Option) *tracker.Service {
	opts = append([]tracker.Option{
		tracker.WithCalendar(rt.cal),
		tracker.WithLogger(rt.logger),
	}, opts...)
	if sm, ok := rt.auth.(identity.SessionManager); ok {
		opts = append(opts, tracker.WithSessions(sm))
	}
	return tracker.New(querycache.New(rt.cfg.Cache.TTL), opts...)
}

// vault returns nil when no journal vault is configured.
func (rt *components) vault(db *store.DB, svc *tracker.Service) (*journalvault.Vault, error) {
	if !rt.cfg.JournalVault.Enabled() {
		return nil, nil
	}
	if err := os.MkdirAll(rt.cfg.JournalVault.Path, 0o755); err != nil {
		return nil, fmt.Errorf("create journal vault dir: %w", err)
	}
	files, err := storage.NewFS(rt.cfg.JournalVault.Path)
	if err != nil {
		return nil, fmt.Errorf("init journal vault: %w", err)
	}
	return journalvault.New(files, db, rt.owner,
		journalvault.WithNotifier(svc),
		journalvault.WithCalendar(rt.cal),
		journalvault.WithLogger(rt.logger),
	), nil
}

func (rt *components) syncVault(ctx context.Context, v *journalvault.Vault) {
	res, err := v.Sync(ctx)
	if err != nil {
		rt.logger.Warn("initial journal sync failed", slog.String("error", err.Error()))
		return
	}
	rt.logger.Info("journal vault synced",
		slog.Int("imported", res.Imported),
		slog.Int("removed", res.Removed),
		slog.Int("skipped", res.Skipped))
}

// Run starts the HTTP server with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	rt, err := app.components()
	if err != nil {
		return err
	}
	cfg, logger := rt.cfg, rt.logger

	// SSE broker.
	broker := sse.NewBroker(cfg.Events.Throttle)
	defer broker.Close()

	svc := rt.newTracker(tracker.WithNotifier(broker))
	apiRouter := api.NewRouter(svc, rt.auth, broker)

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if !svc.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"starting"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// The store is attached once it is open; until then API calls report
	// the connection as unavailable and readiness fails.
	var db *store.DB
	defer func() {
		if db != nil {
			_ = db.Close()
		}
	}()
	g.Go(func() error {
		var err error
		db, err = store.Open(cfg.SQLite.Path)
		if err != nil {
			return fmt.Errorf("init store: %w", err)
		}
		svc.Attach(db)
		logger.Info("Store attached", slog.String("sqlite_path", cfg.SQLite.Path))

		v, err := rt.vault(db, svc)
		if err != nil {
			return err
		}
		if v == nil {
			return nil
		}
		rt.syncVault(gCtx, v)
		if !cfg.JournalVault.Watch {
			return nil
		}
		if err := v.Watch(gCtx); err != nil {
			logger.Error("journal watcher stopped", slog.String("error", err.Error()))
		}
		return nil
	})

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		// Event streams never go idle on their own; end them first.
		broker.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return errShutdown
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errShutdown) {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// errShutdown cancels the group's context so long-running workers such as
// the vault watcher stop with the server.
var errShutdown = errors.New("shutdown requested")

// RunMCP serves the daybook tools over stdio as the configured owner. Logs go
// to stderr since stdout carries the protocol.
func RunMCP(ctx context.Context, opts ...Option) error {
	app, err := newApplication(append([]Option{WithLogOutput(os.Stderr)}, opts...))
	if err != nil {
		return err
	}
	rt, err := app.components()
	if err != nil {
		return err
	}

	db, err := store.Open(rt.cfg.SQLite.Path)
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	defer db.Close()

	svc := rt.newTracker(tracker.WithBackend(db))

	v, err := rt.vault(db, svc)
	if err != nil {
		return err
	}
	if v != nil {
		rt.syncVault(ctx, v)
	}

	rt.logger.Info("MCP server starting on stdio", slog.String("owner", rt.owner.Username))
	return mcpserver.New(svc, rt.owner, app.version).ServeStdio()
}
