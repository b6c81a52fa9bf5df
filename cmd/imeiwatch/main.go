package main

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/erazemk/imeiwatch/internal/api"
	"github.com/erazemk/imeiwatch/internal/config"
	"github.com/erazemk/imeiwatch/internal/db"
	"github.com/erazemk/imeiwatch/internal/metrics"
	"github.com/erazemk/imeiwatch/internal/service"
	"github.com/erazemk/imeiwatch/internal/session"
	"github.com/erazemk/imeiwatch/internal/store"
)

// levelRouter sends records below ERROR to stdout and the rest to stderr,
// dropping anything under min.
type levelRouter struct {
	min    slog.Leveler
	stdout slog.Handler
	stderr slog.Handler
}

func (lr *levelRouter) Enabled(_ context.Context, level slog.Level) bool {
	return level >= lr.min.Level()
}

func (lr *levelRouter) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		return lr.stderr.Handle(ctx, r)
	}
	return lr.stdout.Handle(ctx, r)
}

func (lr *levelRouter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelRouter{
		min:    lr.min,
		stdout: lr.stdout.WithAttrs(attrs),
		stderr: lr.stderr.WithAttrs(attrs),
	}
}

func (lr *levelRouter) WithGroup(name string) slog.Handler {
	return &levelRouter{
		min:    lr.min,
		stdout: lr.stdout.WithGroup(name),
		stderr: lr.stderr.WithGroup(name),
	}
}

// setupLogger configures structured logging at INFO, or DEBUG when verbose.
// If logPath is non-empty, all levels are also appended to that file. The
// returned cleanup may be nil.
func setupLogger(logPath string, verbose bool) (func(), error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var cleanup func()

	stdoutW := io.Writer(os.Stdout)
	stderrW := io.Writer(os.Stderr)

	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		cleanup = func() { f.Close() }
		stdoutW = io.MultiWriter(os.Stdout, f)
		stderrW = io.MultiWriter(os.Stderr, f)
	}

	handler := &levelRouter{
		min:    level,
		stdout: slog.NewTextHandler(stdoutW, opts),
		stderr: slog.NewTextHandler(stderrW, opts),
	}
	slog.SetDefault(slog.New(handler))
	return cleanup, nil
}

func main() {
	cfg := config.Load()

	fs := flag.NewFlagSet("imeiwatch", flag.ContinueOnError)

	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "")

	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "")
	fs.StringVar(&cfg.Addr, "a", cfg.Addr, "")

	fs.StringVar(&cfg.LogPath, "log", cfg.LogPath, "")
	fs.StringVar(&cfg.LogPath, "l", cfg.LogPath, "")

	var verbose bool
	fs.BoolVar(&verbose, "verbose", false, "")
	fs.BoolVar(&verbose, "v", false, "")

	fs.Usage = func() {
		fmt.Fprint(os.Stdout, `Usage: imeiwatch [flags]

Flags:
  -d, -db <path>          SQLite database path (default: imeiwatch.sqlite3)
  -a, -addr <host:port>   listen address (default: :8080)
  -l, -log <path>         log file path (default: no file, stdout/stderr only)
  -v, -verbose            log at debug level
  -h, -help               show this help and exit

Environment:
  ADMIN_PASSWORD          administrator secret
  ADMIN_PASSWORD_HASH     bcrypt hash of the administrator secret
  SESSION_SECRET          session signing key (default: generated and stored in the database)
  SESSION_TTL             admin session lifetime (default: 8h)
  SESSION_BACKEND         sqlite or redis (default: sqlite)
  REDIS_URL               redis URL, required for the redis backend
  COOKIE_SECURE           mark the session cookie Secure
`)
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "unexpected argument: %s\n", fs.Arg(0))
		fs.Usage()
		os.Exit(1)
	}

	closeLog, err := setupLogger(cfg.LogPath, verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if closeLog != nil {
		defer closeLog()
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	m := metrics.New()

	// A schema failure is not fatal; requests that touch storage fail
	// individually instead.
	degraded := false
	if err := db.EnsureSchema(database); err != nil {
		slog.Error("failed to ensure database schema, continuing degraded", "error", err)
		degraded = true
	} else {
		slog.Info("database ready", "path", cfg.DBPath)
	}
	m.SetDegraded(degraded)

	signingKey, err := loadSigningKey(cfg, database)
	if err != nil {
		slog.Error("failed to load session secret", "error", err)
		os.Exit(1)
	}

	sessionStore, closeStore, err := newSessionStore(cfg, database)
	if err != nil {
		slog.Error("failed to set up session store", "error", err, "backend", cfg.SessionBackend)
		os.Exit(1)
	}
	if closeStore != nil {
		defer closeStore()
	}

	if !cfg.AdminConfigured() {
		slog.Warn("no admin secret configured, admin login is disabled")
	}

	sessions := session.NewAuthority(sessionStore, session.Options{
		AdminPassword:     cfg.AdminPassword,
		AdminPasswordHash: cfg.AdminPasswordHash,
		SigningKey:        signingKey,
		TTL:               cfg.SessionTTL,
	})

	reports := service.New(store.Reports{DB: database}, sessions, m)

	router := api.NewRouter(api.Deps{
		Reports:      reports,
		Sessions:     sessions,
		Metrics:      m,
		Degraded:     degraded,
		CookieSecure: cfg.CookieSecure,
	})

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.LoggingMiddleware(router),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-quit
		slog.Info("shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slog.Error("server forced to shutdown", "error", err)
		}
	}()

	slog.Info("server started", "addr", cfg.Addr, "sessions", cfg.SessionBackend)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped, closing database")
}

// loadSigningKey prefers SESSION_SECRET, then the key persisted in the
// database. Without either, sessions do not survive a restart.
func loadSigningKey(cfg *config.Config, database *sql.DB) (string, error) {
	if cfg.SessionSecret != "" {
		return cfg.SessionSecret, nil
	}

	secret, created, err := store.GetSessionSecret(context.Background(), database)
	if err == nil {
		if created {
			slog.Info("generated new session secret")
		} else {
			slog.Debug("using stored session secret")
		}
		return secret, nil
	}
	slog.Warn("could not load stored session secret, using an ephemeral one", "error", err)

	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating session secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// newSessionStore returns the configured session backend and an optional
// cleanup function.
func newSessionStore(cfg *config.Config, database *sql.DB) (session.Store, func(), error) {
	if cfg.SessionBackend != config.SessionBackendRedis {
		return session.NewSQLStore(database), nil, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing redis url: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("connecting to redis: %w", err)
	}

	slog.Info("redis connected", "addr", opts.Addr)
	return session.NewRedisStore(client), func() { client.Close() }, nil
}
