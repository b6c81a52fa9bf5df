package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Session backends.
const (
	SessionBackendSQLite = "sqlite"
	SessionBackendRedis  = "redis"
)

// Config holds runtime settings, read from the environment. Command-line
// flags override the address, database and log paths.
type Config struct {
	// Server
	Addr    string
	DBPath  string
	LogPath string

	// Admin
	AdminPassword     string
	AdminPasswordHash string

	// Sessions
	SessionSecret  string
	SessionTTL     time.Duration
	SessionBackend string
	RedisURL       string
	CookieSecure   bool
}

// Load reads the configuration from the environment.
func Load() *Config {
	return &Config{
		Addr:    getEnv("IMEIWATCH_ADDR", ":8080"),
		DBPath:  getEnv("IMEIWATCH_DB", "imeiwatch.sqlite3"),
		LogPath: getEnv("IMEIWATCH_LOG", ""),

		AdminPassword:     getEnv("ADMIN_PASSWORD", ""),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),

		SessionSecret:  getEnv("SESSION_SECRET", ""),
		SessionTTL:     parseDuration(getEnv("SESSION_TTL", "8h"), 8*time.Hour),
		SessionBackend: getEnv("SESSION_BACKEND", SessionBackendSQLite),
		RedisURL:       getEnv("REDIS_URL", ""),
		CookieSecure:   parseBool(getEnv("COOKIE_SECURE", "false")),
	}
}

// Validate rejects configurations the server cannot start with. A missing
// admin secret is allowed; logins are then rejected until one is set.
func (c *Config) Validate() error {
	switch c.SessionBackend {
	case SessionBackendSQLite:
	case SessionBackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("SESSION_BACKEND=redis requires REDIS_URL")
		}
	default:
		return fmt.Errorf("unknown session backend %q", c.SessionBackend)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session TTL must be positive, got %s", c.SessionTTL)
	}
	return nil
}

// AdminConfigured reports whether an administrator secret is set.
func (c *Config) AdminConfigured() bool {
	return c.AdminPassword != "" || c.AdminPasswordHash != ""
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	return err == nil && b
}
