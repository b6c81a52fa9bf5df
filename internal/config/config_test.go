package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"IMEIWATCH_ADDR", "IMEIWATCH_DB", "IMEIWATCH_LOG", "ADMIN_PASSWORD", "ADMIN_PASSWORD_HASH",
		"SESSION_SECRET", "SESSION_TTL", "SESSION_BACKEND", "REDIS_URL", "COOKIE_SECURE",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Addr != ":8080" {
		t.Errorf("expected default addr, got %q", cfg.Addr)
	}
	if cfg.SessionTTL != 8*time.Hour {
		t.Errorf("expected 8h session TTL, got %s", cfg.SessionTTL)
	}
	if cfg.SessionBackend != SessionBackendSQLite {
		t.Errorf("expected sqlite backend, got %q", cfg.SessionBackend)
	}
	if cfg.CookieSecure {
		t.Error("expected insecure cookies by default")
	}
	if cfg.AdminConfigured() {
		t.Error("expected no admin secret by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "hunter2")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("SESSION_BACKEND", "redis")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("COOKIE_SECURE", "true")

	cfg := Load()
	if !cfg.AdminConfigured() {
		t.Error("expected admin secret to be configured")
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Errorf("expected 30m TTL, got %s", cfg.SessionTTL)
	}
	if !cfg.CookieSecure {
		t.Error("expected secure cookies")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestInvalidDurationFallsBack(t *testing.T) {
	t.Setenv("SESSION_TTL", "eight hours")

	if got := Load().SessionTTL; got != 8*time.Hour {
		t.Errorf("expected fallback TTL, got %s", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"sqlite", Config{SessionBackend: SessionBackendSQLite, SessionTTL: time.Hour}, false},
		{"redis without url", Config{SessionBackend: SessionBackendRedis, SessionTTL: time.Hour}, true},
		{"redis", Config{SessionBackend: SessionBackendRedis, RedisURL: "redis://x", SessionTTL: time.Hour}, false},
		{"unknown backend", Config{SessionBackend: "memcached", SessionTTL: time.Hour}, true},
		{"zero ttl", Config{SessionBackend: SessionBackendSQLite}, true},
	}

	for _, tt := range tests {
		err := tt.cfg.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: Validate() error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}
