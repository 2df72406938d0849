package web

import (
	"flag"
	"testing"
)

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	return fs
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}

	if cfg.HTTPAddr != "localhost:8080" {
		t.Fatalf("HTTPAddr = %q, want %q", cfg.HTTPAddr, "localhost:8080")
	}
	if cfg.Locale != "pt-BR" {
		t.Fatalf("Locale = %q, want %q", cfg.Locale, "pt-BR")
	}
	if cfg.SessionBackend != SessionBackendBbolt {
		t.Fatalf("SessionBackend = %q, want %q", cfg.SessionBackend, SessionBackendBbolt)
	}
	if cfg.SessionDBPath != "caos-session.db" {
		t.Fatalf("SessionDBPath = %q, want %q", cfg.SessionDBPath, "caos-session.db")
	}
	if cfg.CatalogDBPath != "caos-catalog.db" {
		t.Fatalf("CatalogDBPath = %q, want %q", cfg.CatalogDBPath, "caos-catalog.db")
	}
	if !cfg.OtelEnabled {
		t.Fatal("OtelEnabled = false, want true by default")
	}
	if cfg.OtelEndpoint != "" {
		t.Fatalf("OtelEndpoint = %q, want empty", cfg.OtelEndpoint)
	}
}

func TestParseConfigOtelEnvOverrides(t *testing.T) {
	t.Setenv("CAOS_OTEL_ENDPOINT", "http://localhost:4318")
	t.Setenv("CAOS_OTEL_ENABLED", "false")

	cfg, err := ParseConfig(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}

	if cfg.OtelEndpoint != "http://localhost:4318" {
		t.Fatalf("OtelEndpoint = %q, want %q", cfg.OtelEndpoint, "http://localhost:4318")
	}
	if cfg.OtelEnabled {
		t.Fatal("OtelEnabled = true, want false")
	}
}

func TestParseConfigEnvOverrides(t *testing.T) {
	t.Setenv("CAOS_HTTP_ADDR", "0.0.0.0:9000")
	t.Setenv("CAOS_LOCALE", "en-US")
	t.Setenv("CAOS_SESSION_BACKEND", "redis")
	t.Setenv("CAOS_REDIS_ADDR", "localhost:6379")

	cfg, err := ParseConfig(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}

	if cfg.HTTPAddr != "0.0.0.0:9000" {
		t.Fatalf("HTTPAddr = %q, want %q", cfg.HTTPAddr, "0.0.0.0:9000")
	}
	if cfg.Locale != "en-US" {
		t.Fatalf("Locale = %q, want %q", cfg.Locale, "en-US")
	}
	if cfg.SessionBackend != SessionBackendRedis {
		t.Fatalf("SessionBackend = %q, want %q", cfg.SessionBackend, SessionBackendRedis)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Fatalf("RedisAddr = %q, want %q", cfg.RedisAddr, "localhost:6379")
	}
}

func TestParseConfigFlagsOverrideEnv(t *testing.T) {
	t.Setenv("CAOS_HTTP_ADDR", "0.0.0.0:9000")

	cfg, err := ParseConfig(newFlagSet(), []string{"-http-addr", "localhost:7000", "-session-db", "/tmp/s.db"})
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}

	if cfg.HTTPAddr != "localhost:7000" {
		t.Fatalf("HTTPAddr = %q, want %q", cfg.HTTPAddr, "localhost:7000")
	}
	if cfg.SessionDBPath != "/tmp/s.db" {
		t.Fatalf("SessionDBPath = %q, want %q", cfg.SessionDBPath, "/tmp/s.db")
	}
}

func TestParseConfigRejectsUnknownBackend(t *testing.T) {
	if _, err := ParseConfig(newFlagSet(), []string{"-session-backend", "memcached"}); err == nil {
		t.Fatal("ParseConfig() error = nil, want error")
	}
}
